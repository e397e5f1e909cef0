package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"simplifytour/internal/config"
	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	"simplifytour/internal/repositories"
	"simplifytour/internal/testutil"
	"simplifytour/pkg/logger"
	mem "simplifytour/pkg/memcache"
	"simplifytour/pkg/storage"
	"simplifytour/pkg/thumbnail"
	"simplifytour/pkg/utils"
)

var testCtx = context.Background()

type sentMail struct {
	to, uid, token string
}

type fakeMail struct {
	activations []sentMail
	resets      []sentMail
	err         error
}

func (f *fakeMail) SendActivationEmail(to, uid, token string) error {
	f.activations = append(f.activations, sentMail{to, uid, token})
	return f.err
}

func (f *fakeMail) SendPasswordResetEmail(to, uid, token string) error {
	f.resets = append(f.resets, sentMail{to, uid, token})
	return f.err
}

type testEnv struct {
	db    *gorm.DB
	cfg   *config.Config
	store *storage.FileSystemStorage
	mail  *fakeMail
	jwt   *utils.JWTManager
	staff *db_models.User

	settings  SettingService
	packages  PackageService
	articles  ArticleService
	itinerary ItineraryService
	prices    PriceService
	staffSvc  StaffService
	keywords  KeywordService
	ratings   RatingService
	users     UserService
	dashboard DashboardService
	links     LinksService
	media     MediaService
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		RichTextFilterLevel:  3,
		PasswordResetTimeout: time.Hour,
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Expiration:        5 * time.Minute,
			RefreshExpiration: time.Hour,
			CookieName:        "JWT",
		},
		Media: config.MediaConfig{
			MediaRoot:      t.TempDir(),
			MediaURL:       "/media/",
			StaticRoot:     t.TempDir(),
			StaticURL:      "/static/",
			ThumbnailsDir:  ".thumbnails",
			AdminThumbSize: "24x24",
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testConfig(t)
	log := logger.NewConsoleLogger("error")
	store := storage.NewFileSystemStorage(cfg.Media.MediaRoot, cfg.Media.MediaURL)
	jwt := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshExpiration)
	mail := &fakeMail{}

	packageRepo := repositories.NewPackageRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	keywordRepo := repositories.NewKeywordRepository(db)
	userRepo := repositories.NewUserRepository(db)

	env := &testEnv{
		db:    db,
		cfg:   cfg,
		store: store,
		mail:  mail,
		jwt:   jwt,
		staff: testutil.CreateUser(t, db, "staff@example.com", "s3cret-pass", true),
	}
	env.settings = NewSettingService(repositories.NewSettingRepository(db), cfg, log)
	env.packages = NewPackageService(packageRepo, staffRepo, keywordRepo, env.settings, log)
	env.articles = NewArticleService(articleRepo, store, env.settings, log)
	env.itinerary = NewItineraryService(repositories.NewPlaceRepository(db), repositories.NewItineraryRepository(db), packageRepo)
	env.prices = NewPriceService(repositories.NewPriceRepository(db), packageRepo, env.settings)
	env.staffSvc = NewStaffService(staffRepo)
	env.keywords = NewKeywordService(keywordRepo)
	env.ratings = NewRatingService(repositories.NewRatingRepository(db))
	env.users = NewUserService(userRepo, mail, mem.NewResetTokens(), jwt, store, cfg.PasswordResetTimeout, log)
	env.dashboard = NewDashboardService(packageRepo, articleRepo, userRepo)
	env.links = NewLinksService(env.packages, env.articles)
	thumbs := thumbnail.New(store, cfg.Media.MediaURL, cfg.Media.ThumbnailsDir, log)
	env.media = NewMediaService(store, thumbs, env.settings, cfg, log)
	return env
}

func packageRequest(title string, parentID *db_models.Package) request_models.PackageRequest {
	req := request_models.PackageRequest{
		DisplayableRequest: request_models.DisplayableRequest{Title: title},
		Content:            "<p>" + title + "</p>",
	}
	if parentID != nil {
		req.ParentID = &parentID.ID
	}
	return req
}

func (e *testEnv) createPackage(t *testing.T, kind, title string, parent *db_models.Package) *db_models.Package {
	t.Helper()
	pkg, err := e.packages.Create(testCtx, kind, packageRequest(title, parent), e.staff.ID)
	require.NoError(t, err)
	return pkg
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
