package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"simplifytour/internal/config"
	"simplifytour/internal/infra"
	"simplifytour/internal/repositories"
	"simplifytour/internal/services"
	"simplifytour/pkg/logger"
	mem "simplifytour/pkg/memcache"
	"simplifytour/pkg/storage"
	"simplifytour/pkg/utils"
)

// Register adds every operator command to root.
func Register(root *cobra.Command) {
	root.AddCommand(newMigrateCmd(), newCreateSuperuserCmd(), newSeedCmd())
}

type runtime struct {
	cfg *config.Config
	log logger.Logger
	db  *gorm.DB
}

func setup() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	logger.SetDefault(log)

	db, err := infra.NewDatabase(cfg.Database, log, cfg.Debug)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, log: log, db: db}, nil
}

func (r *runtime) close() {
	infra.CloseDatabase(r.db, r.log)
}

// appServices wires the services the commands need without the HTTP stack.
type appServices struct {
	users     services.UserService
	settings  services.SettingService
	packages  services.PackageService
	itinerary services.ItineraryService
	prices    services.PriceService
	staff     services.StaffService
	keywords  services.KeywordService
	articles  services.ArticleService
}

func newAppServices(db *gorm.DB, cfg *config.Config, log logger.Logger) *appServices {
	store := storage.NewFileSystemStorage(cfg.Media.MediaRoot, cfg.Media.MediaURL)
	jwt := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshExpiration)

	packageRepo := repositories.NewPackageRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	keywordRepo := repositories.NewKeywordRepository(db)

	s := &appServices{}
	s.settings = services.NewSettingService(repositories.NewSettingRepository(db), cfg, log)
	s.users = services.NewUserService(repositories.NewUserRepository(db), services.NewLogMailService(services.SMTPConfig{}, log),
		mem.NewResetTokens(), jwt, store, cfg.PasswordResetTimeout, log)
	s.packages = services.NewPackageService(packageRepo, staffRepo, keywordRepo, s.settings, log)
	s.itinerary = services.NewItineraryService(repositories.NewPlaceRepository(db), repositories.NewItineraryRepository(db), packageRepo)
	s.prices = services.NewPriceService(repositories.NewPriceRepository(db), packageRepo, s.settings)
	s.staff = services.NewStaffService(staffRepo)
	s.keywords = services.NewKeywordService(keywordRepo)
	s.articles = services.NewArticleService(repositories.NewArticleRepository(db), store, s.settings, log)
	return s
}
