package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	"simplifytour/pkg/utils"
)

func itemRequest(title string) request_models.ItineraryItemRequest {
	return request_models.ItineraryItemRequest{Title: title, Description: title + " by jeep"}
}

func TestItineraryService_PlacesAndItems(t *testing.T) {
	env := newTestEnv(t)

	place, err := env.itinerary.CreatePlace(testCtx, request_models.PlaceRequest{Name: "Kathmandu"})
	require.NoError(t, err)
	_, err = env.itinerary.CreatePlace(testCtx, request_models.PlaceRequest{Name: "Kathmandu"})
	assert.ErrorIs(t, err, utils.ErrPlaceExists)

	req := itemRequest("Drive to Syabrubesi")
	req.StartingPlaceID = &place.ID
	start := "07:30"
	req.StartingTime = &start
	item, err := env.itinerary.CreateItem(testCtx, req, env.staff.ID)
	require.NoError(t, err)
	assert.True(t, item.Days.Equal(decimal.NewFromInt(1)))
	assert.True(t, item.IsFullDay())
	require.NotNil(t, item.StartingTime)
	assert.Equal(t, "07:30", *item.StartingTime)

	bad := itemRequest("Bad clock")
	clock := "25:99"
	bad.EndTime = &clock
	_, err = env.itinerary.CreateItem(testCtx, bad, env.staff.ID)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	negative := decimal.NewFromInt(-1)
	bad = itemRequest("Negative")
	bad.Days = &negative
	_, err = env.itinerary.CreateItem(testCtx, bad, env.staff.ID)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	missing := uuid.New()
	bad = itemRequest("Nowhere")
	bad.EndingPlaceID = &missing
	_, err = env.itinerary.CreateItem(testCtx, bad, env.staff.ID)
	assert.ErrorIs(t, err, utils.ErrPlaceNotFound)

	require.NoError(t, env.itinerary.DeletePlace(testCtx, place.ID))
	got, err := env.itinerary.GetItem(testCtx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.StartingPlaceID)
}

func TestItineraryService_EntriesAndAddons(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.createPackage(t, db_models.KindTrekPackage, "Langtang Valley", nil)
	day1, err := env.itinerary.CreateItem(testCtx, itemRequest("Day one"), env.staff.ID)
	require.NoError(t, err)
	day2, err := env.itinerary.CreateItem(testCtx, itemRequest("Day two"), env.staff.ID)
	require.NoError(t, err)

	first, err := env.itinerary.AddEntry(testCtx, pkg.ID, request_models.ItineraryEntryRequest{ItemID: day1.ID})
	require.NoError(t, err)
	second, err := env.itinerary.AddEntry(testCtx, pkg.ID, request_models.ItineraryEntryRequest{ItemID: day2.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, first.OrderValue())
	assert.Equal(t, 1, second.OrderValue())

	_, err = env.itinerary.AddEntry(testCtx, pkg.ID, request_models.ItineraryEntryRequest{ItemID: day1.ID})
	assert.ErrorIs(t, err, utils.ErrDuplicateEntry)

	updated, err := env.itinerary.UpdateEntry(testCtx, first.ID, request_models.ItineraryEntryUpdateRequest{Title: "Arrival"})
	require.NoError(t, err)
	assert.Equal(t, "Arrival", updated.Title())
	item, err := env.itinerary.GetItem(testCtx, day1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arrival", item.Title)

	detail, err := env.packages.Get(testCtx, "", pkg.ID)
	require.NoError(t, err)
	assert.True(t, detail.Days().Equal(decimal.NewFromInt(2)))

	_, err = env.itinerary.AddAddon(testCtx, pkg.ID, day2.ID)
	require.NoError(t, err)
	_, err = env.itinerary.AddAddon(testCtx, pkg.ID, day2.ID)
	assert.ErrorIs(t, err, utils.ErrDuplicateEntry)
	addons, err := env.itinerary.ListAddons(testCtx, pkg.ID)
	require.NoError(t, err)
	assert.Len(t, addons, 1)
	require.NoError(t, env.itinerary.RemoveAddon(testCtx, pkg.ID, day2.ID))
	assert.ErrorIs(t, env.itinerary.RemoveAddon(testCtx, pkg.ID, day2.ID), utils.ErrEntryNotFound)

	require.NoError(t, env.itinerary.RemoveEntry(testCtx, first.ID))
	entries, err := env.itinerary.ListEntries(testCtx, pkg.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, second.ID, entries[0].ID)
}

func TestPriceService_StartingDates(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.createPackage(t, db_models.KindPackage, "Chitwan Safari", nil)

	req := request_models.PriceRequest{
		PriceNotes:      "Per person",
		MaxGroupSize:    12,
		DiscountedPrice: decimal.NewNullDecimal(decimal.NewFromInt(450)),
		StartingDates:   []string{"2026-11-02", "2026-10-20", "2026-11-02"},
		ExtraContent:    strPtr(`<p>Jeep</p><script>x()</script>`),
	}
	price, err := env.prices.Create(testCtx, pkg.ID, req)
	require.NoError(t, err)
	assert.Equal(t, db_models.StandardBudget, price.Standard)
	assert.Equal(t, 1, price.MinGroupSize)
	assert.Equal(t, []string{"2026-10-20", "2026-11-02"}, price.StartingDates())
	require.NotNil(t, price.ExtraContent)
	assert.NotContains(t, *price.ExtraContent, "script")
	assert.Equal(t, []string{"2026-11-02", "2026-10-20", "2026-11-02"}, req.StartingDates)

	price, err = env.prices.AddStartingDate(testCtx, price.ID, "2026-10-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-01", "2026-10-20", "2026-11-02"}, price.StartingDates())

	price, err = env.prices.RemoveStartingDate(testCtx, price.ID, "2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-01", "2026-11-02"}, price.StartingDates())

	_, err = env.prices.AddStartingDate(testCtx, price.ID, "02/11/2026")
	assert.Error(t, err)

	req.MinGroupSize = 20
	_, err = env.prices.Update(testCtx, price.ID, req)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = env.prices.Create(testCtx, uuid.New(), request_models.PriceRequest{PriceNotes: "x", MaxGroupSize: 1})
	assert.ErrorIs(t, err, utils.ErrPackageNotFound)
}

func strPtr(s string) *string { return &s }

func TestStaffService_PortersAndGuides(t *testing.T) {
	env := newTestEnv(t)

	porter, err := env.staffSvc.CreatePorter(testCtx, request_models.PorterRequest{Remarks: "Sherpa team", Count: 2})
	require.NoError(t, err)
	guide, err := env.staffSvc.CreateGuide(testCtx, request_models.GuideRequest{Language: "English", Remarks: "Licensed"})
	require.NoError(t, err)

	req := packageRequest("Manaslu", nil)
	req.PorterIDs = []uuid.UUID{porter.ID}
	req.GuideIDs = []uuid.UUID{guide.ID}
	pkg, err := env.packages.Create(testCtx, db_models.KindTrekPackage, req, env.staff.ID)
	require.NoError(t, err)
	require.NotNil(t, pkg.DefaultPorter())
	assert.Equal(t, porter.ID, pkg.DefaultPorter().ID)
	require.NotNil(t, pkg.DefaultGuide())
	assert.Equal(t, "English", pkg.DefaultGuide().Language)

	req.GuideIDs = []uuid.UUID{uuid.New()}
	_, err = env.packages.Create(testCtx, db_models.KindTrekPackage, req, env.staff.ID)
	assert.ErrorIs(t, err, utils.ErrGuideNotFound)

	updated, err := env.staffSvc.UpdatePorter(testCtx, porter.ID, request_models.PorterRequest{Remarks: "Two porters", Count: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Count)

	require.NoError(t, env.staffSvc.DeleteGuide(testCtx, guide.ID))
	_, err = env.staffSvc.GetGuide(testCtx, guide.ID)
	assert.ErrorIs(t, err, utils.ErrGuideNotFound)
}

func TestKeywordService_Submit(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.keywords.Submit(testCtx, "Trekking!, high-altitude, trekking, ,")
	require.NoError(t, err)
	parts := strings.SplitN(result, "|", 2)
	require.Len(t, parts, 2)
	assert.Len(t, strings.Split(parts[0], ","), 2)
	assert.Equal(t, "Trekking, high-altitude", parts[1])

	again, err := env.keywords.GetOrCreate(testCtx, "TREKKING")
	require.NoError(t, err)
	assert.Equal(t, "trekking", again.Slug)

	keywords, total, err := env.keywords.List(testCtx, utils.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.NoError(t, env.keywords.Delete(testCtx, keywords[0].ID))
	assert.ErrorIs(t, env.keywords.Delete(testCtx, keywords[0].ID), utils.ErrKeywordNotFound)
}

func TestRatingService_Rate(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.createPackage(t, db_models.KindPackage, "Rated", nil)

	_, err := env.ratings.Rate(testCtx, RatePackage, pkg.ID, 6, nil)
	assert.ErrorIs(t, err, utils.ErrInvalidRating)
	_, err = env.ratings.Rate(testCtx, RatePackage, uuid.New(), 4, nil)
	assert.ErrorIs(t, err, utils.ErrPackageNotFound)
	_, err = env.ratings.Rate(testCtx, RateArticle, pkg.ID, 4, nil)
	assert.ErrorIs(t, err, utils.ErrArticleNotFound)

	_, err = env.ratings.Rate(testCtx, RatePackage, pkg.ID, 5, &env.staff.ID)
	require.NoError(t, err)
	summary, err := env.ratings.Rate(testCtx, RatePackage, pkg.ID, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.RatingCount)
	assert.Equal(t, 7, summary.RatingSum)
	assert.InDelta(t, 3.5, summary.RatingAverage, 0.001)

	got, err := env.packages.Get(testCtx, "", pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.RatingCount)
}

func TestSettingService(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, 3, env.settings.GetInt(testCtx, SettingRichTextFilterLevel))
	assert.Equal(t, "Simplify Tour", env.settings.GetString(testCtx, SettingSiteTitle))

	_, err := env.settings.Set(testCtx, SettingRichTextFilterLevel, "7")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	_, err = env.settings.Set(testCtx, "UNKNOWN", "x")
	assert.ErrorIs(t, err, utils.ErrSettingNotFound)

	_, err = env.settings.Set(testCtx, SettingRichTextFilterLevel, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, env.settings.GetInt(testCtx, SettingRichTextFilterLevel))

	req := packageRequest("Raw HTML", nil)
	req.Content = `<p>ok</p><script>keep()</script>`
	pkg, err := env.packages.Create(testCtx, db_models.KindPackage, req, env.staff.ID)
	require.NoError(t, err)
	assert.Contains(t, pkg.Content, "<script>")

	require.NoError(t, env.settings.Reset(testCtx, SettingRichTextFilterLevel))
	assert.Equal(t, 3, env.settings.GetInt(testCtx, SettingRichTextFilterLevel))

	list, err := env.settings.List(testCtx)
	require.NoError(t, err)
	assert.NotEmpty(t, list)
}

func TestDashboardService(t *testing.T) {
	env := newTestEnv(t)
	env.createPackage(t, db_models.KindPackage, "One", nil)
	env.createPackage(t, db_models.KindTrekPackage, "Two", nil)
	draft := packageRequest("Three", nil)
	draft.Status = db_models.StatusDraft
	_, err := env.packages.Create(testCtx, db_models.KindTrekPackage, draft, env.staff.ID)
	require.NoError(t, err)
	_, err = env.articles.Create(testCtx, articleRequest("News"))
	require.NoError(t, err)

	report, err := env.dashboard.BuildDashboard(testCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), report.TotalPackages)
	assert.Equal(t, int64(1), report.Articles)
	require.Len(t, report.Packages, 3)
	assert.Equal(t, db_models.KindTrekPackage, report.Packages[1].Kind)
	assert.Equal(t, int64(1), report.Packages[1].Published)
	assert.Equal(t, int64(1), report.Packages[1].Draft)
	assert.Equal(t, int64(0), report.ConfirmedUsers)
	assert.Equal(t, int64(1), report.UnconfirmedUsers)
}

func TestLinksService_DisplayableLinks(t *testing.T) {
	env := newTestEnv(t)
	root := env.createPackage(t, db_models.KindPackage, "Tours", nil)
	env.createPackage(t, db_models.KindTrekPackage, "Everest", root)
	_, err := env.articles.Create(testCtx, articleRequest("About"))
	require.NoError(t, err)

	links, err := env.links.DisplayableLinks(testCtx, nil)
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, "Package: Tours", links[0].Title)
	assert.Equal(t, "/packages/tours", links[0].Value)
	assert.Equal(t, "Trekking Package: Everest", links[1].Title)
	assert.Equal(t, "/packages/tours/everest", links[1].Value)
	assert.Equal(t, "Article page: About", links[2].Title)
	assert.Equal(t, "/articles/about", links[2].Value)
}

func TestMediaService_StaticProxy(t *testing.T) {
	env := newTestEnv(t)
	root := env.cfg.Media.StaticRoot
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tinymce", "plugins"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tinymce", "plugins", "link.htm"), []byte("<html><head><title>x</title></head></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tinymce", "editor.js"), []byte("var a;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.unknownext"), []byte("?"), 0o644))

	file, err := env.media.StaticProxy("https://example.com/static/tinymce/plugins/link.htm", "example.com")
	require.NoError(t, err)
	assert.Contains(t, string(file.Content), "<head><base href='//example.com/static/tinymce/plugins/'>")

	file, err = env.media.StaticProxy("/static/tinymce/editor.js", "example.com")
	require.NoError(t, err)
	assert.Contains(t, file.ContentType, "javascript")
	assert.Equal(t, "var a;", string(file.Content))

	file, err = env.media.StaticProxy("blob.unknownext", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", file.ContentType)

	_, err = env.media.StaticProxy("/static/missing.js", "example.com")
	assert.ErrorIs(t, err, utils.ErrFileNotFound)
	_, err = env.media.StaticProxy("/static/../../etc/passwd", "example.com")
	assert.ErrorIs(t, err, utils.ErrFileNotFound)
}

func TestMediaService_UploadAndAdminThumb(t *testing.T) {
	env := newTestEnv(t)

	uploaded, err := env.media.Upload(testCtx, "", request_models.Upload{
		Filename: "banner.png",
		Content:  strings.NewReader(string(pngBytes(t, 40, 20))),
	})
	require.NoError(t, err)
	assert.Equal(t, "uploads/banner.png", uploaded.Name)
	assert.Equal(t, "/media/uploads/banner.png", uploaded.URL)

	html := env.media.AdminThumb(testCtx, uploaded.Name)
	assert.Equal(t, `<img src="/media/uploads/.thumbnails/banner.png/banner-24x24.png">`, html)
	assert.True(t, env.store.Exists("uploads/.thumbnails/banner.png/banner-24x24.png"))

	_, err = env.settings.Set(testCtx, SettingAdminThumbSize, "10x0")
	require.NoError(t, err)
	html = env.media.AdminThumb(testCtx, uploaded.Name)
	assert.Contains(t, html, "banner-10x0.png")

	_, err = env.media.Upload(testCtx, "gallery", request_models.Upload{Filename: ""})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}
