package commands

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplifytour/internal/config"
	"simplifytour/internal/models/db_models"
	"simplifytour/internal/testutil"
	"simplifytour/pkg/logger"
)

const fixtureYAML = `
keywords: [himalaya]
porters:
  - ratio: "1.5"
    count: 2
    rate: "25"
    remarks: standard porters
guides:
  - language: English
    rate: "40"
    remarks: licensed guide
packages:
  - kind: trekpackage
    title: Everest Region
    content: <p>Everest treks</p>
    keywords: [himalaya, everest]
    children:
      - kind: trekpackage
        title: Base Camp Trek
        content: <p>Classic route</p>
        porter_required: true
        other_info:
          - title: Permits
            body: Sagarmatha park entry
        itinerary:
          - title: Fly to Lukla
            from: Kathmandu
            to: Lukla
            days: "1"
            starting_time: "06:30"
          - title: Trek to Phakding
            from: Lukla
            to: Phakding
            days: "1"
          - title: Helicopter return
            from: Lukla
            to: Kathmandu
            addon: true
        prices:
          - marked_price: "1500"
            discounted_price: "1350.50"
            price_notes: Group of two
            min_group_size: 2
            max_group_size: 10
            starting_dates: ["2026-11-01", "2026-11-01", "2026-12-01"]
articles:
  - title: Packing for Everest
    content: <p>Layers</p>
`

func seedConfig(t *testing.T) *config.Config {
	return &config.Config{
		RichTextFilterLevel:  3,
		PasswordResetTimeout: time.Hour,
		JWT:                  config.JWTConfig{Secret: "test-secret", Expiration: time.Minute, RefreshExpiration: time.Hour},
		Media:                config.MediaConfig{MediaRoot: t.TempDir(), MediaURL: "/media/", ThumbnailsDir: ".thumbnails"},
	}
}

func TestLoadFixtureRejectsUnknownFields(t *testing.T) {
	_, err := LoadFixture(strings.NewReader("packages:\n  - title: A\n    colour: red\n"))
	assert.Error(t, err)

	f, err := LoadFixture(strings.NewReader(fixtureYAML))
	require.NoError(t, err)
	require.Len(t, f.Packages, 1)
	assert.Len(t, f.Packages[0].Children[0].Itinerary, 3)
}

func TestSeedCreatesContentThroughServices(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", "owner-pass", true)
	svc := newAppServices(db, seedConfig(t), logger.NewConsoleLogger("error"))

	f, err := LoadFixture(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	result, err := Seed(context.Background(), svc, f, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Packages: 2, Articles: 1, Items: 3, Prices: 1}, result)

	var places int64
	require.NoError(t, db.Model(&db_models.Place{}).Count(&places).Error)
	assert.EqualValues(t, 3, places, "places are reused by name")

	var keywords int64
	require.NoError(t, db.Model(&db_models.Keyword{}).Count(&keywords).Error)
	assert.EqualValues(t, 2, keywords)

	var parent, child db_models.Package
	require.NoError(t, db.Where("title = ?", "Everest Region").First(&parent).Error)
	require.NoError(t, db.Where("title = ?", "Base Camp Trek").First(&child).Error)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)
	assert.Equal(t, db_models.KindTrekPackage, child.ContentModel)
	assert.Equal(t, owner.ID, child.ProvidedByID)
	assert.JSONEq(t, `[{"title":"Permits","body":"Sagarmatha park entry"}]`, string(child.OtherInfo))

	var entries, addons int64
	require.NoError(t, db.Model(&db_models.PackageItinerary{}).Where("package_id = ?", child.ID).Count(&entries).Error)
	require.NoError(t, db.Model(&db_models.PackageAddon{}).Where("package_id = ?", child.ID).Count(&addons).Error)
	assert.EqualValues(t, 2, entries)
	assert.EqualValues(t, 1, addons)

	var price db_models.Price
	require.NoError(t, db.Where("package_id = ?", child.ID).First(&price).Error)
	assert.Equal(t, "1350.50", price.DiscountedPrice.Decimal.StringFixed(2))
}

func TestSeedRejectsBadDecimal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", "owner-pass", true)
	svc := newAppServices(db, seedConfig(t), logger.NewConsoleLogger("error"))

	f := &Fixture{Porters: []PorterFixture{{Rate: "twenty", Remarks: "bad"}}}
	_, err := Seed(context.Background(), svc, f, owner.ID)
	assert.ErrorContains(t, err, `"twenty" is not a number`)
}
