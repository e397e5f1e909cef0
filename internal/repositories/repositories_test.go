package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/testutil"
)

func newPackage(provider uuid.UUID, title, slug string, parent *uuid.UUID, order int) *db_models.Package {
	return &db_models.Package{
		Displayable:  db_models.Displayable{Title: title, Slug: slug, Status: db_models.StatusPublished},
		Orderable:    db_models.Orderable{Order: &order},
		ContentTyped: db_models.ContentTyped{ContentModel: db_models.KindPackage},
		ParentID:     parent,
		ProvidedByID: provider,
		OtherInfo:    []byte("[]"),
	}
}

func TestUserRepository_CreateAddsProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &db_models.User{Email: "traveller@example.com", IsActive: true}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByEmail(ctx, "traveller@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.Profile)
	assert.Equal(t, user.ID, found.Profile.UserID)

	exists, err := repo.EmailExists(ctx, "TRAVELLER@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_ListAndCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &db_models.User{Email: "a@example.com", IsConfirmed: true, DateJoined: 1}))
	require.NoError(t, repo.Create(ctx, &db_models.User{Email: "b@example.com", DateJoined: 2}))

	users, total, err := repo.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "a@example.com", users[0].Email)

	users, total, err = repo.List(ctx, "b@example.com", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)

	confirmed, unconfirmed, err := repo.CountByConfirmation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), confirmed)
	assert.Equal(t, int64(1), unconfirmed)
}

func TestPackageRepository_AssociationsAndDetail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateUser(t, db, "staff@example.com", "pass", true)
	ctx := context.Background()

	staff := NewStaffRepository(db)
	porter := &db_models.Porter{Remarks: "strong", Count: 2}
	require.NoError(t, staff.CreatePorter(ctx, porter))

	repo := NewPackageRepository(db)
	pkg := newPackage(user.ID, "Everest", "everest", nil, 0)
	pkg.Porters = []db_models.Porter{*porter}
	require.NoError(t, repo.Create(ctx, pkg))

	itinerary := NewItineraryRepository(db)
	item := &db_models.ItineraryItem{Title: "Day 1", Description: "Fly", ProvidedByID: user.ID}
	require.NoError(t, itinerary.CreateItem(ctx, item))
	zero := 0
	require.NoError(t, itinerary.AddEntry(ctx, &db_models.PackageItinerary{
		Orderable: db_models.Orderable{Order: &zero}, PackageID: pkg.ID, ItemID: item.ID,
	}))

	detail, err := repo.FindDetail(ctx, pkg.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	require.Len(t, detail.Porters, 1)
	require.Len(t, detail.Itinerary, 1)
	assert.Equal(t, "Day 1", detail.Itinerary[0].Title())

	exists, err := itinerary.EntryExists(ctx, pkg.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPackageRepository_FilterAndSiblings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateUser(t, db, "staff@example.com", "pass", true)
	ctx := context.Background()
	repo := NewPackageRepository(db)

	root := newPackage(user.ID, "Treks", "treks", nil, 0)
	require.NoError(t, repo.Create(ctx, root))
	first := newPackage(user.ID, "ABC", "treks/abc", &root.ID, 0)
	second := newPackage(user.ID, "EBC", "treks/ebc", &root.ID, 1)
	third := newPackage(user.ID, "Manaslu", "treks/manaslu", &root.ID, 2)
	third.Status = db_models.StatusDraft
	for _, p := range []*db_models.Package{first, second, third} {
		require.NoError(t, repo.Create(ctx, p))
	}

	count, err := repo.CountSiblings(ctx, &root.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	now := int64(1 << 40)
	published, total, err := repo.List(ctx, PackageFilter{ParentID: &root.ID, PublishedAt: &now})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "ABC", published[0].Title)

	require.NoError(t, repo.Delete(ctx, first.ID))
	require.NoError(t, repo.ShiftSiblingOrder(ctx, &root.ID, 0))

	children, err := repo.ListChildren(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, 0, children[0].OrderValue())
	assert.Equal(t, 1, children[1].OrderValue())

	taken, err := repo.SlugExists(ctx, "treks/abc", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken, "deleted slugs stay reserved")

	chain, err := repo.FindBySlugs(ctx, []string{"treks", "treks/ebc"}, PackageFilter{PublishedAt: &now})
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "treks/ebc", chain[0].Slug)
}

func TestSettingRepository_Upsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewSettingRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "RICHTEXT_FILTER_LEVEL", "2")
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, "RICHTEXT_FILTER_LEVEL")
	require.NoError(t, err)
	assert.True(t, deleted)

	setting, err := repo.Upsert(ctx, "RICHTEXT_FILTER_LEVEL", "1")
	require.NoError(t, err)
	assert.Equal(t, "1", setting.Value)

	got, err := repo.Get(ctx, "RICHTEXT_FILTER_LEVEL")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1", got.Value)
}
