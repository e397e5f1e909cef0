package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	"simplifytour/pkg/utils"
)

func TestPackageService_CreateBuildsHierarchicalSlugs(t *testing.T) {
	env := newTestEnv(t)

	root := env.createPackage(t, db_models.KindPackage, "Nepal Treks", nil)
	first := env.createPackage(t, db_models.KindTrekPackage, "Everest Base Camp", root)
	second := env.createPackage(t, db_models.KindTrekPackage, "Annapurna Circuit", root)

	assert.Equal(t, "nepal-treks", root.Slug)
	assert.Equal(t, "nepal-treks/everest-base-camp", first.Slug)
	assert.Equal(t, 0, first.OrderValue())
	assert.Equal(t, 1, second.OrderValue())
	assert.Equal(t, db_models.KindTrekPackage, first.ContentModel)
	assert.Equal(t, db_models.StatusPublished, first.Status)
	assert.True(t, first.InSitemap)
	require.Len(t, first.Ascendants, 1)
	assert.Equal(t, root.ID, first.Ascendants[0].ID)

	dup := env.createPackage(t, db_models.KindPackage, "Nepal Treks", nil)
	assert.NotEqual(t, root.Slug, dup.Slug)
}

func TestPackageService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.packages.Create(testCtx, "hotel", packageRequest("Hotel", nil), env.staff.ID)
	assert.ErrorIs(t, err, utils.ErrUnknownKind)

	req := packageRequest("Empty", nil)
	req.Content = "<p> </p>"
	_, err = env.packages.Create(testCtx, db_models.KindPackage, req, env.staff.ID)
	assert.ErrorIs(t, err, utils.ErrContentRequired)

	req.Status = db_models.StatusDraft
	draft, err := env.packages.Create(testCtx, db_models.KindPackage, req, env.staff.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.StatusDraft, draft.Status)

	req = packageRequest("Scripted", nil)
	req.Content = `<p>ok</p><script>alert(1)</script>`
	pkg, err := env.packages.Create(testCtx, db_models.KindPackage, req, env.staff.ID)
	require.NoError(t, err)
	assert.NotContains(t, pkg.Content, "<script>")
}

func TestPackageService_KindMismatch(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.createPackage(t, db_models.KindPackage, "Kathmandu Tour", nil)

	_, err := env.packages.Get(testCtx, db_models.KindTrekPackage, pkg.ID)
	mismatch, ok := IsKindMismatch(err)
	require.True(t, ok)
	assert.Equal(t, db_models.KindPackage, mismatch.Actual)

	got, err := env.packages.Get(testCtx, db_models.KindPackage, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, pkg.ID, got.ID)
}

func TestPackageService_UpdatePropagatesSlug(t *testing.T) {
	env := newTestEnv(t)
	root := env.createPackage(t, db_models.KindPackage, "Treks", nil)
	child := env.createPackage(t, db_models.KindPackage, "Langtang", root)
	grandchild := env.createPackage(t, db_models.KindPackage, "Gosaikunda", child)

	req := packageRequest("Treks", nil)
	req.Slug = "himalaya"
	_, err := env.packages.Update(testCtx, db_models.KindPackage, root.ID, req)
	require.NoError(t, err)

	got, err := env.packages.Get(testCtx, "", grandchild.ID)
	require.NoError(t, err)
	assert.Equal(t, "himalaya/langtang/gosaikunda", got.Slug)
}

func TestPackageService_Move(t *testing.T) {
	env := newTestEnv(t)
	a := env.createPackage(t, db_models.KindPackage, "A", nil)
	b := env.createPackage(t, db_models.KindPackage, "B", nil)
	child := env.createPackage(t, db_models.KindPackage, "Child", a)
	leaf := env.createPackage(t, db_models.KindPackage, "Leaf", child)
	sibling := env.createPackage(t, db_models.KindPackage, "Sibling", a)

	_, err := env.packages.Move(testCtx, a.ID, request_models.MovePackageRequest{ParentID: &leaf.ID})
	assert.ErrorIs(t, err, utils.ErrIllegalMove)

	moved, err := env.packages.Move(testCtx, child.ID, request_models.MovePackageRequest{ParentID: &b.ID})
	require.NoError(t, err)
	assert.Equal(t, "b/child", moved.Slug)
	assert.Equal(t, 0, moved.OrderValue())

	gotLeaf, err := env.packages.Get(testCtx, "", leaf.ID)
	require.NoError(t, err)
	assert.Equal(t, "b/child/leaf", gotLeaf.Slug)

	gotSibling, err := env.packages.Get(testCtx, "", sibling.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, gotSibling.OrderValue())
}

func TestPackageService_DeleteRemovesSubtree(t *testing.T) {
	env := newTestEnv(t)
	root := env.createPackage(t, db_models.KindPackage, "Root", nil)
	first := env.createPackage(t, db_models.KindPackage, "First", root)
	leaf := env.createPackage(t, db_models.KindPackage, "Leaf", first)
	second := env.createPackage(t, db_models.KindPackage, "Second", root)

	err := env.packages.Delete(testCtx, db_models.KindTrekPackage, first.ID)
	_, ok := IsKindMismatch(err)
	assert.True(t, ok)

	require.NoError(t, env.packages.Delete(testCtx, db_models.KindPackage, first.ID))

	_, err = env.packages.Get(testCtx, "", leaf.ID)
	assert.ErrorIs(t, err, utils.ErrPackageNotFound)

	got, err := env.packages.Get(testCtx, "", second.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.OrderValue())
}

func TestPackageService_SetOtherInfo(t *testing.T) {
	env := newTestEnv(t)
	pkg := env.createPackage(t, db_models.KindPackage, "Info", nil)

	_, err := env.packages.SetOtherInfo(testCtx, pkg.ID, "{not json")
	assert.ErrorIs(t, err, utils.ErrInvalidOtherInfo)

	got, err := env.packages.SetOtherInfo(testCtx, pkg.ID, `[{"title":"Permit","value":"TIMS"}]`)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"Permit","value":"TIMS"}]`, string(got.OtherInfo))

	got, err = env.packages.SetOtherInfo(testCtx, pkg.ID, "  ")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got.OtherInfo))
}

func TestPackageService_WithAscendantsForSlug(t *testing.T) {
	env := newTestEnv(t)
	root := env.createPackage(t, db_models.KindPackage, "Asia", nil)
	mid := env.createPackage(t, db_models.KindPackage, "Nepal", root)
	leaf := env.createPackage(t, db_models.KindTrekPackage, "Mardi Himal", mid)

	got, err := env.packages.WithAscendantsForSlug(testCtx, "/asia/nepal/mardi-himal/", nil)
	require.NoError(t, err)
	assert.Equal(t, leaf.ID, got.ID)
	require.Len(t, got.Ascendants, 2)
	assert.Equal(t, mid.ID, got.Ascendants[0].ID)
	assert.Equal(t, root.ID, got.Ascendants[1].ID)

	_, err = env.packages.WithAscendantsForSlug(testCtx, "asia/nowhere", nil)
	assert.ErrorIs(t, err, utils.ErrPackageNotFound)

	req := packageRequest("Hidden", nil)
	req.Status = db_models.StatusDraft
	_, err = env.packages.Create(testCtx, db_models.KindPackage, req, env.staff.ID)
	require.NoError(t, err)

	_, err = env.packages.WithAscendantsForSlug(testCtx, "hidden", nil)
	assert.ErrorIs(t, err, utils.ErrPackageNotFound)

	got, err = env.packages.WithAscendantsForSlug(testCtx, "hidden", env.staff)
	require.NoError(t, err)
	assert.Equal(t, "hidden", got.Slug)
}

func TestPackageService_AscendantsFollowVisibility(t *testing.T) {
	env := newTestEnv(t)

	req := packageRequest("Secret Plans", nil)
	req.Status = db_models.StatusDraft
	parent, err := env.packages.Create(testCtx, db_models.KindPackage, req, env.staff.ID)
	require.NoError(t, err)
	child := env.createPackage(t, db_models.KindTrekPackage, "Hidden Valley", parent)

	tests := []struct {
		name       string
		user       *db_models.User
		ascendants int
	}{
		{name: "anonymous does not see the draft parent", user: nil, ascendants: 0},
		{name: "staff sees the whole chain", user: env.staff, ascendants: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.packages.WithAscendantsForSlug(testCtx, child.Slug, tt.user)
			require.NoError(t, err)
			assert.Equal(t, child.ID, got.ID)
			assert.Len(t, got.Ascendants, tt.ascendants)
			for _, a := range got.Ascendants {
				assert.NotEqual(t, "Secret Plans", a.Title, "draft parent leaked")
			}
		})
	}
}

func TestPackageService_HomePackage(t *testing.T) {
	env := newTestEnv(t)

	req := packageRequest("Home", nil)
	req.Slug = db_models.HomeSlug
	home, err := env.packages.Create(testCtx, db_models.KindPackage, req, env.staff.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.HomeSlug, home.Slug)
	assert.False(t, home.CanAdd())

	_, err = env.packages.Create(testCtx, db_models.KindPackage, packageRequest("Under Home", home), env.staff.ID)
	assert.ErrorIs(t, err, utils.ErrCannotAdd)

	for _, slug := range []string{"/", ""} {
		got, err := env.packages.WithAscendantsForSlug(testCtx, slug, nil)
		require.NoError(t, err)
		assert.Equal(t, home.ID, got.ID)
		assert.Empty(t, got.Ascendants)
	}
}

func TestPackageService_SlugFallsBackToKind(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		kind  string
		title string
		want  string
	}{
		{kind: db_models.KindTrekPackage, title: "!!!", want: "trekpackage"},
		{kind: db_models.KindAdventurousPackage, title: "¿?", want: "adventurouspackage"},
		{kind: db_models.KindPackage, title: "Everest!", want: "everest"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			pkg := env.createPackage(t, tt.kind, tt.title, nil)
			assert.Equal(t, tt.want, pkg.Slug)
		})
	}
}

func TestPackageService_PublishedHonoursLoginRequired(t *testing.T) {
	env := newTestEnv(t)
	env.createPackage(t, db_models.KindPackage, "Open", nil)
	req := packageRequest("Members", nil)
	req.LoginRequired = true
	_, err := env.packages.Create(testCtx, db_models.KindPackage, req, env.staff.ID)
	require.NoError(t, err)

	all := utils.Page{Page: 1, PageSize: 10}
	member := &db_models.User{Email: "member@example.com", IsActive: true}

	_, total, err := env.packages.Published(testCtx, nil, PublishedFilter{}, all)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = env.packages.Published(testCtx, member, PublishedFilter{}, all)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, err = env.settings.Set(testCtx, SettingIncludeLoginRequired, "true")
	require.NoError(t, err)
	_, total, err = env.packages.Published(testCtx, nil, PublishedFilter{}, all)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, _, err = env.packages.Published(testCtx, nil, PublishedFilter{Kind: "hotel"}, all)
	assert.ErrorIs(t, err, utils.ErrUnknownKind)
}
