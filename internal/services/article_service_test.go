package services

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	"simplifytour/pkg/utils"
)

func articleRequest(title string) request_models.ArticleRequest {
	return request_models.ArticleRequest{
		DisplayableRequest: request_models.DisplayableRequest{Title: title},
		Content:            "<p>" + title + " travel notes</p>",
	}
}

func zipArchive(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestArticleService_CreateAndGetBySlug(t *testing.T) {
	env := newTestEnv(t)

	parent, err := env.articles.Create(testCtx, articleRequest("Travel Guides"))
	require.NoError(t, err)
	assert.Equal(t, "travel-guides", parent.Slug)
	assert.Equal(t, "Travel Guides travel notes", parent.Description)

	req := articleRequest("Best Time To Visit")
	req.ParentID = &parent.ID
	child, err := env.articles.Create(testCtx, req)
	require.NoError(t, err)
	assert.Equal(t, "travel-guides/best-time-to-visit", child.Slug)
	require.Len(t, child.Ascendants, 1)
	assert.Equal(t, parent.ID, child.Ascendants[0].ID)

	update := articleRequest("Travel Guides")
	update.ParentID = &parent.ID
	_, err = env.articles.Update(testCtx, parent.ID, update)
	assert.ErrorIs(t, err, utils.ErrIllegalMove)

	draft := articleRequest("Draft Notes")
	draft.Status = db_models.StatusDraft
	_, err = env.articles.Create(testCtx, draft)
	require.NoError(t, err)

	_, err = env.articles.GetBySlug(testCtx, "draft-notes", nil)
	assert.ErrorIs(t, err, utils.ErrArticleNotFound)
	got, err := env.articles.GetBySlug(testCtx, "/draft-notes/", env.staff)
	require.NoError(t, err)
	assert.Equal(t, "Draft Notes", got.Title)

	_, total, err := env.articles.Published(testCtx, nil, nil, utils.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestArticleService_ReparentRebuildsSlugs(t *testing.T) {
	env := newTestEnv(t)

	regions, err := env.articles.Create(testCtx, articleRequest("Regions"))
	require.NoError(t, err)
	everest, err := env.articles.Create(testCtx, articleRequest("Everest"))
	require.NoError(t, err)
	req := articleRequest("Base Camp")
	req.ParentID = &everest.ID
	camp, err := env.articles.Create(testCtx, req)
	require.NoError(t, err)
	require.Equal(t, "everest/base-camp", camp.Slug)

	move := articleRequest("Everest")
	move.ParentID = &regions.ID
	moved, err := env.articles.Update(testCtx, everest.ID, move)
	require.NoError(t, err)
	assert.Equal(t, "regions/everest", moved.Slug)
	camp, err = env.articles.Get(testCtx, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, "regions/everest/base-camp", camp.Slug)

	cycle := articleRequest("Regions")
	cycle.ParentID = &camp.ID
	_, err = env.articles.Update(testCtx, regions.ID, cycle)
	assert.ErrorIs(t, err, utils.ErrIllegalMove)

	moved, err = env.articles.Update(testCtx, everest.ID, articleRequest("Everest"))
	require.NoError(t, err)
	assert.Equal(t, "everest", moved.Slug)
	assert.Nil(t, moved.ParentID)
	camp, err = env.articles.Get(testCtx, camp.ID)
	require.NoError(t, err)
	assert.Equal(t, "everest/base-camp", camp.Slug)
}

func TestArticleService_ZipImport(t *testing.T) {
	env := newTestEnv(t)
	article, err := env.articles.Create(testCtx, articleRequest("Gallery"))
	require.NoError(t, err)

	archive := zipArchive(t, map[string][]byte{
		"photos/rara-lake.png": pngBytes(t, 8, 6),
		"readme.txt":           []byte("not an image"),
	})
	_, err = env.articles.ZipImport(testCtx, article.ID, bytes.NewReader([]byte("nope")), 4)
	assert.ErrorIs(t, err, utils.ErrInvalidArchive)

	images, err := env.articles.ZipImport(testCtx, article.ID, bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "packages/gallery/rara-lake.png", images[0].File)
	assert.Equal(t, "Rara Lake", images[0].Title)
	assert.Equal(t, images[0].Title, images[0].Description)
	assert.True(t, env.store.Exists(images[0].File))

	got, err := env.articles.Get(testCtx, article.ID)
	require.NoError(t, err)
	assert.Len(t, got.Images, 1)
}

func TestArticleService_Images(t *testing.T) {
	env := newTestEnv(t)
	article, err := env.articles.Create(testCtx, articleRequest("Pokhara"))
	require.NoError(t, err)

	_, err = env.articles.AddImage(testCtx, article.ID, request_models.Upload{
		Filename: "notes.txt",
		Content:  bytes.NewReader([]byte("text")),
	}, request_models.GalleryImageRequest{})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	image, err := env.articles.AddImage(testCtx, article.ID, request_models.Upload{
		Filename: "phewa.png",
		Content:  bytes.NewReader(pngBytes(t, 4, 4)),
	}, request_models.GalleryImageRequest{Title: "Phewa Lake"})
	require.NoError(t, err)
	assert.Equal(t, "Phewa Lake", image.Description)
	assert.Equal(t, 0, image.OrderValue())

	order := 3
	updated, err := env.articles.UpdateImage(testCtx, image.ID, request_models.GalleryImageRequest{Title: "Phewa", Description: "Boats", Order: &order})
	require.NoError(t, err)
	assert.Equal(t, "Boats", updated.Description)
	assert.Equal(t, 3, updated.OrderValue())

	require.NoError(t, env.articles.DeleteImage(testCtx, image.ID))
	assert.False(t, env.store.Exists(image.File))
	assert.ErrorIs(t, env.articles.DeleteImage(testCtx, image.ID), utils.ErrImageNotFound)
}
