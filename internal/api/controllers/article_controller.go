package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	resp "simplifytour/internal/models/response_models"
	"simplifytour/internal/services"
	"simplifytour/pkg/middleware"
	"simplifytour/pkg/thumbnail"
	"simplifytour/pkg/utils"
)

const (
	galleryThumbWidth  = 200
	galleryThumbHeight = 150
)

type ArticleController struct {
	articles services.ArticleService
	media    services.MediaService
}

func NewArticleController(articles services.ArticleService, media services.MediaService) *ArticleController {
	return &ArticleController{articles: articles, media: media}
}

func (a *ArticleController) galleryThumb(name string) string {
	return a.media.URL(a.media.Thumbnail(a.media.URL(name), galleryThumbWidth, galleryThumbHeight, thumbnail.DefaultOptions()))
}

func (a *ArticleController) response(article *db_models.Article, withContent bool) resp.ArticleResponse {
	return resp.NewArticleResponse(article, withContent, a.media.URL, a.galleryThumb)
}

func (a *ArticleController) list(articles []db_models.Article) []resp.ArticleResponse {
	out := make([]resp.ArticleResponse, 0, len(articles))
	for i := range articles {
		out = append(out, a.response(&articles[i], false))
	}
	return out
}

func (a *ArticleController) imageResponse(img *db_models.ArticleGalleryImage) resp.GalleryImageResponse {
	return resp.GalleryImageResponse{
		ID:          img.ID,
		File:        img.File,
		URL:         a.media.URL(img.File),
		Thumbnail:   a.galleryThumb(img.File),
		Title:       img.Title,
		Description: img.Description,
		Order:       img.OrderValue(),
	}
}

// ListPublished godoc
// @Summary List published articles
// @Tags Articles
// @Produce json
// @Param featured query bool false "Featured only"
// @Success 200 {object} utils.APIResponse
// @Router /articles [get]
func (a *ArticleController) ListPublished(c *gin.Context) {
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	articles, total, err := a.articles.Published(c.Request.Context(), middleware.CurrentUser(c), optionalBoolQuery(c, "featured"), page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, paged(a.list(articles), total, page), "Articles fetched successfully")
}

// GetBySlug godoc
// @Summary Get a published article
// @Tags Articles
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /articles/{slug} [get]
func (a *ArticleController) GetBySlug(c *gin.Context) {
	article, err := a.articles.GetBySlug(c.Request.Context(), c.Param("slug"), middleware.CurrentUser(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, a.response(article, true), "Article fetched successfully")
}

func (a *ArticleController) List(c *gin.Context) {
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	articles, total, err := a.articles.List(c.Request.Context(), page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, paged(a.list(articles), total, page), "Articles fetched successfully")
}

// Create godoc
// @Summary Create an article
// @Tags Admin Articles
// @Accept json
// @Produce json
// @Param request body request_models.ArticleRequest true "Article"
// @Success 201 {object} utils.APIResponse
// @Router /admin/articles [post]
func (a *ArticleController) Create(c *gin.Context) {
	var req request_models.ArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	article, err := a.articles.Create(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, a.response(article, true), "Article created successfully")
}

func (a *ArticleController) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	article, err := a.articles.Get(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, a.response(article, true), "Article fetched successfully")
}

func (a *ArticleController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.ArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	article, err := a.articles.Update(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, a.response(article, true), "Article updated successfully")
}

func (a *ArticleController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := a.articles.Delete(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Article deleted successfully")
}

// ZipImport godoc
// @Summary Import the images of a zip archive into the article gallery
// @Tags Admin Articles
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Article ID"
// @Param file formData file true "Zip archive"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /admin/articles/{id}/zip_import [post]
func (a *ArticleController) ZipImport(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "File is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	images, err := a.articles.ZipImport(c.Request.Context(), id, file, header.Size)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	out := make([]resp.GalleryImageResponse, 0, len(images))
	for i := range images {
		out = append(out, a.imageResponse(&images[i]))
	}
	utils.RespondSuccess(c, out, "Images imported successfully")
}

// AddImage godoc
// @Summary Upload one gallery image
// @Tags Admin Articles
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Article ID"
// @Param file formData file true "Image"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param order formData int false "Order"
// @Success 201 {object} utils.APIResponse
// @Router /admin/articles/{id}/images [post]
func (a *ArticleController) AddImage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	upload, closer, ok := formUpload(c, "file")
	if !ok {
		return
	}
	defer closer.Close()

	req := request_models.GalleryImageRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if raw := c.PostForm("order"); raw != "" {
		order, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid order")
			return
		}
		req.Order = &order
	}

	img, err := a.articles.AddImage(c.Request.Context(), id, *upload, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, a.imageResponse(img), "Image added successfully")
}

func (a *ArticleController) UpdateImage(c *gin.Context) {
	id, ok := uuidParam(c, "imageId")
	if !ok {
		return
	}
	var req request_models.GalleryImageRequest
	if !bindJSON(c, &req) {
		return
	}
	img, err := a.articles.UpdateImage(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, a.imageResponse(img), "Image updated successfully")
}

func (a *ArticleController) DeleteImage(c *gin.Context) {
	id, ok := uuidParam(c, "imageId")
	if !ok {
		return
	}
	if err := a.articles.DeleteImage(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Image deleted successfully")
}
