package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"simplifytour/internal/models/request_models"
	"simplifytour/internal/services"
	"simplifytour/pkg/thumbnail"
	"simplifytour/pkg/utils"
)

type MediaController struct {
	media services.MediaService
}

func NewMediaController(media services.MediaService) *MediaController {
	return &MediaController{media: media}
}

// formUpload opens a multipart file field. The caller closes the returned closer.
func formUpload(c *gin.Context, field string) (*request_models.Upload, io.Closer, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "File is required")
		return nil, nil, false
	}
	file, err := header.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "File is required")
		return nil, nil, false
	}
	return &request_models.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, file, true
}

// Upload godoc
// @Summary Upload a media file
// @Tags Admin Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Param dir formData string false "Target directory under MEDIA_ROOT"
// @Success 201 {object} utils.APIResponse
// @Router /admin/media [post]
func (m *MediaController) Upload(c *gin.Context) {
	upload, closer, ok := formUpload(c, "file")
	if !ok {
		return
	}
	defer closer.Close()

	media, err := m.media.Upload(c.Request.Context(), c.PostForm("dir"), *upload)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, media, "File uploaded successfully")
}

func floatQuery(c *gin.Context, name string, def float64) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return v, true
}

func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return v, true
}

// Thumbnail godoc
// @Summary Resolve (and generate if needed) a thumbnail of a media image
// @Tags Media
// @Produce json
// @Param url query string true "Image URL or media-relative name"
// @Param width query int false "Width, 0 keeps aspect ratio"
// @Param height query int false "Height, 0 keeps aspect ratio"
// @Param upscale query bool false "Allow upscaling (default true)"
// @Param quality query int false "JPEG quality"
// @Param left query number false "Horizontal focal point 0..1"
// @Param top query number false "Vertical focal point 0..1"
// @Param padding query bool false "Pad to the target aspect ratio"
// @Param padding_color query string false "Padding colour"
// @Success 200 {object} utils.APIResponse
// @Router /thumbnail [get]
func (m *MediaController) Thumbnail(c *gin.Context) {
	opts := thumbnail.DefaultOptions()
	width, ok := intQuery(c, "width", 0)
	if !ok {
		return
	}
	height, ok := intQuery(c, "height", 0)
	if !ok {
		return
	}
	if opts.Quality, ok = intQuery(c, "quality", opts.Quality); !ok {
		return
	}
	if opts.Left, ok = floatQuery(c, "left", opts.Left); !ok {
		return
	}
	if opts.Top, ok = floatQuery(c, "top", opts.Top); !ok {
		return
	}
	if upscale := optionalBoolQuery(c, "upscale"); upscale != nil {
		opts.Upscale = *upscale
	}
	if padding := optionalBoolQuery(c, "padding"); padding != nil {
		opts.Padding = *padding
	}
	if color := c.Query("padding_color"); color != "" {
		if !thumbnail.ValidColor(color) {
			utils.RespondError(c, http.StatusBadRequest, "Invalid padding_color")
			return
		}
		opts.PaddingColor = color
	}

	thumb := m.media.Thumbnail(m.media.URL(c.Query("url")), width, height, opts)
	utils.RespondSuccess(c, gin.H{"url": m.media.URL(thumb)}, "Thumbnail resolved successfully")
}

// StaticProxy godoc
// @Summary Serve a static file to the rich text editor from the site origin
// @Tags Admin
// @Param u query string true "Static file URL"
// @Success 200 {file} file
// @Failure 404 {object} utils.APIResponse
// @Router /admin/static_proxy [get]
func (m *MediaController) StaticProxy(c *gin.Context) {
	file, err := m.media.StaticProxy(c.Query("u"), c.Request.Host)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
