package services

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"simplifytour/internal/config"
	"simplifytour/internal/models/request_models"
	resp "simplifytour/internal/models/response_models"
	"simplifytour/pkg/logger"
	"simplifytour/pkg/storage"
	"simplifytour/pkg/thumbnail"
	"simplifytour/pkg/utils"
)

const UploadsDir = "uploads"

// StaticFile is a file read from STATIC_ROOT, ready to be written out.
type StaticFile struct {
	Content     []byte
	ContentType string
}

type MediaService interface {
	Upload(ctx context.Context, dir string, upload request_models.Upload) (*resp.MediaResponse, error)
	Thumbnail(imageURL string, width, height int, opts thumbnail.Options) string
	AdminThumb(ctx context.Context, imageURL string) string
	URL(name string) string
	StaticProxy(rawURL, host string) (*StaticFile, error)
}

type mediaService struct {
	store      storage.Storage
	thumbs     *thumbnail.Thumbnailer
	settings   SettingService
	staticRoot string
	staticURL  string
	log        logger.Logger
}

func NewMediaService(store storage.Storage, thumbs *thumbnail.Thumbnailer, settings SettingService, cfg *config.Config, log logger.Logger) MediaService {
	return &mediaService{
		store:      store,
		thumbs:     thumbs,
		settings:   settings,
		staticRoot: cfg.Media.StaticRoot,
		staticURL:  cfg.Media.StaticURL,
		log:        log,
	}
}

func (s *mediaService) URL(name string) string {
	if name == "" {
		return ""
	}
	if strings.Contains(name, "://") || strings.HasPrefix(name, "/") {
		return name
	}
	return s.store.URL(name)
}

func (s *mediaService) Upload(ctx context.Context, dir string, upload request_models.Upload) (*resp.MediaResponse, error) {
	base := path.Base(strings.ReplaceAll(upload.Filename, "\\", "/"))
	if upload.Content == nil || base == "" || base == "." || base == "/" {
		return nil, fmt.Errorf("%w: missing file", utils.ErrInvalidInput)
	}
	dir = strings.Trim(path.Clean("/"+dir), "/")
	if dir == "" {
		dir = UploadsDir
	}
	name, err := s.store.Save(path.Join(dir, base), upload.Content)
	if err != nil {
		s.log.Error("media upload failed: ", err)
		return nil, fmt.Errorf("save upload: %w", err)
	}
	return &resp.MediaResponse{Name: name, URL: s.store.URL(name)}, nil
}

func (s *mediaService) Thumbnail(imageURL string, width, height int, opts thumbnail.Options) string {
	return s.thumbs.Thumbnail(imageURL, width, height, opts)
}

func (s *mediaService) AdminThumb(ctx context.Context, imageURL string) string {
	size := s.settings.GetString(ctx, SettingAdminThumbSize)
	width, height, err := config.MediaConfig{AdminThumbSize: size}.AdminThumbDimensions()
	if err != nil {
		width, height = 24, 24
	}
	return s.thumbs.AdminThumb(imageURL, width, height)
}

// normalizeURL drops the scheme so "https://h/x" and "//h/x" compare equal.
func normalizeURL(u string) string {
	if i := strings.LastIndex(u, "://"); i >= 0 {
		return "//" + u[i+3:]
	}
	return u
}

// staticName reduces a URL given to the rich text editor's plugins to a path
// relative to STATIC_ROOT.
func (s *mediaService) staticName(rawURL, host string) string {
	name := normalizeURL(rawURL)
	for _, prefix := range []string{"//" + host, normalizeURL(s.staticURL), "/"} {
		name = strings.TrimPrefix(name, prefix)
	}
	name = strings.SplitN(name, "?", 2)[0]
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return name
}

func (s *mediaService) StaticProxy(rawURL, host string) (*StaticFile, error) {
	name := s.staticName(rawURL, host)
	cleaned := strings.TrimPrefix(path.Clean("/"+name), "/")
	if cleaned == "" || cleaned == "." {
		return nil, utils.ErrFileNotFound
	}

	content, err := os.ReadFile(filepath.Join(s.staticRoot, filepath.FromSlash(cleaned)))
	if err != nil {
		return nil, utils.ErrFileNotFound
	}

	ext := strings.ToLower(path.Ext(cleaned))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if ext == ".htm" {
		baseURL := strings.TrimSuffix(s.staticURL, "/") + "/"
		if dir := path.Dir(cleaned); dir != "." {
			baseURL += dir + "/"
		}
		if !strings.Contains(baseURL, "://") && !strings.HasPrefix(baseURL, "//") {
			baseURL = "//" + host + "/" + strings.TrimPrefix(baseURL, "/")
		}
		content = bytes.ReplaceAll(content, []byte("<head>"), []byte("<head><base href='"+baseURL+"'>"))
	}
	return &StaticFile{Content: content, ContentType: contentType}, nil
}
