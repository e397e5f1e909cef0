package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	"simplifytour/internal/repositories"
	"simplifytour/pkg/logger"
	"simplifytour/pkg/richtext"
	"simplifytour/pkg/storage"
	"simplifytour/pkg/utils"
)

// GalleriesUploadDir is where zip imports and gallery uploads are stored.
const GalleriesUploadDir = "packages"

const maxZipEntrySize = 32 << 20

type ArticleService interface {
	Create(ctx context.Context, req request_models.ArticleRequest) (*db_models.Article, error)
	Update(ctx context.Context, id uuid.UUID, req request_models.ArticleRequest) (*db_models.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*db_models.Article, error)
	GetBySlug(ctx context.Context, slug string, user *db_models.User) (*db_models.Article, error)
	List(ctx context.Context, page utils.Page) ([]db_models.Article, int64, error)
	Published(ctx context.Context, user *db_models.User, featured *bool, page utils.Page) ([]db_models.Article, int64, error)

	ZipImport(ctx context.Context, id uuid.UUID, r io.ReaderAt, size int64) ([]db_models.ArticleGalleryImage, error)
	AddImage(ctx context.Context, articleID uuid.UUID, upload request_models.Upload, req request_models.GalleryImageRequest) (*db_models.ArticleGalleryImage, error)
	UpdateImage(ctx context.Context, imageID uuid.UUID, req request_models.GalleryImageRequest) (*db_models.ArticleGalleryImage, error)
	DeleteImage(ctx context.Context, imageID uuid.UUID) error
}

type articleService struct {
	repo     repositories.ArticleRepository
	storage  storage.Storage
	settings SettingService
	log      logger.Logger
}

func NewArticleService(repo repositories.ArticleRepository, store storage.Storage, settings SettingService, log logger.Logger) ArticleService {
	return &articleService{repo: repo, storage: store, settings: settings, log: log}
}

func (s *articleService) load(ctx context.Context, id uuid.UUID) (*db_models.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if article == nil {
		return nil, utils.ErrArticleNotFound
	}
	return article, nil
}

func (s *articleService) uniqueSlug(ctx context.Context, slug string, id uuid.UUID) (string, error) {
	unique, err := utils.UniqueSlug(slug, func(candidate string) (bool, error) {
		return s.repo.SlugExists(ctx, candidate, id)
	})
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	return unique, nil
}

func (s *articleService) apply(ctx context.Context, article *db_models.Article, req request_models.ArticleRequest, creating bool) error {
	if err := requireContent(req.Status, req.Content); err != nil {
		return err
	}
	var parent *db_models.Article
	if req.ParentID != nil {
		if article.ID != uuid.Nil {
			if err := s.canMove(ctx, article.ID, req.ParentID); err != nil {
				return err
			}
		}
		var err error
		if parent, err = s.load(ctx, *req.ParentID); err != nil {
			return err
		}
	}

	oldSlug := article.Slug
	moved := !creating && !sameParent(article.ParentID, req.ParentID)
	applyDisplayable(&article.Displayable, req.DisplayableRequest, creating)
	article.ParentID = req.ParentID
	article.Content = richtext.Escape(req.Content, s.settings.GetInt(ctx, SettingRichTextFilterLevel))
	article.FeaturedImage = req.FeaturedImage
	article.IsFeatured = req.IsFeatured
	article.PrepareDisplayable(article.Content, utils.NowUnixSeconds())

	slug := cleanSlug(req.Slug)
	switch {
	case slug != "":
	case moved:
		parentSlug := ""
		if parent != nil {
			parentSlug = parent.Slug
		}
		slug = rebaseSlug(oldSlug, parentSlug)
	case !creating:
		slug = oldSlug
	default:
		slug = utils.Slugify(article.Title)
		if slug == "" {
			slug = db_models.KindArticle
		}
		if parent != nil {
			slug = parent.Slug + "/" + slug
		}
	}
	if slug == oldSlug {
		article.Slug = oldSlug
		return nil
	}
	var err error
	article.Slug, err = s.uniqueSlug(ctx, slug, article.ID)
	return err
}

func (s *articleService) Create(ctx context.Context, req request_models.ArticleRequest) (*db_models.Article, error) {
	article := &db_models.Article{}
	if err := s.apply(ctx, article, req, true); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, article); err != nil {
		s.log.Error("create article: ", err)
		return nil, utils.ErrDatabaseError
	}
	return s.Get(ctx, article.ID)
}

func (s *articleService) Update(ctx context.Context, id uuid.UUID, req request_models.ArticleRequest) (*db_models.Article, error) {
	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSlug := article.Slug
	if err := s.apply(ctx, article, req, false); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, article); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if article.Slug != oldSlug {
		if err := s.propagateSlug(ctx, article.ID, oldSlug, article.Slug); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

func (s *articleService) canMove(ctx context.Context, id uuid.UUID, newParentID *uuid.UUID) error {
	return checkMove(id, newParentID, func(parentID uuid.UUID) (*uuid.UUID, error) {
		parent, err := s.load(ctx, parentID)
		if err != nil {
			return nil, err
		}
		return parent.ParentID, nil
	}, "an article")
}

// propagateSlug rewrites the slug prefix of every descendant article.
func (s *articleService) propagateSlug(ctx context.Context, parentID uuid.UUID, oldSlug, newSlug string) error {
	children, err := s.repo.ListChildren(ctx, parentID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	for _, child := range children {
		childOld := child.Slug
		if !strings.HasPrefix(childOld, oldSlug+"/") {
			continue
		}
		childNew, err := s.uniqueSlug(ctx, newSlug+strings.TrimPrefix(childOld, oldSlug), child.ID)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateFields(ctx, child.ID, map[string]interface{}{"slug": childNew}); err != nil {
			return utils.ErrDatabaseError
		}
		if err := s.propagateSlug(ctx, child.ID, childOld, childNew); err != nil {
			return err
		}
	}
	return nil
}

func (s *articleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *articleService) ascendants(ctx context.Context, article *db_models.Article) error {
	seen := map[uuid.UUID]bool{article.ID: true}
	for parentID := article.ParentID; parentID != nil && !seen[*parentID]; {
		seen[*parentID] = true
		parent, err := s.repo.FindByID(ctx, *parentID)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if parent == nil {
			break
		}
		parent.Images = nil
		article.Ascendants = append(article.Ascendants, *parent)
		parentID = parent.ParentID
	}
	return nil
}

func (s *articleService) Get(ctx context.Context, id uuid.UUID) (*db_models.Article, error) {
	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ascendants(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// GetBySlug hides unpublished articles from everyone but staff.
func (s *articleService) GetBySlug(ctx context.Context, slug string, user *db_models.User) (*db_models.Article, error) {
	var publishedAt *int64
	if user == nil || !user.IsStaff {
		now := utils.NowUnixSeconds()
		publishedAt = &now
	}
	article, err := s.repo.FindBySlug(ctx, strings.Trim(slug, "/"), publishedAt)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if article == nil {
		return nil, utils.ErrArticleNotFound
	}
	if err := s.ascendants(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) List(ctx context.Context, page utils.Page) ([]db_models.Article, int64, error) {
	articles, total, err := s.repo.List(ctx, repositories.ArticleFilter{Limit: page.PageSize, Offset: page.Offset()})
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	return articles, total, nil
}

func (s *articleService) Published(ctx context.Context, user *db_models.User, featured *bool, page utils.Page) ([]db_models.Article, int64, error) {
	filter := repositories.ArticleFilter{Featured: featured, Limit: page.PageSize, Offset: page.Offset()}
	if user == nil || !user.IsStaff {
		now := utils.NowUnixSeconds()
		filter.PublishedAt = &now
	}
	articles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	return articles, total, nil
}

func galleryDir(article *db_models.Article) string {
	slug := article.Slug
	if slug == db_models.HomeSlug {
		slug = ""
	}
	return path.Join(GalleriesUploadDir, slug)
}

func (s *articleService) appendImage(ctx context.Context, article *db_models.Article, file string, req request_models.GalleryImageRequest) (*db_models.ArticleGalleryImage, error) {
	image := &db_models.ArticleGalleryImage{
		ArticleID:   article.ID,
		File:        file,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
	}
	if image.Title == "" {
		image.Title = utils.TitleFromFilename(file)
	}
	if image.Description == "" {
		image.Description = image.Title
	}
	if req.Order != nil {
		image.Order = req.Order
	} else {
		count, err := s.repo.CountImages(ctx, article.ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		order := int(count)
		image.Order = &order
	}
	if err := s.repo.AddImage(ctx, image); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return image, nil
}

// ZipImport stores every decodable image of the archive and appends it to
// the gallery. Entries that are not images are skipped.
func (s *articleService) ZipImport(ctx context.Context, id uuid.UUID, r io.ReaderAt, size int64) ([]db_models.ArticleGalleryImage, error) {
	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return nil, utils.ErrInvalidArchive
	}

	imported := []db_models.ArticleGalleryImage{}
	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		data, err := readZipEntry(entry)
		if err != nil {
			s.log.Warn("skip zip entry ", entry.Name, ": ", err)
			continue
		}
		if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
			continue
		}

		name := path.Base(strings.ReplaceAll(entry.Name, "\\", "/"))
		saved, err := s.storage.Save(path.Join(galleryDir(article), name), bytes.NewReader(data))
		if err != nil {
			return imported, fmt.Errorf("save %s: %w", name, err)
		}
		image, err := s.appendImage(ctx, article, saved, request_models.GalleryImageRequest{})
		if err != nil {
			return imported, err
		}
		imported = append(imported, *image)
	}
	return imported, nil
}

func readZipEntry(entry *zip.File) ([]byte, error) {
	if entry.UncompressedSize64 > maxZipEntrySize {
		return nil, fmt.Errorf("entry larger than %d bytes", maxZipEntrySize)
	}
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, maxZipEntrySize))
}

func (s *articleService) AddImage(ctx context.Context, articleID uuid.UUID, upload request_models.Upload, req request_models.GalleryImageRequest) (*db_models.ArticleGalleryImage, error) {
	article, err := s.load(ctx, articleID)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(upload.Content)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: file is not an image", utils.ErrInvalidInput)
	}
	saved, err := s.storage.Save(path.Join(galleryDir(article), path.Base(upload.Filename)), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", upload.Filename, err)
	}
	return s.appendImage(ctx, article, saved, req)
}

func (s *articleService) findImage(ctx context.Context, id uuid.UUID) (*db_models.ArticleGalleryImage, error) {
	image, err := s.repo.FindImage(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if image == nil {
		return nil, utils.ErrImageNotFound
	}
	return image, nil
}

func (s *articleService) UpdateImage(ctx context.Context, imageID uuid.UUID, req request_models.GalleryImageRequest) (*db_models.ArticleGalleryImage, error) {
	image, err := s.findImage(ctx, imageID)
	if err != nil {
		return nil, err
	}
	image.Title = strings.TrimSpace(req.Title)
	image.Description = strings.TrimSpace(req.Description)
	if req.Order != nil {
		image.Order = req.Order
	}
	if err := s.repo.SaveImage(ctx, image); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return image, nil
}

func (s *articleService) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	image, err := s.findImage(ctx, imageID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteImage(ctx, image); err != nil {
		return utils.ErrDatabaseError
	}
	if err := s.storage.Delete(image.File); err != nil {
		s.log.Warn("delete gallery file ", image.File, ": ", err)
	}
	return nil
}
