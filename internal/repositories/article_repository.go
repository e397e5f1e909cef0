package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"simplifytour/internal/models/db_models"
)

type ArticleFilter struct {
	Featured    *bool
	PublishedAt *int64
	Limit       int
	Offset      int
}

type ArticleRepository interface {
	Create(ctx context.Context, article *db_models.Article) error
	Save(ctx context.Context, article *db_models.Article) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Article, error)
	FindBySlug(ctx context.Context, slug string, publishedAt *int64) (*db_models.Article, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]db_models.Article, error)
	List(ctx context.Context, filter ArticleFilter) ([]db_models.Article, int64, error)
	Count(ctx context.Context) (int64, error)

	AddImage(ctx context.Context, image *db_models.ArticleGalleryImage) error
	FindImage(ctx context.Context, id uuid.UUID) (*db_models.ArticleGalleryImage, error)
	SaveImage(ctx context.Context, image *db_models.ArticleGalleryImage) error
	DeleteImage(ctx context.Context, image *db_models.ArticleGalleryImage) error
	CountImages(ctx context.Context, articleID uuid.UUID) (int64, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *db_models.Article) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(article).Error
}

func (r *articleRepository) Save(ctx context.Context, article *db_models.Article) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(article).Error
}

func (r *articleRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&db_models.Article{}).Where("id = ?", id).Updates(fields).Error
}

func (r *articleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&db_models.ArticleGalleryImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.Article{}, "id = ?", id).Error
	})
}

func preloadImages(db *gorm.DB) *gorm.DB {
	return db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	})
}

func (r *articleRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Article, error) {
	return findOne[db_models.Article](ctx, preloadImages(r.db), "id = ?", id)
}

func (r *articleRepository) FindBySlug(ctx context.Context, slug string, publishedAt *int64) (*db_models.Article, error) {
	db := preloadImages(r.db)
	if publishedAt != nil {
		db = db.Scopes(db_models.Published(*publishedAt))
	}
	return findOne[db_models.Article](ctx, db, "slug = ?", slug)
}

func (r *articleRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&db_models.Article{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *articleRepository) ListChildren(ctx context.Context, parentID uuid.UUID) ([]db_models.Article, error) {
	var articles []db_models.Article
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) List(ctx context.Context, filter ArticleFilter) ([]db_models.Article, int64, error) {
	query := r.db.WithContext(ctx).Model(&db_models.Article{})
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.PublishedAt != nil {
		query = query.Scopes(db_models.Published(*filter.PublishedAt))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []db_models.Article
	err := query.
		Scopes(paginate(filter.Limit, filter.Offset)).
		Order("publish_date DESC, title ASC").
		Find(&articles).Error
	return articles, total, err
}

func (r *articleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Article{}).Count(&count).Error
	return count, err
}

func (r *articleRepository) AddImage(ctx context.Context, image *db_models.ArticleGalleryImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *articleRepository) FindImage(ctx context.Context, id uuid.UUID) (*db_models.ArticleGalleryImage, error) {
	return findOne[db_models.ArticleGalleryImage](ctx, r.db, "id = ?", id)
}

func (r *articleRepository) SaveImage(ctx context.Context, image *db_models.ArticleGalleryImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *articleRepository) DeleteImage(ctx context.Context, image *db_models.ArticleGalleryImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&db_models.ArticleGalleryImage{}, "id = ?", image.ID).Error; err != nil {
			return err
		}
		return tx.Model(&db_models.ArticleGalleryImage{}).
			Where("article_id = ? AND sort_order > ?", image.ArticleID, image.OrderValue()).
			UpdateColumn("sort_order", gorm.Expr("sort_order - 1")).Error
	})
}

func (r *articleRepository) CountImages(ctx context.Context, articleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.ArticleGalleryImage{}).
		Where("article_id = ?", articleID).
		Count(&count).Error
	return count, err
}
