package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"simplifytour/internal/models/db_models"
)

type KeywordRepository interface {
	Create(ctx context.Context, keyword *db_models.Keyword) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Keyword, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Keyword, error)
	FindByTitleIExact(ctx context.Context, title string) (*db_models.Keyword, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]db_models.Keyword, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type keywordRepository struct {
	db *gorm.DB
}

func NewKeywordRepository(db *gorm.DB) KeywordRepository {
	return &keywordRepository{db: db}
}

func (r *keywordRepository) Create(ctx context.Context, keyword *db_models.Keyword) error {
	return r.db.WithContext(ctx).Create(keyword).Error
}

func (r *keywordRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Keyword, error) {
	return findOne[db_models.Keyword](ctx, r.db, "id = ?", id)
}

func (r *keywordRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Keyword, error) {
	var keywords []db_models.Keyword
	if len(ids) == 0 {
		return keywords, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&keywords).Error
	return keywords, err
}

func (r *keywordRepository) FindByTitleIExact(ctx context.Context, title string) (*db_models.Keyword, error) {
	return findOne[db_models.Keyword](ctx, r.db, "LOWER(title) = ?", strings.ToLower(title))
}

func (r *keywordRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&db_models.Keyword{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *keywordRepository) List(ctx context.Context, limit, offset int) ([]db_models.Keyword, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&db_models.Keyword{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var keywords []db_models.Keyword
	err := r.db.WithContext(ctx).
		Scopes(paginate(limit, offset)).
		Order("title ASC").
		Find(&keywords).Error
	return keywords, total, err
}

func (r *keywordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM package_keywords WHERE keyword_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.Keyword{}, "id = ?", id).Error
	})
}
