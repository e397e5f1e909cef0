package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"simplifytour/internal/models/db_models"
)

type StaffRepository interface {
	CreatePorter(ctx context.Context, porter *db_models.Porter) error
	SavePorter(ctx context.Context, porter *db_models.Porter) error
	DeletePorter(ctx context.Context, id uuid.UUID) error
	FindPorter(ctx context.Context, id uuid.UUID) (*db_models.Porter, error)
	FindPorters(ctx context.Context, ids []uuid.UUID) ([]db_models.Porter, error)
	ListPorters(ctx context.Context, limit, offset int) ([]db_models.Porter, int64, error)

	CreateGuide(ctx context.Context, guide *db_models.Guide) error
	SaveGuide(ctx context.Context, guide *db_models.Guide) error
	DeleteGuide(ctx context.Context, id uuid.UUID) error
	FindGuide(ctx context.Context, id uuid.UUID) (*db_models.Guide, error)
	FindGuides(ctx context.Context, ids []uuid.UUID) ([]db_models.Guide, error)
	ListGuides(ctx context.Context, limit, offset int) ([]db_models.Guide, int64, error)
}

type staffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) CreatePorter(ctx context.Context, porter *db_models.Porter) error {
	return r.db.WithContext(ctx).Create(porter).Error
}

func (r *staffRepository) SavePorter(ctx context.Context, porter *db_models.Porter) error {
	return r.db.WithContext(ctx).Save(porter).Error
}

func (r *staffRepository) DeletePorter(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM package_porters WHERE porter_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.Porter{}, "id = ?", id).Error
	})
}

func (r *staffRepository) FindPorter(ctx context.Context, id uuid.UUID) (*db_models.Porter, error) {
	return findOne[db_models.Porter](ctx, r.db, "id = ?", id)
}

func (r *staffRepository) FindPorters(ctx context.Context, ids []uuid.UUID) ([]db_models.Porter, error) {
	var porters []db_models.Porter
	if len(ids) == 0 {
		return porters, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&porters).Error
	return porters, err
}

func (r *staffRepository) ListPorters(ctx context.Context, limit, offset int) ([]db_models.Porter, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&db_models.Porter{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var porters []db_models.Porter
	err := r.db.WithContext(ctx).Scopes(paginate(limit, offset)).Order("created_at ASC").Find(&porters).Error
	return porters, total, err
}

func (r *staffRepository) CreateGuide(ctx context.Context, guide *db_models.Guide) error {
	return r.db.WithContext(ctx).Create(guide).Error
}

func (r *staffRepository) SaveGuide(ctx context.Context, guide *db_models.Guide) error {
	return r.db.WithContext(ctx).Save(guide).Error
}

func (r *staffRepository) DeleteGuide(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM package_guides WHERE guide_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&db_models.Guide{}, "id = ?", id).Error
	})
}

func (r *staffRepository) FindGuide(ctx context.Context, id uuid.UUID) (*db_models.Guide, error) {
	return findOne[db_models.Guide](ctx, r.db, "id = ?", id)
}

func (r *staffRepository) FindGuides(ctx context.Context, ids []uuid.UUID) ([]db_models.Guide, error) {
	var guides []db_models.Guide
	if len(ids) == 0 {
		return guides, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&guides).Error
	return guides, err
}

func (r *staffRepository) ListGuides(ctx context.Context, limit, offset int) ([]db_models.Guide, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&db_models.Guide{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var guides []db_models.Guide
	err := r.db.WithContext(ctx).Scopes(paginate(limit, offset)).Order("language ASC").Find(&guides).Error
	return guides, total, err
}
