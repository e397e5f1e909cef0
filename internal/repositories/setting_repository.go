package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"simplifytour/internal/models/db_models"
)

type SettingRepository interface {
	Get(ctx context.Context, name string) (*db_models.Setting, error)
	List(ctx context.Context) ([]db_models.Setting, error)
	Upsert(ctx context.Context, name, value string) (*db_models.Setting, error)
	Delete(ctx context.Context, name string) (bool, error)
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, name string) (*db_models.Setting, error) {
	return findOne[db_models.Setting](ctx, r.db, "name = ?", name)
}

func (r *settingRepository) List(ctx context.Context) ([]db_models.Setting, error) {
	var settings []db_models.Setting
	err := r.db.WithContext(ctx).Order("name ASC").Find(&settings).Error
	return settings, err
}

// Upsert revives a previously deleted row instead of tripping the unique index.
func (r *settingRepository) Upsert(ctx context.Context, name, value string) (*db_models.Setting, error) {
	var setting db_models.Setting
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().Where("name = ?", name).First(&setting).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			setting = db_models.Setting{Name: name, Value: value}
			return tx.Create(&setting).Error
		}
		if err != nil {
			return err
		}
		setting.Value = value
		setting.DeletedAt = gorm.DeletedAt{}
		return tx.Unscoped().Save(&setting).Error
	})
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Delete(ctx context.Context, name string) (bool, error) {
	res := r.db.WithContext(ctx).Where("name = ?", name).Delete(&db_models.Setting{})
	return res.RowsAffected > 0, res.Error
}
