package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"simplifytour/internal/models/db_models"
)

type PriceRepository interface {
	Create(ctx context.Context, price *db_models.Price) error
	Save(ctx context.Context, price *db_models.Price) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Price, error)
	ListByPackage(ctx context.Context, packageID uuid.UUID, includeArchived bool) ([]db_models.Price, error)
}

type priceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) PriceRepository {
	return &priceRepository{db: db}
}

func (r *priceRepository) Create(ctx context.Context, price *db_models.Price) error {
	return r.db.WithContext(ctx).Create(price).Error
}

func (r *priceRepository) Save(ctx context.Context, price *db_models.Price) error {
	return r.db.WithContext(ctx).Save(price).Error
}

func (r *priceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Price{}, "id = ?", id).Error
}

func (r *priceRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Price, error) {
	return findOne[db_models.Price](ctx, r.db, "id = ?", id)
}

// ListByPackage returns the most expensive prices first.
func (r *priceRepository) ListByPackage(ctx context.Context, packageID uuid.UUID, includeArchived bool) ([]db_models.Price, error) {
	query := r.db.WithContext(ctx).Where("package_id = ?", packageID)
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}

	var prices []db_models.Price
	err := query.Order("discounted_price DESC").Find(&prices).Error
	return prices, err
}
