package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"simplifytour/internal/models/db_models"
)

type RatingRepository interface {
	// Rate applies the vote to the rated row and stores it in one transaction.
	Rate(ctx context.Context, rating *db_models.Rating, apply func(tx *gorm.DB) error) error
	ListForObject(ctx context.Context, contentModel string, objectID uuid.UUID, limit, offset int) ([]db_models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Rate(ctx context.Context, rating *db_models.Rating, apply func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := apply(tx); err != nil {
			return err
		}
		return tx.Create(rating).Error
	})
}

func (r *ratingRepository) ListForObject(ctx context.Context, contentModel string, objectID uuid.UUID, limit, offset int) ([]db_models.Rating, error) {
	var ratings []db_models.Rating
	err := r.db.WithContext(ctx).
		Where("content_model = ? AND object_id = ?", contentModel, objectID).
		Scopes(paginate(limit, offset)).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}
