package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/repositories"
	"simplifytour/pkg/utils"
)

// RatingTarget names the kind of row a vote is cast on.
type RatingTarget string

const (
	RatePackage RatingTarget = "package"
	RateArticle RatingTarget = "article"
)

type RatingService interface {
	Rate(ctx context.Context, target RatingTarget, id uuid.UUID, value int, userID *uuid.UUID) (*db_models.RatingSummary, error)
}

type ratingService struct {
	repo repositories.RatingRepository
}

func NewRatingService(repo repositories.RatingRepository) RatingService {
	return &ratingService{repo: repo}
}

var errRatingTargetMissing = errors.New("rating target missing")

// Rate records the vote and updates the aggregate on the rated row.
func (s *ratingService) Rate(ctx context.Context, target RatingTarget, id uuid.UUID, value int, userID *uuid.UUID) (*db_models.RatingSummary, error) {
	if value < db_models.RatingMin || value > db_models.RatingMax {
		return nil, utils.ErrInvalidRating
	}

	var model interface{}
	var summary *db_models.RatingSummary
	var notFound error
	switch target {
	case RatePackage:
		pkg := &db_models.Package{}
		model, summary, notFound = pkg, &pkg.RatingSummary, utils.ErrPackageNotFound
	case RateArticle:
		article := &db_models.Article{}
		model, summary, notFound = article, &article.RatingSummary, utils.ErrArticleNotFound
	default:
		return nil, utils.ErrUnknownKind
	}

	rating := &db_models.Rating{ObjectID: id, UserID: userID, Value: value}
	err := s.repo.Rate(ctx, rating, func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errRatingTargetMissing
			}
			return err
		}
		if pkg, ok := model.(*db_models.Package); ok {
			rating.ContentModel = pkg.ContentModel
		} else {
			rating.ContentModel = db_models.KindArticle
		}
		if err := summary.AddRating(value); err != nil {
			return err
		}
		return tx.Model(model).Where("id = ?", id).UpdateColumns(map[string]interface{}{
			"rating_count":   summary.RatingCount,
			"rating_sum":     summary.RatingSum,
			"rating_average": summary.RatingAverage,
		}).Error
	})
	if errors.Is(err, errRatingTargetMissing) {
		return nil, notFound
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return summary, nil
}
