package infra

import (
	"fmt"

	"gorm.io/gorm"

	"simplifytour/internal/models/db_models"
)

// Models lists every table in migration order.
func Models() []interface{} {
	return []interface{}{
		&db_models.User{},
		&db_models.Profile{},
		&db_models.Setting{},
		&db_models.Keyword{},
		&db_models.Place{},
		&db_models.Porter{},
		&db_models.Guide{},
		&db_models.ItineraryItem{},
		&db_models.Package{},
		&db_models.PackageItinerary{},
		&db_models.PackageAddon{},
		&db_models.Price{},
		&db_models.Article{},
		&db_models.ArticleGalleryImage{},
		&db_models.Rating{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
