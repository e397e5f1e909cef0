package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Place struct {
	BaseModel
	Name string `gorm:"size:255;not null;uniqueIndex"`
}

// ItineraryItem is a day (or part of one) in a package.
type ItineraryItem struct {
	BaseModel
	Title           string              `gorm:"size:255;not null"`
	Description     string              `gorm:"size:255;not null"`
	StartingPlaceID *uuid.UUID          `gorm:"type:uuid"`
	StartingPlace   *Place              `gorm:"foreignKey:StartingPlaceID"`
	EndingPlaceID   *uuid.UUID          `gorm:"type:uuid"`
	EndingPlace     *Place              `gorm:"foreignKey:EndingPlaceID"`
	Price           decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Days            decimal.Decimal     `gorm:"type:decimal(5,2);not null"`
	Duration        decimal.Decimal     `gorm:"type:decimal(5,2);not null"`
	StartingTime    *string             `gorm:"size:5"`
	EndTime         *string             `gorm:"size:5"`
	ProvidedByID    uuid.UUID           `gorm:"type:uuid;not null;index"`
}

// IsFullDay reports whether the item takes the whole day.
func (i *ItineraryItem) IsFullDay() bool {
	return i.Duration.IsZero()
}
