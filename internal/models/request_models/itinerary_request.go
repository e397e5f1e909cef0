package request_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PlaceRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type ItineraryItemRequest struct {
	Title           string              `json:"title" binding:"required,max=255"`
	Description     string              `json:"description" binding:"required,max=255"`
	StartingPlaceID *uuid.UUID          `json:"starting_place_id"`
	EndingPlaceID   *uuid.UUID          `json:"ending_place_id"`
	Price           decimal.NullDecimal `json:"price"`
	Days            *decimal.Decimal    `json:"days"`
	Duration        *decimal.Decimal    `json:"duration"`
	StartingTime    *string             `json:"starting_time"`
	EndTime         *string             `json:"end_time"`
}
