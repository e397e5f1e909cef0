package request_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PackageRequest struct {
	DisplayableRequest
	ParentID       *uuid.UUID  `json:"parent_id"`
	Order          *int        `json:"order"`
	LoginRequired  bool        `json:"login_required"`
	Content        string      `json:"content"`
	Include        string      `json:"include"`
	Exclude        string      `json:"exclude"`
	FeaturedImage  string      `json:"featured_image" binding:"max=255"`
	IsFeatured     bool        `json:"is_featured"`
	IsArchived     bool        `json:"is_archived"`
	PorterRequired bool        `json:"porter_required"`
	PorterDays     int         `json:"porter_days" binding:"min=0"`
	GuideRequired  bool        `json:"guide_required"`
	GuideDays      int         `json:"guide_days" binding:"min=0"`
	PorterIDs      []uuid.UUID `json:"porter_ids"`
	GuideIDs       []uuid.UUID `json:"guide_ids"`
	KeywordIDs     []uuid.UUID `json:"keyword_ids"`
}

type MovePackageRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
	Order    *int       `json:"order"`
}

// OtherInfoRequest carries raw JSON text as typed into the admin form.
type OtherInfoRequest struct {
	Name string `json:"name"`
}

type ItineraryEntryRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
	Order  *int      `json:"order"`
}

// ItineraryEntryUpdateRequest edits the linked item through the entry.
type ItineraryEntryUpdateRequest struct {
	Title       string `json:"title" binding:"max=255"`
	Description string `json:"description" binding:"max=255"`
	Order       *int   `json:"order"`
}

type AddonRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
}

type PriceRequest struct {
	Standard        int                 `json:"standard" binding:"omitempty,oneof=1 2 3"`
	MarkedPrice     decimal.NullDecimal `json:"marked_price"`
	DiscountedPrice decimal.NullDecimal `json:"discounted_price"`
	PriceNotes      string              `json:"price_notes" binding:"required,max=255"`
	MinGroupSize    int                 `json:"min_group_size" binding:"min=0,max=32767"`
	ReducedBy       decimal.NullDecimal `json:"reduced_by"`
	BookingAmount   decimal.NullDecimal `json:"booking_amount"`
	MaxGroupSize    int                 `json:"max_group_size" binding:"required,min=1,max=32767"`
	StartingDates   []string            `json:"starting_dates"`
	Date            string              `json:"date"`
	ExtraContent    *string             `json:"extra_content"`
	IsArchived      bool                `json:"is_archived"`
}

type StartingDateRequest struct {
	Date string `json:"date" binding:"required"`
}
