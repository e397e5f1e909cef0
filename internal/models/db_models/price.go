package db_models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	StandardBudget   = 1
	StandardStandard = 2
	StandardLuxury   = 3
)

var standardLabels = map[int]string{
	StandardBudget:   "Budget",
	StandardStandard: "Standard",
	StandardLuxury:   "Luxury",
}

type Price struct {
	BaseModel
	PackageID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	Standard        int                 `gorm:"not null"`
	MarkedPrice     decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	DiscountedPrice decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	PriceNotes      string              `gorm:"size:255;not null"`
	MinGroupSize    int                 `gorm:"not null"`
	ReducedBy       decimal.NullDecimal `gorm:"type:decimal(3,1)"`
	BookingAmount   decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	MaxGroupSize    int                 `gorm:"not null"`
	StartingDate    datatypes.JSON
	ExtraContent    *string `gorm:"type:text"`
	IsArchived      bool
}

func (p *Price) StandardText() string {
	if label, ok := standardLabels[p.Standard]; ok {
		return label
	}
	return "Undefined"
}

// Label renders the price the way listings show it.
func (p *Price) Label(packageTitle string) string {
	discounted := "None"
	if p.DiscountedPrice.Valid {
		discounted = p.DiscountedPrice.Decimal.StringFixed(2)
	}
	return fmt.Sprintf("%s [Rs.%s x %d]", packageTitle, discounted, p.MinGroupSize)
}

// StartingDates decodes the stored list of YYYY-MM-DD dates.
func (p *Price) StartingDates() []string {
	var dates []string
	if len(p.StartingDate) == 0 {
		return []string{}
	}
	if err := json.Unmarshal(p.StartingDate, &dates); err != nil || dates == nil {
		return []string{}
	}
	return dates
}

func (p *Price) SetStartingDates(dates []string) error {
	if dates == nil {
		dates = []string{}
	}
	raw, err := json.Marshal(dates)
	if err != nil {
		return err
	}
	p.StartingDate = datatypes.JSON(raw)
	return nil
}
