package db_models

import "github.com/shopspring/decimal"

type Porter struct {
	BaseModel
	// Traveller to porter ratio; 2 means one porter per two travellers.
	Ratio decimal.NullDecimal `gorm:"type:decimal(3,1)"`
	// 0 means unlimited.
	Count   int                 `gorm:"not null"`
	Rate    decimal.NullDecimal `gorm:"type:decimal(6,2)"`
	Remarks string              `gorm:"size:255;not null"`
}

type Guide struct {
	BaseModel
	Language string              `gorm:"size:255;not null"`
	Rate     decimal.NullDecimal `gorm:"type:decimal(6,2)"`
	Remarks  string              `gorm:"size:255;not null"`
}
