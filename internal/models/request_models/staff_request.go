package request_models

import "github.com/shopspring/decimal"

type PorterRequest struct {
	Ratio   decimal.NullDecimal `json:"ratio"`
	Count   int                 `json:"count" binding:"min=0"`
	Rate    decimal.NullDecimal `json:"rate"`
	Remarks string              `json:"remarks" binding:"required,max=255"`
}

type GuideRequest struct {
	Language string              `json:"language" binding:"required,max=255"`
	Rate     decimal.NullDecimal `json:"rate"`
	Remarks  string              `json:"remarks" binding:"required,max=255"`
}
