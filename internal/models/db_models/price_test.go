package db_models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPrice_StandardText(t *testing.T) {
	tests := []struct {
		standard int
		want     string
	}{
		{StandardBudget, "Budget"},
		{StandardStandard, "Standard"},
		{StandardLuxury, "Luxury"},
		{0, "Undefined"},
		{9, "Undefined"},
	}
	for _, tt := range tests {
		p := Price{Standard: tt.standard}
		assert.Equal(t, tt.want, p.StandardText())
	}
}

func TestPrice_Label(t *testing.T) {
	tests := []struct {
		name  string
		price Price
		want  string
	}{
		{
			name:  "discounted",
			price: Price{DiscountedPrice: decimal.NewNullDecimal(decimal.RequireFromString("1350.5")), MinGroupSize: 2},
			want:  "Everest [Rs.1350.50 x 2]",
		},
		{
			name:  "no discounted price",
			price: Price{MinGroupSize: 1},
			want:  "Everest [Rs.None x 1]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.price.Label("Everest"))
		})
	}
}

func TestPrice_StartingDates(t *testing.T) {
	var p Price
	assert.Equal(t, []string{}, p.StartingDates())

	assert.NoError(t, p.SetStartingDates([]string{"2026-03-01", "2026-04-15"}))
	assert.Equal(t, []string{"2026-03-01", "2026-04-15"}, p.StartingDates())

	p.StartingDate = []byte("not json")
	assert.Equal(t, []string{}, p.StartingDates())
}

func TestPackage_CanAdd(t *testing.T) {
	assert.False(t, (&Package{Displayable: Displayable{Slug: HomeSlug}}).CanAdd())
	assert.True(t, (&Package{Displayable: Displayable{Slug: "nepal-treks"}}).CanAdd())
}
