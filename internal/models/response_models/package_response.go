package response_models

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"simplifytour/internal/models/db_models"
)

type PlaceResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ItineraryItemResponse struct {
	ID            uuid.UUID           `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	StartingPlace *PlaceResponse      `json:"starting_place,omitempty"`
	EndingPlace   *PlaceResponse      `json:"ending_place,omitempty"`
	Price         decimal.NullDecimal `json:"price"`
	Days          decimal.Decimal     `json:"days"`
	Duration      decimal.Decimal     `json:"duration"`
	StartingTime  *string             `json:"starting_time"`
	EndTime       *string             `json:"end_time"`
}

type ItineraryEntryResponse struct {
	ID    uuid.UUID              `json:"id"`
	Order int                    `json:"order"`
	Item  *ItineraryItemResponse `json:"item,omitempty"`
}

type PriceResponse struct {
	ID              uuid.UUID           `json:"id"`
	Standard        int                 `json:"standard"`
	StandardText    string              `json:"standard_text"`
	MarkedPrice     decimal.NullDecimal `json:"marked_price"`
	DiscountedPrice decimal.NullDecimal `json:"discounted_price"`
	PriceNotes      string              `json:"price_notes"`
	MinGroupSize    int                 `json:"min_group_size"`
	ReducedBy       decimal.NullDecimal `json:"reduced_by"`
	BookingAmount   decimal.NullDecimal `json:"booking_amount"`
	MaxGroupSize    int                 `json:"max_group_size"`
	StartingDates   []string            `json:"starting_dates"`
	ExtraContent    *string             `json:"extra_content"`
	IsArchived      bool                `json:"is_archived"`
	Label           string              `json:"label,omitempty"`
}

type PorterResponse struct {
	ID      uuid.UUID           `json:"id"`
	Ratio   decimal.NullDecimal `json:"ratio"`
	Count   int                 `json:"count"`
	Rate    decimal.NullDecimal `json:"rate"`
	Remarks string              `json:"remarks"`
}

type GuideResponse struct {
	ID       uuid.UUID           `json:"id"`
	Language string              `json:"language"`
	Rate     decimal.NullDecimal `json:"rate"`
	Remarks  string              `json:"remarks"`
}

type KeywordResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

type AscendantResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

type PackageSummary struct {
	ID            uuid.UUID      `json:"id"`
	Kind          string         `json:"kind"`
	KindName      string         `json:"kind_name"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	Status        int            `json:"status"`
	Description   string         `json:"description"`
	ParentID      *uuid.UUID     `json:"parent_id"`
	Order         int            `json:"order"`
	FeaturedImage string         `json:"featured_image"`
	Thumbnail     string         `json:"thumbnail,omitempty"`
	IsFeatured    bool           `json:"is_featured"`
	LoginRequired bool           `json:"login_required"`
	Rating        RatingResponse `json:"rating"`
	StartingPrice *PriceResponse `json:"starting_price,omitempty"`
	PublishDate   *int64         `json:"publish_date"`
}

type PackageDetail struct {
	PackageSummary
	MetaTitle      string                   `json:"meta_title"`
	Content        string                   `json:"content"`
	Include        string                   `json:"include"`
	Exclude        string                   `json:"exclude"`
	IsArchived     bool                     `json:"is_archived"`
	Days           decimal.Decimal          `json:"days"`
	PorterRequired bool                     `json:"porter_required"`
	PorterDays     int                      `json:"porter_days"`
	GuideRequired  bool                     `json:"guide_required"`
	GuideDays      int                      `json:"guide_days"`
	DefaultPorter  *PorterResponse          `json:"default_porter"`
	DefaultGuide   *GuideResponse           `json:"default_guide"`
	Porters        []PorterResponse         `json:"porters"`
	Guides         []GuideResponse          `json:"guides"`
	Keywords       []KeywordResponse        `json:"keywords"`
	OtherInfo      json.RawMessage          `json:"other_info"`
	Itinerary      []ItineraryEntryResponse `json:"itinerary"`
	Addons         []ItineraryItemResponse  `json:"addons"`
	Prices         []PriceResponse          `json:"prices"`
	Ascendants     []AscendantResponse      `json:"ascendants"`
	ExpiryDate     *int64                   `json:"expiry_date"`
	CanAdd         bool                     `json:"can_add"`
}

func NewPlaceResponse(p *db_models.Place) *PlaceResponse {
	if p == nil {
		return nil
	}
	return &PlaceResponse{ID: p.ID, Name: p.Name}
}

func NewItineraryItemResponse(i *db_models.ItineraryItem) *ItineraryItemResponse {
	if i == nil {
		return nil
	}
	return &ItineraryItemResponse{
		ID:            i.ID,
		Title:         i.Title,
		Description:   i.Description,
		StartingPlace: NewPlaceResponse(i.StartingPlace),
		EndingPlace:   NewPlaceResponse(i.EndingPlace),
		Price:         i.Price,
		Days:          i.Days,
		Duration:      i.Duration,
		StartingTime:  i.StartingTime,
		EndTime:       i.EndTime,
	}
}

func NewPriceResponse(p *db_models.Price) PriceResponse {
	return PriceResponse{
		ID:              p.ID,
		Standard:        p.Standard,
		StandardText:    p.StandardText(),
		MarkedPrice:     p.MarkedPrice,
		DiscountedPrice: p.DiscountedPrice,
		PriceNotes:      p.PriceNotes,
		MinGroupSize:    p.MinGroupSize,
		ReducedBy:       p.ReducedBy,
		BookingAmount:   p.BookingAmount,
		MaxGroupSize:    p.MaxGroupSize,
		StartingDates:   p.StartingDates(),
		ExtraContent:    p.ExtraContent,
		IsArchived:      p.IsArchived,
	}
}

func NewPorterResponse(p *db_models.Porter) *PorterResponse {
	if p == nil {
		return nil
	}
	return &PorterResponse{ID: p.ID, Ratio: p.Ratio, Count: p.Count, Rate: p.Rate, Remarks: p.Remarks}
}

func NewGuideResponse(g *db_models.Guide) *GuideResponse {
	if g == nil {
		return nil
	}
	return &GuideResponse{ID: g.ID, Language: g.Language, Rate: g.Rate, Remarks: g.Remarks}
}

func NewKeywordResponse(k *db_models.Keyword) KeywordResponse {
	return KeywordResponse{ID: k.ID, Title: k.Title, Slug: k.Slug}
}

func NewPackageSummary(p *db_models.Package, thumbnail string) PackageSummary {
	summary := PackageSummary{
		ID:            p.ID,
		Kind:          p.ContentModel,
		KindName:      p.VerboseName(),
		Title:         p.Title,
		Slug:          p.Slug,
		Status:        p.Status,
		Description:   p.Description,
		ParentID:      p.ParentID,
		Order:         p.OrderValue(),
		FeaturedImage: p.FeaturedImage,
		Thumbnail:     thumbnail,
		IsFeatured:    p.IsFeatured,
		LoginRequired: p.LoginRequired,
		Rating:        RatingResponse{Count: p.RatingCount, Sum: p.RatingSum, Average: p.RatingAverage},
		PublishDate:   p.PublishDate,
	}
	if cheapest := startingPrice(p.Prices); cheapest != nil {
		price := NewPriceResponse(cheapest)
		price.Label = cheapest.Label(p.Title)
		summary.StartingPrice = &price
	}
	return summary
}

func NewPackageDetail(p *db_models.Package, thumbnail string) PackageDetail {
	detail := PackageDetail{
		PackageSummary: NewPackageSummary(p, thumbnail),
		MetaTitle:      p.MetaTitleOrTitle(),
		Content:        p.Content,
		Include:        p.Include,
		Exclude:        p.Exclude,
		IsArchived:     p.IsArchived,
		Days:           p.Days(),
		PorterRequired: p.PorterRequired,
		PorterDays:     p.PorterDays,
		GuideRequired:  p.GuideRequired,
		GuideDays:      p.GuideDays,
		DefaultPorter:  NewPorterResponse(p.DefaultPorter()),
		DefaultGuide:   NewGuideResponse(p.DefaultGuide()),
		OtherInfo:      json.RawMessage(p.OtherInfo),
		ExpiryDate:     p.ExpiryDate,
		CanAdd:         p.CanAdd(),
		Porters:        []PorterResponse{},
		Guides:         []GuideResponse{},
		Keywords:       []KeywordResponse{},
		Itinerary:      []ItineraryEntryResponse{},
		Addons:         []ItineraryItemResponse{},
		Prices:         []PriceResponse{},
		Ascendants:     []AscendantResponse{},
	}
	if len(detail.OtherInfo) == 0 {
		detail.OtherInfo = json.RawMessage("[]")
	}
	for i := range p.Porters {
		detail.Porters = append(detail.Porters, *NewPorterResponse(&p.Porters[i]))
	}
	for i := range p.Guides {
		detail.Guides = append(detail.Guides, *NewGuideResponse(&p.Guides[i]))
	}
	for i := range p.Keywords {
		detail.Keywords = append(detail.Keywords, NewKeywordResponse(&p.Keywords[i]))
	}
	for _, entry := range p.Itinerary {
		detail.Itinerary = append(detail.Itinerary, ItineraryEntryResponse{
			ID:    entry.ID,
			Order: entry.OrderValue(),
			Item:  NewItineraryItemResponse(entry.Item),
		})
	}
	for _, addon := range p.Addons {
		if addon.Item != nil {
			detail.Addons = append(detail.Addons, *NewItineraryItemResponse(addon.Item))
		}
	}
	for i := range p.Prices {
		price := NewPriceResponse(&p.Prices[i])
		price.Label = p.Prices[i].Label(p.Title)
		detail.Prices = append(detail.Prices, price)
	}
	for _, a := range p.Ascendants {
		detail.Ascendants = append(detail.Ascendants, AscendantResponse{ID: a.ID, Title: a.Title, Slug: a.Slug})
	}
	return detail
}

// startingPrice picks the lowest discounted price that is not archived.
func startingPrice(prices []db_models.Price) *db_models.Price {
	var best *db_models.Price
	for i := range prices {
		p := &prices[i]
		if p.IsArchived || !p.DiscountedPrice.Valid {
			continue
		}
		if best == nil || p.DiscountedPrice.Decimal.LessThan(best.DiscountedPrice.Decimal) {
			best = p
		}
	}
	return best
}
