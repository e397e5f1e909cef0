package request_models

// DisplayableRequest holds the publishing fields shared by packages and articles.
type DisplayableRequest struct {
	Title          string `json:"title" binding:"required,max=500"`
	Slug           string `json:"slug" binding:"max=2000"`
	Status         int    `json:"status" binding:"omitempty,oneof=1 2"`
	PublishDate    *int64 `json:"publish_date"`
	ExpiryDate     *int64 `json:"expiry_date"`
	Description    string `json:"description"`
	GenDescription *bool  `json:"gen_description"`
	MetaTitle      string `json:"meta_title" binding:"max=500"`
	InSitemap      *bool  `json:"in_sitemap"`
	ShortURL       string `json:"short_url" binding:"max=200"`
}

type RatingRequest struct {
	Value int `json:"value" binding:"required,min=1,max=5"`
}

type SettingRequest struct {
	Value string `json:"value" binding:"max=2000"`
}
