package db_models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"simplifytour/pkg/utils"
)

type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CreatedAt int64          `gorm:"autoCreateTime"`
	UpdatedAt int64          `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Hooks to manage int64 timestamps
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().Unix()
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now().Unix()
	return nil
}

const (
	StatusDraft     = 1
	StatusPublished = 2
)

// HomeSlug is the slug of the tree root served at "/".
const HomeSlug = "/"

// Displayable carries the publishing fields shared by packages and articles.
type Displayable struct {
	Title          string `gorm:"size:500;not null"`
	Slug           string `gorm:"size:2000;uniqueIndex"`
	Status         int    `gorm:"not null"`
	PublishDate    *int64 `gorm:"index"`
	ExpiryDate     *int64
	Description    string `gorm:"type:text"`
	GenDescription bool
	MetaTitle      string `gorm:"size:500"`
	InSitemap      bool
	ShortURL       string `gorm:"size:200"`
}

func (d *Displayable) IsPublished(now int64) bool {
	if d.Status != StatusPublished {
		return false
	}
	if d.PublishDate != nil && *d.PublishDate > now {
		return false
	}
	if d.ExpiryDate != nil && *d.ExpiryDate < now {
		return false
	}
	return true
}

func (d *Displayable) MetaTitleOrTitle() string {
	if d.MetaTitle != "" {
		return d.MetaTitle
	}
	return d.Title
}

// PrepareDisplayable fills the defaults applied on every save. Slug
// uniqueness is the caller's job.
func (d *Displayable) PrepareDisplayable(content string, now int64) {
	if d.Status == 0 {
		d.Status = StatusPublished
	}
	if d.PublishDate == nil {
		d.PublishDate = &now
	}
	if d.GenDescription {
		d.Description = utils.FirstWords(utils.StripTags(content), 40)
	}
}

// Published restricts a query to rows visible at now.
func Published(now int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", StatusPublished).
			Where("publish_date IS NULL OR publish_date <= ?", now).
			Where("expiry_date IS NULL OR expiry_date >= ?", now)
	}
}

// Orderable keeps rows in a manual order among their siblings.
type Orderable struct {
	Order *int `gorm:"column:sort_order"`
}

func (o *Orderable) OrderValue() int {
	if o.Order == nil {
		return 0
	}
	return *o.Order
}

// ContentTyped records the concrete kind of a row in a shared table.
type ContentTyped struct {
	ContentModel string `gorm:"size:50;index"`
}

func (c *ContentTyped) SetContentModel(kind string) {
	if c.ContentModel == "" {
		c.ContentModel = kind
	}
}

func (c *ContentTyped) GetContentModel() string {
	return c.ContentModel
}

const (
	RatingMin = 1
	RatingMax = 5
)

var ErrRatingOutOfRange = errors.New("rating out of range")

// RatingSummary holds the aggregate of all votes for a row.
type RatingSummary struct {
	RatingCount   int
	RatingSum     int
	RatingAverage float64
}

func (r *RatingSummary) AddRating(value int) error {
	if value < RatingMin || value > RatingMax {
		return ErrRatingOutOfRange
	}
	r.RatingCount++
	r.RatingSum += value
	r.RatingAverage = float64(r.RatingSum) / float64(r.RatingCount)
	return nil
}
