package db_models

import "github.com/google/uuid"

const KindArticle = "article"

type Article struct {
	BaseModel
	Displayable
	RatingSummary

	ParentID      *uuid.UUID `gorm:"type:uuid;index"`
	Content       string     `gorm:"type:text"`
	FeaturedImage string     `gorm:"size:255"`
	IsFeatured    bool
	Images        []ArticleGalleryImage `gorm:"foreignKey:ArticleID"`

	Ascendants []Article `gorm:"-"`
}

type ArticleGalleryImage struct {
	BaseModel
	Orderable
	ArticleID   uuid.UUID `gorm:"type:uuid;not null;index"`
	File        string    `gorm:"size:200;not null"`
	Title       string    `gorm:"size:255"`
	Description string    `gorm:"size:1000"`
}
