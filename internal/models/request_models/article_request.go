package request_models

import "github.com/google/uuid"

type ArticleRequest struct {
	DisplayableRequest
	ParentID      *uuid.UUID `json:"parent_id"`
	Content       string     `json:"content"`
	FeaturedImage string     `json:"featured_image" binding:"max=255"`
	IsFeatured    bool       `json:"is_featured"`
}

type GalleryImageRequest struct {
	Title       string `json:"title" binding:"max=255"`
	Description string `json:"description" binding:"max=1000"`
	Order       *int   `json:"order"`
}
