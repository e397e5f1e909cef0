package response_models

import (
	"github.com/google/uuid"

	"simplifytour/internal/models/db_models"
)

type GalleryImageResponse struct {
	ID          uuid.UUID `json:"id"`
	File        string    `json:"file"`
	URL         string    `json:"url"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
}

type ArticleResponse struct {
	ID            uuid.UUID              `json:"id"`
	Title         string                 `json:"title"`
	Slug          string                 `json:"slug"`
	Status        int                    `json:"status"`
	MetaTitle     string                 `json:"meta_title"`
	Description   string                 `json:"description"`
	Content       string                 `json:"content,omitempty"`
	ParentID      *uuid.UUID             `json:"parent_id"`
	FeaturedImage string                 `json:"featured_image"`
	IsFeatured    bool                   `json:"is_featured"`
	PublishDate   *int64                 `json:"publish_date"`
	Rating        RatingResponse         `json:"rating"`
	Images        []GalleryImageResponse `json:"images,omitempty"`
	Ascendants    []AscendantResponse    `json:"ascendants,omitempty"`
}

// NewArticleResponse maps an article; url and thumb resolve stored file names.
func NewArticleResponse(a *db_models.Article, withContent bool, url, thumb func(string) string) ArticleResponse {
	resp := ArticleResponse{
		ID:            a.ID,
		Title:         a.Title,
		Slug:          a.Slug,
		Status:        a.Status,
		MetaTitle:     a.MetaTitleOrTitle(),
		Description:   a.Description,
		ParentID:      a.ParentID,
		FeaturedImage: a.FeaturedImage,
		IsFeatured:    a.IsFeatured,
		PublishDate:   a.PublishDate,
		Rating:        RatingResponse{Count: a.RatingCount, Sum: a.RatingSum, Average: a.RatingAverage},
	}
	if withContent {
		resp.Content = a.Content
	}
	for _, img := range a.Images {
		resp.Images = append(resp.Images, GalleryImageResponse{
			ID:          img.ID,
			File:        img.File,
			URL:         url(img.File),
			Thumbnail:   thumb(img.File),
			Title:       img.Title,
			Description: img.Description,
			Order:       img.OrderValue(),
		})
	}
	for _, asc := range a.Ascendants {
		resp.Ascendants = append(resp.Ascendants, AscendantResponse{ID: asc.ID, Title: asc.Title, Slug: asc.Slug})
	}
	return resp
}
