package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Page struct {
	Page     int
	PageSize int
}

func (p Page) Offset() int { return (p.Page - 1) * p.PageSize }

func ValidatePage(page, pageSize int) (Page, error) {
	if page < 1 {
		return Page{}, ErrInvalidPage
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return Page{}, ErrInvalidPageSize
	}
	return Page{Page: page, PageSize: pageSize}, nil
}

// PageFromQuery reads page and pageSize query parameters.
func PageFromQuery(c *gin.Context) (Page, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil {
		return Page{}, ErrInvalidPage
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(DefaultPageSize)))
	if err != nil {
		return Page{}, ErrInvalidPageSize
	}
	return ValidatePage(page, pageSize)
}
