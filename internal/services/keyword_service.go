package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/repositories"
	"simplifytour/pkg/utils"
)

type KeywordService interface {
	// Submit get-or-creates the comma separated keywords and returns
	// "<id>,<id>|<title>, <title>".
	Submit(ctx context.Context, text string) (string, error)
	GetOrCreate(ctx context.Context, title string) (*db_models.Keyword, error)
	List(ctx context.Context, page utils.Page) ([]db_models.Keyword, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type keywordService struct {
	repo repositories.KeywordRepository
}

func NewKeywordService(repo repositories.KeywordRepository) KeywordService {
	return &keywordService{repo: repo}
}

func (s *keywordService) GetOrCreate(ctx context.Context, title string) (*db_models.Keyword, error) {
	keyword, err := s.repo.FindByTitleIExact(ctx, title)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if keyword != nil {
		return keyword, nil
	}

	slug := utils.Slugify(title)
	if slug == "" {
		slug = "keyword"
	}
	slug, err = utils.UniqueSlug(slug, func(candidate string) (bool, error) {
		return s.repo.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	keyword = &db_models.Keyword{Title: title, Slug: slug}
	if err := s.repo.Create(ctx, keyword); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return keyword, nil
}

func (s *keywordService) Submit(ctx context.Context, text string) (string, error) {
	var ids, titles []string
	seen := map[uuid.UUID]bool{}
	for _, title := range strings.Split(text, ",") {
		title = strings.TrimSpace(utils.StripPunctuation(title, "-"))
		if title == "" {
			continue
		}
		keyword, err := s.GetOrCreate(ctx, title)
		if err != nil {
			return "", err
		}
		if seen[keyword.ID] {
			continue
		}
		seen[keyword.ID] = true
		ids = append(ids, keyword.ID.String())
		titles = append(titles, title)
	}
	return fmt.Sprintf("%s|%s", strings.Join(ids, ","), strings.Join(titles, ", ")), nil
}

func (s *keywordService) List(ctx context.Context, page utils.Page) ([]db_models.Keyword, int64, error) {
	keywords, total, err := s.repo.List(ctx, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	return keywords, total, nil
}

func (s *keywordService) Delete(ctx context.Context, id uuid.UUID) error {
	keyword, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if keyword == nil {
		return utils.ErrKeywordNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
