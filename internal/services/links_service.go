package services

import (
	"context"
	"sort"

	"simplifytour/internal/models/db_models"
	resp "simplifytour/internal/models/response_models"
	"simplifytour/pkg/utils"
)

const (
	PackagesURLPrefix = "/packages/"
	ArticlesURLPrefix = "/articles/"
)

// LinksService lists published content for the rich text editor's link picker.
type LinksService interface {
	DisplayableLinks(ctx context.Context, user *db_models.User) ([]resp.DisplayableLink, error)
}

type linksService struct {
	packages PackageService
	articles ArticleService
}

func NewLinksService(packages PackageService, articles ArticleService) LinksService {
	return &linksService{packages: packages, articles: articles}
}

// PackageURL is the public URL of a package slug.
func PackageURL(slug string) string {
	if slug == db_models.HomeSlug {
		return "/"
	}
	return PackagesURLPrefix + slug
}

func ArticleURL(slug string) string {
	return ArticlesURLPrefix + slug
}

type sortableLink struct {
	page bool
	link resp.DisplayableLink
}

func (s *linksService) DisplayableLinks(ctx context.Context, user *db_models.User) ([]resp.DisplayableLink, error) {
	all := utils.Page{Page: 1, PageSize: 0}
	var links []sortableLink

	packages, _, err := s.packages.Published(ctx, user, PublishedFilter{}, all)
	if err != nil {
		return nil, err
	}
	for _, p := range packages {
		title := p.Titles
		if title == "" {
			title = p.Title
		}
		links = append(links, sortableLink{page: true, link: resp.DisplayableLink{
			Title: p.VerboseName() + ": " + title,
			Value: PackageURL(p.Slug),
		}})
	}

	articles, _, err := s.articles.Published(ctx, user, nil, all)
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		links = append(links, sortableLink{link: resp.DisplayableLink{
			Title: "Article page: " + a.Title,
			Value: ArticleURL(a.Slug),
		}})
	}

	sort.SliceStable(links, func(i, j int) bool {
		if links[i].page != links[j].page {
			return links[i].page
		}
		return links[i].link.Value < links[j].link.Value
	})

	result := make([]resp.DisplayableLink, 0, len(links))
	for _, l := range links {
		result = append(result, l.link)
	}
	return result, nil
}
