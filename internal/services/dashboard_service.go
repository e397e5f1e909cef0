package services

import (
	"context"

	"simplifytour/internal/models/db_models"
	resp "simplifytour/internal/models/response_models"
	"simplifytour/internal/repositories"
	"simplifytour/pkg/utils"
)

type DashboardService interface {
	BuildDashboard(ctx context.Context) (*resp.DashboardReport, error)
}

type dashboardService struct {
	packageRepo repositories.PackageRepository
	articleRepo repositories.ArticleRepository
	userRepo    repositories.UserRepository
}

func NewDashboardService(
	packageRepo repositories.PackageRepository,
	articleRepo repositories.ArticleRepository,
	userRepo repositories.UserRepository,
) DashboardService {
	return &dashboardService{packageRepo: packageRepo, articleRepo: articleRepo, userRepo: userRepo}
}

func (s *dashboardService) BuildDashboard(ctx context.Context) (*resp.DashboardReport, error) {
	rows, err := s.packageRepo.CountByKindAndStatus(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	counts := make(map[string]*resp.KindCount, len(db_models.PackageKinds))
	report := &resp.DashboardReport{Packages: make([]resp.KindCount, 0, len(db_models.PackageKinds))}
	for _, kind := range db_models.ContentModels() {
		counts[kind] = &resp.KindCount{Kind: kind, Name: db_models.PackageKinds[kind]}
	}
	for _, row := range rows {
		kc, ok := counts[row.ContentModel]
		if !ok {
			continue
		}
		if row.Status == db_models.StatusPublished {
			kc.Published += row.Count
		} else {
			kc.Draft += row.Count
		}
		report.TotalPackages += row.Count
	}
	for _, kind := range db_models.ContentModels() {
		report.Packages = append(report.Packages, *counts[kind])
	}

	if report.Articles, err = s.articleRepo.Count(ctx); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if report.ConfirmedUsers, report.UnconfirmedUsers, err = s.userRepo.CountByConfirmation(ctx); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return report, nil
}
