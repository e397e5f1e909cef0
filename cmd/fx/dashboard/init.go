package dashboard

import (
	"go.uber.org/fx"

	"simplifytour/internal/repositories"
	"simplifytour/internal/services"
)

var Module = fx.Provide(
	provideDashboardService, provideLinksService,
)

func provideDashboardService(packageRepo repositories.PackageRepository, articleRepo repositories.ArticleRepository, userRepo repositories.UserRepository) services.DashboardService {
	return services.NewDashboardService(packageRepo, articleRepo, userRepo)
}

func provideLinksService(packages services.PackageService, articles services.ArticleService) services.LinksService {
	return services.NewLinksService(packages, articles)
}
