package article_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"simplifytour/internal/repositories"
	"simplifytour/internal/services"
	"simplifytour/pkg/logger"
	"simplifytour/pkg/storage"
)

var Module = fx.Provide(
	provideArticleRepo, provideArticleService)

func provideArticleRepo(db *gorm.DB) repositories.ArticleRepository {
	return repositories.NewArticleRepository(db)
}

func provideArticleService(repo repositories.ArticleRepository, store storage.Storage, settings services.SettingService, log logger.Logger) services.ArticleService {
	return services.NewArticleService(repo, store, settings, log)
}
