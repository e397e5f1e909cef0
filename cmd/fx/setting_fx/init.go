package setting_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"simplifytour/internal/config"
	"simplifytour/internal/repositories"
	"simplifytour/internal/services"
	"simplifytour/pkg/logger"
)

var Module = fx.Provide(
	provideSettingRepo, provideSettingService)

func provideSettingRepo(db *gorm.DB) repositories.SettingRepository {
	return repositories.NewSettingRepository(db)
}

func provideSettingService(repo repositories.SettingRepository, cfg *config.Config, log logger.Logger) services.SettingService {
	return services.NewSettingService(repo, cfg, log)
}
