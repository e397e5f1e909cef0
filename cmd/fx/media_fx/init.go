package media_fx

import (
	"go.uber.org/fx"

	"simplifytour/internal/config"
	"simplifytour/internal/services"
	"simplifytour/pkg/logger"
	"simplifytour/pkg/storage"
	"simplifytour/pkg/thumbnail"
)

var Module = fx.Provide(
	provideStorage, provideThumbnailer, provideMediaService)

func provideStorage(cfg *config.Config) storage.Storage {
	return storage.NewFileSystemStorage(cfg.Media.MediaRoot, cfg.Media.MediaURL)
}

func provideThumbnailer(store storage.Storage, cfg *config.Config, log logger.Logger) *thumbnail.Thumbnailer {
	return thumbnail.New(store, cfg.Media.MediaURL, cfg.Media.ThumbnailsDir, log).WithMaxSize(cfg.Media.ThumbMaxSize)
}

func provideMediaService(store storage.Storage, thumbs *thumbnail.Thumbnailer, settings services.SettingService, cfg *config.Config, log logger.Logger) services.MediaService {
	return services.NewMediaService(store, thumbs, settings, cfg, log)
}
