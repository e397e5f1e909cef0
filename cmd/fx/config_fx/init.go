package config_fx

import (
	"go.uber.org/fx"

	"simplifytour/internal/config"
	"simplifytour/pkg/logger"
)

var Module = fx.Provide(config.Load, provideLogger)

func provideLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)
	return log, nil
}
