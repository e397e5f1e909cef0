package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"simplifytour/internal/config"
	"simplifytour/internal/infra"
	"simplifytour/pkg/logger"
)

var Module = fx.Provide(provideDB)

func provideDB(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (*gorm.DB, error) {
	db, err := infra.NewDatabase(cfg.Database, log, cfg.Debug)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseDatabase(db, log)
			return nil
		},
	})
	return db, nil
}
