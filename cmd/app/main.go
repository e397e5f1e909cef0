package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"simplifytour/cmd/fx/article_fx"
	"simplifytour/cmd/fx/config_fx"
	"simplifytour/cmd/fx/controllers_fx"
	"simplifytour/cmd/fx/dashboard"
	"simplifytour/cmd/fx/db_fx"
	"simplifytour/cmd/fx/graphapi_fx"
	"simplifytour/cmd/fx/mail_fx"
	"simplifytour/cmd/fx/media_fx"
	"simplifytour/cmd/fx/memcache_fx"
	"simplifytour/cmd/fx/package_fx"
	"simplifytour/cmd/fx/setting_fx"
	"simplifytour/cmd/fx/user_fx"
	"simplifytour/internal/api"
	"simplifytour/internal/config"
	"simplifytour/internal/infra"
	"simplifytour/pkg/logger"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		setting_fx.Module,
		media_fx.Module,
		package_fx.Module,
		article_fx.Module,
		user_fx.Module,
		dashboard.Module,
		graphapi_fx.Module,
		controllers_fx.Module,

		fx.Provide(api.NewRouter),
		fx.Invoke(migrateOnDebug),
		fx.Invoke(StartServer),
		fx.NopLogger,
	)

	app.Run()
}

// migrateOnDebug keeps local sqlite databases in step with the models.
// Production schemas are migrated with the cli.
func migrateOnDebug(cfg *config.Config, db *gorm.DB, log logger.Logger) error {
	if !cfg.Debug {
		return nil
	}
	log.Info("debug mode: running auto-migration")
	return infra.Migrate(db)
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log logger.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info("starting HTTP server at ", srv.Addr)
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped: ", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
