package graphapi_fx

import (
	"github.com/graphql-go/graphql"
	"go.uber.org/fx"

	"simplifytour/internal/config"
	"simplifytour/internal/graphapi"
	"simplifytour/internal/services"
	"simplifytour/pkg/logger"
	"simplifytour/pkg/middleware"
)

var Module = fx.Provide(provideSchema, provideHandler)

func provideSchema(users services.UserService, cfg *config.Config, log logger.Logger) (graphql.Schema, error) {
	return graphapi.NewSchema(users, graphapi.CookieConfig{
		Name:   cfg.JWT.CookieName,
		MaxAge: int(cfg.JWT.Expiration.Seconds()),
		Secure: !cfg.Debug,
	}, log)
}

func provideHandler(schema graphql.Schema, auth middleware.Authenticator, cfg *config.Config, log logger.Logger) *graphapi.Handler {
	return graphapi.NewHandler(schema, auth, cfg.JWT.CookieName, cfg.Media.MaxUploadMB<<20, log)
}
