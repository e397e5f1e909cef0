package user_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"simplifytour/internal/config"
	"simplifytour/internal/repositories"
	"simplifytour/internal/services"
	"simplifytour/pkg/logger"
	mem "simplifytour/pkg/memcache"
	"simplifytour/pkg/middleware"
	"simplifytour/pkg/storage"
	"simplifytour/pkg/utils"
)

var Module = fx.Provide(
	provideJWTManager, provideUserRepo, provideUserService, provideAuthenticator)

func provideJWTManager(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshExpiration)
}

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideUserService(
	userRepo repositories.UserRepository,
	mail services.IMailService,
	resetTokens mem.ResetTokenStore,
	jwt *utils.JWTManager,
	store storage.Storage,
	cfg *config.Config,
	log logger.Logger,
) services.UserService {
	return services.NewUserService(userRepo, mail, resetTokens, jwt, store, cfg.PasswordResetTimeout, log)
}

func provideAuthenticator(users services.UserService) middleware.Authenticator {
	return users
}
