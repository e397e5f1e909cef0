package mail_fx

import (
	"go.uber.org/fx"

	"simplifytour/internal/config"
	"simplifytour/internal/services"
	"simplifytour/pkg/logger"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config, log logger.Logger) services.IMailService {
	smtpCfg := services.SMTPConfig{
		Host:       cfg.Mail.Host,
		Port:       cfg.Mail.Port, // 587 for STARTTLS; use 465 with UseSSL=true for SMTPS
		Username:   cfg.Mail.Username,
		Password:   cfg.Mail.Password,
		From:       cfg.Mail.From,
		FromName:   "Simplify Tour",
		UseSSL:     cfg.Mail.Port == 465,
		RequireTLS: !cfg.Debug,

		AppName:         "Simplify Tour",
		FrontendBaseURL: cfg.FrontendBaseURL,
	}

	if cfg.Mail.Host == "" {
		log.Warn("SMTP_HOST is not set, mails are written to the log")
		return services.NewLogMailService(smtpCfg, log)
	}
	return services.NewSMTPMailService(smtpCfg)
}
