package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"simplifytour/pkg/logger"
)

type DatabaseConfig struct {
	Type string `env:"DATABASE_TYPE" envDefault:"postgres" validate:"oneof=postgres sqlite"`
	URL  string `env:"DATABASE_URL" validate:"required"`
}

type JWTConfig struct {
	Secret            string        `env:"JWT_SECRET" validate:"required"`
	Expiration        time.Duration `env:"JWT_EXPIRATION" envDefault:"5m"`
	RefreshExpiration time.Duration `env:"JWT_REFRESH_EXPIRATION" envDefault:"168h"`
	CookieName        string        `env:"JWT_COOKIE_NAME" envDefault:"JWT"`
}

type MediaConfig struct {
	MediaRoot      string `env:"MEDIA_ROOT" envDefault:"./media"`
	MediaURL       string `env:"MEDIA_URL" envDefault:"/media/"`
	StaticRoot     string `env:"STATIC_ROOT" envDefault:"./static"`
	StaticURL      string `env:"STATIC_URL" envDefault:"/static/"`
	ThumbnailsDir  string `env:"THUMBNAILS_DIR_NAME" envDefault:".thumbnails"`
	AdminThumbSize string `env:"ADMIN_THUMB_SIZE" envDefault:"24x24"`
	ThumbMaxSize   int    `env:"THUMBNAIL_MAX_SIZE" envDefault:"2000" validate:"min=1"`
	MaxUploadMB    int64  `env:"MAX_UPLOAD_MB" envDefault:"20"`
}

type MailConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"no-reply@simplifytour.com"`
}

// Config is the process configuration read from the environment.
type Config struct {
	Port             string   `env:"PORT" envDefault:"8080"`
	Debug            bool     `env:"DEBUG" envDefault:"false"`
	SiteDomain       string   `env:"SITE_DOMAIN" envDefault:"localhost:8080"`
	FrontendBaseURL  string   `env:"FRONTEND_BASE_URL" envDefault:"http://localhost:3000"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`

	RichTextFilterLevel          int           `env:"RICHTEXT_FILTER_LEVEL" envDefault:"3" validate:"oneof=1 2 3"`
	PackagesIncludeLoginRequired bool          `env:"PACKAGES_PUBLISHED_INCLUDE_LOGIN_REQUIRED" envDefault:"false"`
	PasswordResetTimeout         time.Duration `env:"PASSWORD_RESET_TIMEOUT" envDefault:"72h"`

	Database DatabaseConfig
	JWT      JWTConfig
	Media    MediaConfig
	Mail     MailConfig
	Logger   logger.Settings
}

// Load reads an optional .env file and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment without touching .env.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed for config: %w", err)
	}
	if _, _, err := c.Media.AdminThumbDimensions(); err != nil {
		return err
	}
	return c.Logger.Validate()
}

// AdminThumbDimensions parses ADMIN_THUMB_SIZE ("WxH").
func (m MediaConfig) AdminThumbDimensions() (int, int, error) {
	parts := strings.SplitN(m.AdminThumbSize, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid ADMIN_THUMB_SIZE %q", m.AdminThumbSize)
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil || w < 0 || h < 0 {
		return 0, 0, fmt.Errorf("invalid ADMIN_THUMB_SIZE %q", m.AdminThumbSize)
	}
	return w, h, nil
}
