package logger

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

const (
	TypeConsole = "console"
	TypeFile    = "file"
)

// Settings selects the logger implementation and its rotation policy.
type Settings struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info" validate:"required,oneof=debug info warning error"`
	Type       string `env:"LOG_TYPE" envDefault:"console" validate:"required,oneof=console file"`
	FilePath   string `env:"LOG_FILE_PATH"`
	MaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"10"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAge     int    `env:"LOG_MAX_AGE" envDefault:"28"`
}

func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for logger settings: %w", err)
	}

	if s.Type == TypeFile {
		if s.FilePath == "" {
			return fmt.Errorf("file path is required for file logger")
		}
		if s.MaxSize < 1 || s.MaxSize > 100 {
			return fmt.Errorf("max size must be between 1 and 100 MB")
		}
		if s.MaxBackups < 1 || s.MaxBackups > 10 {
			return fmt.Errorf("max backups must be between 1 and 10")
		}
		if s.MaxAge < 1 || s.MaxAge > 365 {
			return fmt.Errorf("max age must be between 1 and 365 days")
		}
	}
	return nil
}

// New builds a Logger from validated settings.
func New(settings *Settings) (Logger, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	switch settings.Type {
	case TypeConsole:
		return NewConsoleLogger(settings.Level), nil
	case TypeFile:
		return NewFileLogger(settings.Level, settings.FilePath, settings.MaxSize, settings.MaxBackups, settings.MaxAge), nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", settings.Type)
	}
}
