package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"simplifytour/internal/config"
	"simplifytour/internal/models/response_models"
	"simplifytour/internal/repositories"
	"simplifytour/pkg/logger"
	"simplifytour/pkg/utils"
)

const (
	SettingRichTextFilterLevel  = "RICHTEXT_FILTER_LEVEL"
	SettingIncludeLoginRequired = "PACKAGES_PUBLISHED_INCLUDE_LOGIN_REQUIRED"
	SettingAdminThumbSize       = "ADMIN_THUMB_SIZE"
	SettingSiteTitle            = "SITE_TITLE"
	SettingSiteTagline          = "SITE_TAGLINE"
)

const (
	settingTypeString = "string"
	settingTypeInt    = "int"
	settingTypeBool   = "bool"
)

type settingDef struct {
	Type     string
	Default  string
	Validate func(string) error
}

// SettingService resolves editable settings: a stored row wins over the
// configured default.
type SettingService interface {
	List(ctx context.Context) ([]response_models.SettingResponse, error)
	Set(ctx context.Context, name, value string) (*response_models.SettingResponse, error)
	Reset(ctx context.Context, name string) error
	GetString(ctx context.Context, name string) string
	GetInt(ctx context.Context, name string) int
	GetBool(ctx context.Context, name string) bool
}

type settingService struct {
	repo     repositories.SettingRepository
	registry map[string]settingDef
	log      logger.Logger
}

func NewSettingService(repo repositories.SettingRepository, cfg *config.Config, log logger.Logger) SettingService {
	return &settingService{
		repo: repo,
		log:  log,
		registry: map[string]settingDef{
			SettingRichTextFilterLevel: {
				Type:    settingTypeInt,
				Default: strconv.Itoa(cfg.RichTextFilterLevel),
				Validate: func(v string) error {
					n, err := strconv.Atoi(v)
					if err != nil || n < 1 || n > 3 {
						return fmt.Errorf("%w: filter level must be 1, 2 or 3", utils.ErrInvalidInput)
					}
					return nil
				},
			},
			SettingIncludeLoginRequired: {
				Type:    settingTypeBool,
				Default: strconv.FormatBool(cfg.PackagesIncludeLoginRequired),
			},
			SettingAdminThumbSize: {
				Type:    settingTypeString,
				Default: cfg.Media.AdminThumbSize,
				Validate: func(v string) error {
					if _, _, err := (config.MediaConfig{AdminThumbSize: v}).AdminThumbDimensions(); err != nil {
						return fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
					}
					return nil
				},
			},
			SettingSiteTitle:   {Type: settingTypeString, Default: "Simplify Tour"},
			SettingSiteTagline: {Type: settingTypeString, Default: ""},
		},
	}
}

func (s *settingService) validate(def settingDef, value string) error {
	switch def.Type {
	case settingTypeInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("%w: value must be an integer", utils.ErrInvalidInput)
		}
	case settingTypeBool:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%w: value must be true or false", utils.ErrInvalidInput)
		}
	}
	if def.Validate != nil {
		return def.Validate(value)
	}
	return nil
}

func (s *settingService) List(ctx context.Context) ([]response_models.SettingResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	stored := make(map[string]string, len(rows))
	for _, row := range rows {
		stored[row.Name] = row.Value
	}

	names := make([]string, 0, len(s.registry))
	for name := range s.registry {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]response_models.SettingResponse, 0, len(names))
	for _, name := range names {
		def := s.registry[name]
		value, ok := stored[name]
		if !ok {
			value = def.Default
		}
		result = append(result, response_models.SettingResponse{
			Name: name, Value: value, Default: def.Default, Type: def.Type, Editable: true,
		})
	}
	return result, nil
}

func (s *settingService) Set(ctx context.Context, name, value string) (*response_models.SettingResponse, error) {
	def, ok := s.registry[name]
	if !ok {
		return nil, utils.ErrSettingNotFound
	}
	if err := s.validate(def, value); err != nil {
		return nil, err
	}
	if _, err := s.repo.Upsert(ctx, name, value); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &response_models.SettingResponse{
		Name: name, Value: value, Default: def.Default, Type: def.Type, Editable: true,
	}, nil
}

// Reset drops the stored override so the default applies again.
func (s *settingService) Reset(ctx context.Context, name string) error {
	if _, ok := s.registry[name]; !ok {
		return utils.ErrSettingNotFound
	}
	if _, err := s.repo.Delete(ctx, name); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *settingService) GetString(ctx context.Context, name string) string {
	def, ok := s.registry[name]
	if !ok {
		s.log.Warn("unknown setting requested: ", name)
		return ""
	}
	row, err := s.repo.Get(ctx, name)
	if err != nil {
		s.log.Error("read setting ", name, ": ", err)
		return def.Default
	}
	if row == nil || s.validate(def, row.Value) != nil {
		return def.Default
	}
	return row.Value
}

func (s *settingService) GetInt(ctx context.Context, name string) int {
	n, _ := strconv.Atoi(s.GetString(ctx, name))
	return n
}

func (s *settingService) GetBool(ctx context.Context, name string) bool {
	b, _ := strconv.ParseBool(s.GetString(ctx, name))
	return b
}
