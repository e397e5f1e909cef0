package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("JWT_SECRET", "secret")
}

func TestParse_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 5*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, 3, cfg.RichTextFilterLevel)
	assert.Equal(t, ".thumbnails", cfg.Media.ThumbnailsDir)
	assert.Equal(t, 2000, cfg.Media.ThumbMaxSize)
	assert.Equal(t, "console", cfg.Logger.Type)
}

func TestParse_MissingSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("JWT_SECRET", "")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParse_InvalidFilterLevel(t *testing.T) {
	setRequired(t)
	t.Setenv("RICHTEXT_FILTER_LEVEL", "7")

	_, err := Parse()
	assert.Error(t, err)
}

func TestAdminThumbDimensions(t *testing.T) {
	w, h, err := MediaConfig{AdminThumbSize: "48x32"}.AdminThumbDimensions()
	require.NoError(t, err)
	assert.Equal(t, 48, w)
	assert.Equal(t, 32, h)

	_, _, err = MediaConfig{AdminThumbSize: "big"}.AdminThumbDimensions()
	assert.Error(t, err)
}
