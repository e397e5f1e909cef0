package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Annapurna Base Camp", "annapurna-base-camp"},
		{"  Everest -- View Trek!! ", "everest-view-trek"},
		{"Tilicho_Lake~2", "tilicho_lake~2"},
		{"Ghorepani Poon Hill (5 days)", "ghorepani-poon-hill-5-days"},
		{"Δελφοί Tour", "δελφοί-tour"},
		{"?!.", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"trek": true, "trek-1": true, "trek-2": true}
	exists := func(s string) (bool, error) { return taken[s], nil }

	slug, err := UniqueSlug("trek", exists)
	require.NoError(t, err)
	assert.Equal(t, "trek-3", slug)

	slug, err = UniqueSlug("rafting", exists)
	require.NoError(t, err)
	assert.Equal(t, "rafting", slug)
}

func TestUniqueSlug_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := UniqueSlug("trek", func(string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}
