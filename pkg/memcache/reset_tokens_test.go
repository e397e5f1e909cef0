package memcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResetTokens_SingleUse(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "a@example.com", time.Hour)

	email, ok := store.Peek("tok")
	assert.True(t, ok)
	assert.Equal(t, "a@example.com", email)

	assert.Equal(t, "a@example.com", store.Consume("tok"))
	assert.Equal(t, "", store.Consume("tok"))

	_, ok = store.Peek("tok")
	assert.False(t, ok)
}

func TestResetTokens_Expiry(t *testing.T) {
	now := time.Now()
	store := NewResetTokens()
	store.now = func() time.Time { return now }

	store.Set("old", "a@example.com", time.Minute)
	store.Set("fresh", "b@example.com", time.Hour)

	now = now.Add(2 * time.Minute)

	_, ok := store.Peek("old")
	assert.False(t, ok)
	assert.Equal(t, 1, store.Purge())

	email, ok := store.Peek("fresh")
	assert.True(t, ok)
	assert.Equal(t, "b@example.com", email)
}
