package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(now *time.Time) *JWTManager {
	m := NewJWTManager("test-secret", 5*time.Minute, 7*24*time.Hour)
	m.now = func() time.Time { return *now }
	return m
}

func TestJWTManager_CreateAndValidate(t *testing.T) {
	now := time.Now()
	m := newTestManager(&now)
	id := uuid.New()

	token, claims, err := m.CreateToken(id, "traveller@example.com")
	require.NoError(t, err)
	assert.Equal(t, now.Unix(), claims.OrigIat)

	parsed, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "traveller@example.com", parsed.Email)

	parsedID, err := parsed.UserID()
	require.NoError(t, err)
	assert.Equal(t, id, parsedID)

	payload := parsed.Payload()
	assert.Equal(t, "traveller@example.com", payload["email"])
	assert.Contains(t, payload, "exp")
}

func TestJWTManager_Expired(t *testing.T) {
	now := time.Now()
	m := newTestManager(&now)

	token, _, err := m.CreateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	now = now.Add(10 * time.Minute)
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_InvalidSignature(t *testing.T) {
	now := time.Now()
	m := newTestManager(&now)
	other := NewJWTManager("other-secret", time.Minute, time.Hour)

	token, _, err := other.CreateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_Refresh(t *testing.T) {
	now := time.Now()
	m := newTestManager(&now)

	token, original, err := m.CreateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	refreshed, claims, err := m.RefreshToken(token)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed)
	assert.Equal(t, original.OrigIat, claims.OrigIat)
	assert.Equal(t, original.OrigIat+int64((7*24*time.Hour).Seconds()), m.RefreshExpiresIn(claims))
}

func TestJWTManager_RefreshWindowClosed(t *testing.T) {
	now := time.Now()
	m := NewJWTManager("test-secret", 30*24*time.Hour, time.Hour)
	m.now = func() time.Time { return now }

	token, _, err := m.CreateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, _, err = m.RefreshToken(token)
	assert.ErrorIs(t, err, ErrRefreshExpired)
}
