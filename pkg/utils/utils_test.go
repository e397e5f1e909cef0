package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUID_RoundTrip(t *testing.T) {
	id := uuid.New()
	decoded, err := DecodeUID(EncodeUID(id))
	require.NoError(t, err)
	assert.Equal(t, id, decoded)

	_, err = DecodeUID("%%%")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NoError(t, ComparePasswords(hash, "s3cret-pass"))
	assert.Error(t, ComparePasswords(hash, "wrong"))
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(16)
	require.NoError(t, err)
	assert.Len(t, a, 32)

	b, err := GenerateSecureToken(16)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = GenerateSecureToken(0)
	assert.Error(t, err)
}

func TestParseDateAndClock(t *testing.T) {
	d, err := ParseDate("2024-10-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-10-05", d)

	_, err = ParseDate("05/10/2024")
	assert.ErrorIs(t, err, ErrInvalidInput)

	c, err := ParseClock("07:30:00")
	require.NoError(t, err)
	assert.Equal(t, "07:30", c)

	_, err = ParseClock("7pm")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidatePage(t *testing.T) {
	p, err := ValidatePage(3, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Offset())

	_, err = ValidatePage(0, 10)
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, err = ValidatePage(1, 101)
	assert.ErrorIs(t, err, ErrInvalidPageSize)
}
