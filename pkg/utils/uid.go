package utils

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// EncodeUID renders a user id the way activation and reset links carry it.
func EncodeUID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.String()))
}

func DecodeUID(uid string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return uuid.Nil, ErrUserNotFound
	}
	id, err := uuid.Parse(string(raw))
	if err != nil {
		return uuid.Nil, ErrUserNotFound
	}
	return id, nil
}
