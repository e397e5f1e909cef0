package response_models

import (
	"github.com/google/uuid"

	"simplifytour/internal/models/db_models"
)

type TokenResult struct {
	Token            string                 `json:"token"`
	Payload          map[string]interface{} `json:"payload"`
	RefreshExpiresIn int64                  `json:"refresh_expires_in"`
	User             *db_models.User        `json:"-"`
}

type ProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    *string   `json:"username"`
	Avatar      *string   `json:"avatar"`
	Age         *int      `json:"age"`
	Country     *string   `json:"country"`
	City        *string   `json:"city"`
	Address     *string   `json:"address"`
	PhoneNumber *string   `json:"phone_number"`
	ZipCode     *int      `json:"zip_code"`
	Slogan      *string   `json:"slogan"`
	Bio         *string   `json:"bio"`
}
