package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	Email   string `json:"email"`
	OrigIat int64  `json:"origIat"`
	jwt.RegisteredClaims
}

// Payload is the claim set exposed to GraphQL clients.
func (c *Claims) Payload() map[string]interface{} {
	payload := map[string]interface{}{
		"email":   c.Email,
		"origIat": c.OrigIat,
	}
	if c.ExpiresAt != nil {
		payload["exp"] = c.ExpiresAt.Unix()
	}
	return payload
}

// UserID returns the subject as a UUID.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type JWTManager struct {
	secret            []byte
	expiration        time.Duration
	refreshExpiration time.Duration
	now               func() time.Time
}

func NewJWTManager(secret string, expiration, refreshExpiration time.Duration) *JWTManager {
	return &JWTManager{
		secret:            []byte(secret),
		expiration:        expiration,
		refreshExpiration: refreshExpiration,
		now:               time.Now,
	}
}

// CreateToken issues an access token whose refresh window starts now.
func (m *JWTManager) CreateToken(userID uuid.UUID, email string) (string, *Claims, error) {
	return m.sign(userID.String(), email, m.now().Unix(), m.expiration)
}

// CreateTokenWithTTL issues a token with a custom lifetime, used for activation links.
func (m *JWTManager) CreateTokenWithTTL(userID uuid.UUID, email string, ttl time.Duration) (string, *Claims, error) {
	return m.sign(userID.String(), email, m.now().Unix(), ttl)
}

func (m *JWTManager) sign(subject, email string, origIat int64, ttl time.Duration) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		Email:   email,
		OrigIat: origIat,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// RefreshToken re-signs a still valid token while its refresh window lasts.
func (m *JWTManager) RefreshToken(tokenString string) (string, *Claims, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return "", nil, err
	}
	if m.now().Unix() > m.RefreshExpiresIn(claims) {
		return "", nil, ErrRefreshExpired
	}
	return m.sign(claims.Subject, claims.Email, claims.OrigIat, m.expiration)
}

// RefreshExpiresIn is the unix time after which a token can no longer be refreshed.
func (m *JWTManager) RefreshExpiresIn(claims *Claims) int64 {
	return claims.OrigIat + int64(m.refreshExpiration.Seconds())
}
