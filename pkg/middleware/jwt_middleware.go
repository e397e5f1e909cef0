package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"simplifytour/internal/models/db_models"
	"simplifytour/pkg/utils"
)

const userKey = "user"

// Authenticator resolves the user a token was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*db_models.User, error)
}

// TokenFromRequest reads "Authorization: JWT <token>" (or Bearer) and falls
// back to the JWT cookie.
func TokenFromRequest(r *http.Request, cookieName string) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	for _, prefix := range []string{"JWT ", "Bearer "} {
		if strings.HasPrefix(header, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(header, prefix))
		}
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *db_models.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*db_models.User); ok {
			return user
		}
	}
	return nil
}

func SetUser(c *gin.Context, user *db_models.User) {
	c.Set(userKey, user)
	c.Set("user_id", user.ID.String())
}

// OptionalAuth attaches the user when a valid token is present and lets
// anonymous requests through.
func OptionalAuth(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := TokenFromRequest(c.Request, cookieName); token != "" {
			if user, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				SetUser(c, user)
			}
		}
		c.Next()
	}
}

func JWTAuthMiddleware(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c.Request, cookieName)
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		SetUser(c, user)
		c.Next()
	}
}

// StaffOnly must run after JWTAuthMiddleware.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsStaff {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
