package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplifytour/internal/models/db_models"
	"simplifytour/pkg/utils"
)

type tokenTable map[string]*db_models.User

func (t tokenTable) Authenticate(_ context.Context, token string) (*db_models.User, error) {
	if u, ok := t[token]; ok {
		return u, nil
	}
	return nil, utils.ErrInvalidToken
}

func newUser(staff bool) *db_models.User {
	u := &db_models.User{Email: "u@example.com", IsStaff: staff, IsActive: true}
	u.ID = uuid.New()
	return u
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, TokenFromRequest(req, "JWT"))

	req.AddCookie(&http.Cookie{Name: "JWT", Value: "from-cookie"})
	assert.Equal(t, "from-cookie", TokenFromRequest(req, "JWT"))

	req.Header.Set("Authorization", "Bearer from-bearer")
	assert.Equal(t, "from-bearer", TokenFromRequest(req, "JWT"))

	req.Header.Set("Authorization", "JWT from-header")
	assert.Equal(t, "from-header", TokenFromRequest(req, "JWT"))

	req.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "from-cookie", TokenFromRequest(req, "JWT"))
}

func TestAuthMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)
	staff, walker := newUser(true), newUser(false)
	auth := tokenTable{"staff": staff, "walker": walker}

	r := gin.New()
	r.GET("/public", OptionalAuth(auth, "JWT"), func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.String(http.StatusOK, u.ID.String())
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/admin", JWTAuthMiddleware(auth, "JWT"), StaffOnly(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})

	do := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "JWT "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, "anonymous", do("/public", "").Body.String())
	assert.Equal(t, "anonymous", do("/public", "bogus").Body.String())
	assert.Equal(t, walker.ID.String(), do("/public", "walker").Body.String())

	assert.Equal(t, http.StatusUnauthorized, do("/admin", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do("/admin", "bogus").Code)
	assert.Equal(t, http.StatusForbidden, do("/admin", "walker").Code)
	w := do("/admin", "staff")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, staff.ID.String(), w.Body.String())
}

func TestTraceIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())
	assert.Equal(t, id, w.Header().Get("X-Trace-ID"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://admin.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
