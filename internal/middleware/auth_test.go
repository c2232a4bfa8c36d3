package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/pnmovie/internal/model"
)

const testSecret = "test-secret"

type stubUserFinder struct {
	users map[string]*model.User
}

func (s *stubUserFinder) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return s.users[username], nil
}

func newAuthRouter(finder UserFinder, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{RequireAuth(testSecret, finder)}
	if adminOnly {
		handlers = append(handlers, RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c).Username})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingOrMalformedHeader(t *testing.T) {
	r := newAuthRouter(&stubUserFinder{}, false)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"no bearer prefix", "Token abc"},
		{"lowercase bearer", "bearer abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Token is missing!")
		})
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r := newAuthRouter(&stubUserFinder{}, false)

	w := doRequest(r, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token!")

	// Signed with the wrong secret.
	token, err := GenerateToken("an", "wrong-secret", time.Hour)
	require.NoError(t, err)
	w = doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token!")
}

func TestRequireAuthExpiredToken(t *testing.T) {
	r := newAuthRouter(&stubUserFinder{}, false)

	token, err := GenerateToken("an", testSecret, -time.Minute)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token đã hết hạn!")
}

func TestRequireAuthUnknownAccount(t *testing.T) {
	r := newAuthRouter(&stubUserFinder{}, false)

	token, err := GenerateToken("ghost", testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Tài khoản không tồn tại!")
}

func TestRequireAuthResolvesUser(t *testing.T) {
	finder := &stubUserFinder{users: map[string]*model.User{
		"an": {Username: "an", Role: "user"},
	}}
	r := newAuthRouter(finder, false)

	token, err := GenerateToken("an", testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"an"`)
}

func TestRequireAdmin(t *testing.T) {
	finder := &stubUserFinder{users: map[string]*model.User{
		"an":   {Username: "an", Role: "user"},
		"boss": {Username: "boss", Role: "admin"},
	}}
	r := newAuthRouter(finder, true)

	// A perfectly valid token still gets 403 without the admin role.
	token, err := GenerateToken("an", testSecret, time.Hour)
	require.NoError(t, err)
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Bạn không phải admin!")

	token, err = GenerateToken("boss", testSecret, time.Hour)
	require.NoError(t, err)
	w = doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("an", testSecret, 24*time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "an", claims.Username)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}
