package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/user/pnmovie/internal/model"
)

const userContextKey = "current_user"

// Claims are the JWT claims carried by a bearer token. Only the username is
// embedded; the account itself is re-resolved on every request.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserFinder resolves a username against the credential store.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// RequireAuth extracts and verifies the bearer token, resolves the account
// and injects it into the request context.
func RequireAuth(secret string, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is missing!"})
			return
		}

		claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token đã hết hạn!"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token!"})
			return
		}

		user, err := users.FindByUsername(c.Request.Context(), claims.Username)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Tài khoản không tồn tại!"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin enforces the admin role. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Bạn không phải admin!"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the resolved account, or nil outside RequireAuth.
func CurrentUser(c *gin.Context) *model.User {
	if v, exists := c.Get(userContextKey); exists {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

// GenerateToken signs a token carrying the username with an absolute
// expiry.
func GenerateToken(username, secret string, expiry time.Duration) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
