package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/darkahs/storefront/internal/pkg/auth"
	"github.com/darkahs/storefront/internal/usecase"
)

const (
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	authCookieName   = "token"
)

// TokenParser resolves a session token to its subject.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// AuthRequired ensures the request carries a valid user session.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, ok := resolveSubject(c, parser)
		if !ok {
			return
		}
		c.Set(UserIDContextKey, subject)
		c.Next()
	}
}

// AdminRequired ensures the request carries a valid admin session.
func AdminRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, ok := resolveSubject(c, parser)
		if !ok {
			return
		}
		if subject != usecase.AdminSubject {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized"})
			return
		}
		c.Next()
	}
}

func resolveSubject(c *gin.Context, parser TokenParser) (string, bool) {
	token := extractToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized, login again"})
		return "", false
	}

	subject, err := parser.ParseToken(token)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrInvalidToken) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized, login again"})
			return "", false
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return "", false
	}
	return subject, true
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
