package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/halcyonweb/core/internal/pkg/jwt"
	"github.com/halcyonweb/core/internal/pkg/response"
)

const (
	ContextKeyAdminID = "admin_id"
	ContextKeyClaims  = "admin_claims"
)

// Auth returns a middleware that enforces bearer JWT authentication.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "Authorization token is required")
			return
		}

		claims, err := jwt.ParseAccess(token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextKeyAdminID, claims.Subject)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// CurrentAdminID extracts the authenticated administrator ID from context.
func CurrentAdminID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyAdminID)
	id, _ := v.(string)
	return id
}

// CurrentClaims extracts the parsed token claims from context.
func CurrentClaims(c *gin.Context) *jwt.Claims {
	v, _ := c.Get(ContextKeyClaims)
	claims, _ := v.(*jwt.Claims)
	return claims
}

// IsAuthenticated returns true if the request carries a valid access token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentAdminID(c) != ""
}

func extractToken(c *gin.Context) string {
	return NormalizeToken(c.GetHeader("Authorization"))
}

// NormalizeToken trims spaces and strips the optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
