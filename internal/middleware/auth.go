package middleware

import (
	"net/http"
	"strings"

	"gymref/config"
	"gymref/internal/auth"
	"gymref/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	ctxOwnerID = "owner_id"
	ctxEmail   = "email"
	ctxRole    = "role"
	ctxClaims  = "claims"
)

// AuthRequired validates the access JWT from the Authorization header or the
// session cookie and sets the owner id, email and role in context.
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format", "code": domain.CodeUnauthorized})
			return
		}
		if token == "" {
			token, _ = c.Cookie(domain.SessionCookie)
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session", "code": domain.CodeUnauthorized})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token", "code": domain.CodeUnauthorized})
			return
		}
		c.Set(ctxOwnerID, claims.OwnerID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// bearerToken returns the header token, or "" without a header. ok is false
// for a malformed header.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", true
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireRole checks that the authenticated owner has one of the allowed roles.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ctxRole)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "code": domain.CodeUnauthorized})
			return
		}
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "code": domain.CodeForbidden})
	}
}

// GetOwnerID returns the authenticated owner id (must be used after AuthRequired).
func GetOwnerID(c *gin.Context) string {
	return c.GetString(ctxOwnerID)
}
