package middleware

import (
	"net/http"
	"strings"

	"dealerpos/internal/domain"
	"dealerpos/internal/services"

	"github.com/gin-gonic/gin"
)

const claimsKey = "auth_claims"

type TokenParser interface {
	ParseToken(token string) (services.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		claims, err := parser.ParseToken(strings.TrimSpace(token))
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRoles must run after RequireAuth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = true
	}
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		if !allowed[strings.ToLower(strings.TrimSpace(claims.Role))] {
			abortJSON(c, http.StatusForbidden, "forbidden", "role "+claims.Role+" may not do this")
			return
		}
		c.Next()
	}
}

// GetClaims returns the claims stored by RequireAuth.
func GetClaims(c *gin.Context) (services.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return services.Claims{}, false
	}
	claims, ok := v.(services.Claims)
	return claims, ok
}

// RequestContext exposes the caller for audit logging.
func RequestContext(c *gin.Context) domain.RequestContext {
	claims, _ := GetClaims(c)
	return domain.RequestContext{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}
}

func abortJSON(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      msg,
		"code":       code,
		"request_id": GetRequestID(c),
		"message":    msg,
	})
}
