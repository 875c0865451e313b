package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"grammar-backend/internal/shared/auth"
	"grammar-backend/internal/shared/server/respond"
	"grammar-backend/internal/shared/telemetry"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
	userNameKey  = "userName"
	userRoleKey  = "userRole"
	anonymousKey = "isAnonymous"
)

// RoleAdmin may read global analytics.
const RoleAdmin = "ADMIN"

// Identify resolves an optional bearer token. Requests without a token, or
// with one that fails verification, continue anonymously.
func Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Set(anonymousKey, true)
			c.Next()
			return
		}

		claims, err := auth.VerifyJWT(token)
		if err != nil {
			telemetry.Warn("auth.invalid_token", map[string]any{
				"request_id": RequestIDFromContext(c),
				"path":       c.Request.URL.Path,
				"error":      err.Error(),
			})
			c.Set(anonymousKey, true)
			c.Next()
			return
		}

		c.Set(userIDKey, claims.Sub)
		if claims.Email != "" {
			c.Set(userEmailKey, claims.Email)
		}
		if claims.Name != "" {
			c.Set(userNameKey, claims.Name)
		}
		if claims.Role != "" {
			c.Set(userRoleKey, claims.Role)
		}
		c.Set(anonymousKey, false)
		c.Next()
	}
}

// RequireUser rejects requests that Identify left anonymous.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserIDFromContext(c) == "" {
			respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Authentication required", nil)
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	return token, token != ""
}

// UserIDFromContext fetches the user ID set by Identify.
func UserIDFromContext(c *gin.Context) string {
	return contextString(c, userIDKey)
}

// UserEmailFromContext fetches the user email set by Identify.
func UserEmailFromContext(c *gin.Context) string {
	return contextString(c, userEmailKey)
}

// UserNameFromContext fetches the user name set by Identify.
func UserNameFromContext(c *gin.Context) string {
	return contextString(c, userNameKey)
}

// RoleFromContext fetches the role claim set by Identify.
func RoleFromContext(c *gin.Context) string {
	return contextString(c, userRoleKey)
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	return auth.Claims{Role: RoleFromContext(c)}.HasRole(RoleAdmin)
}

func contextString(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(key)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
