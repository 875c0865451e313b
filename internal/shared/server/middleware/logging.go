package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"grammar-backend/internal/shared/telemetry"
)

// ProviderKey is set by handlers to the checker that served the request.
const ProviderKey = "provider"

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		isAnonymous, ok := c.Get(anonymousKey)
		if !ok {
			isAnonymous = UserIDFromContext(c) == ""
		}

		telemetry.Info("request.complete", map[string]any{
			"request_id":   RequestIDFromContext(c),
			"method":       c.Request.Method,
			"path":         c.Request.URL.Path,
			"status":       c.Writer.Status(),
			"duration_ms":  float64(latency.Microseconds()) / 1000.0,
			"user_id":      UserIDFromContext(c),
			"is_anonymous": isAnonymous,
			"provider":     c.GetString(ProviderKey),
			"client_ip":    c.ClientIP(),
			"user_agent":   c.Request.UserAgent(),
		})
	}
}
