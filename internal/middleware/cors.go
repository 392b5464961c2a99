package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ValidOrigin reports whether origin is "*" or carries an http(s) scheme
func ValidOrigin(origin string) bool {
	return origin == "*" || strings.HasPrefix(origin, "http://") || strings.HasPrefix(origin, "https://")
}

// CORS middleware to handle cross-origin requests from the configured frontends.
// Malformed origins are ignored; with none left, no CORS headers are added.
func CORS(origins []string) gin.HandlerFunc {
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		if ValidOrigin(o) {
			allowed = append(allowed, o)
		} else {
			slog.Warn("Ignoring malformed CORS origin", "origin", o)
		}
	}
	if len(allowed) == 0 {
		slog.Warn("CORS disabled, no allowed origins")
		return func(c *gin.Context) { c.Next() }
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowed,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept", "Origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
