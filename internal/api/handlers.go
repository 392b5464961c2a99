package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/middleware"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Recipe API is running",
		"version": "v1.0.0",
	})
}

// RegisterRateLimitRoutes registers an endpoint reporting how many changes the caller has left
func RegisterRateLimitRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	router.GET("/rate-limits", func(c *gin.Context) {
		remaining, resetTime, err := limiter.GetRemainingRequests(c.Request.Context(), c.ClientIP())
		if err != nil {
			slog.Warn("Rate limit status failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
			return
		}

		cfg := limiter.Config()
		c.JSON(http.StatusOK, gin.H{
			"limit":      cfg.Limit,
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     cfg.Window.Round(time.Second).String(),
		})
	})
}
