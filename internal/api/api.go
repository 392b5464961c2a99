package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
)

// Dependencies are the services behind the HTTP API. ImageStore and
// RateLimiter are optional.
type Dependencies struct {
	Recipes     service.IRecipeService
	ImageStore  service.IImageStore
	RateLimiter *middleware.RateLimiter
	PageSize    int
}

// SetupAPI registers the v1 routes on router
func SetupAPI(router *gin.Engine, deps Dependencies) {
	var mutate []gin.HandlerFunc
	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		mutate = append(mutate, deps.RateLimiter.RateLimitMiddleware())
		RegisterRateLimitRoutes(v1, deps.RateLimiter)
	}

	NewRecipeHandler(deps.Recipes, deps.PageSize).RegisterRoutes(v1, mutate...)
	NewImageHandler(deps.ImageStore).RegisterRoutes(v1, mutate...)
}
