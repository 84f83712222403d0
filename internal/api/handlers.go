package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swaadapp/swaad/backend/internal/catalog"
	"github.com/swaadapp/swaad/backend/internal/service"
)

// Banner identifies the API at the root path.
func Banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Swaad Recipe Recommendation API",
	})
}

// HealthCheck reports service health and the size of the loaded
// recipe catalog.
func HealthCheck(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Swaad API is running",
			"recipes": cat.Len(),
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, cat *catalog.Catalog, vision *service.VisionService, log *zap.Logger) {
	router.GET("/", Banner)
	router.GET("/health", HealthCheck(cat))
	router.GET("/api/health", HealthCheck(cat))

	menuHandler := NewMenuHandler(vision, log)
	recommendationHandler := NewRecommendationHandler(cat)
	recipeHandler := NewRecipeHandler(cat)

	apiGroup := router.Group("/api")
	menuHandler.RegisterRoutes(apiGroup)
	recommendationHandler.RegisterRoutes(apiGroup)
	recipeHandler.RegisterRoutes(apiGroup)
}
