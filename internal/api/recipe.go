package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swaadapp/swaad/backend/internal/catalog"
)

const defaultSearchLimit = 10

// RecipeHandler serves direct catalog lookups.
type RecipeHandler struct {
	catalog *catalog.Catalog
}

func NewRecipeHandler(cat *catalog.Catalog) *RecipeHandler {
	return &RecipeHandler{catalog: cat}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/search-recipes", h.SearchRecipes)
}

// SearchRecipes lists recipes whose names contain the query, in
// catalog order.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	query, ok := c.GetQuery("query")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	matches := h.catalog.Search(query, limit)

	results := make([]RecipeSummary, 0, len(matches))
	for _, r := range matches {
		results = append(results, RecipeSummary{
			ID:            r.ID,
			Name:          r.Name,
			Ingredients:   r.Ingredients,
			FlavorProfile: r.Flavor,
		})
	}

	c.JSON(http.StatusOK, SearchResponse{Recipes: results})
}
