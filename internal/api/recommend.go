package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swaadapp/swaad/backend/internal/catalog"
	"github.com/swaadapp/swaad/backend/internal/menu"
	"github.com/swaadapp/swaad/backend/internal/recommend"
)

// RecommendationHandler matches menu dishes against the catalog and
// ranks them by flavor similarity.
type RecommendationHandler struct {
	catalog *catalog.Catalog
}

func NewRecommendationHandler(cat *catalog.Catalog) *RecommendationHandler {
	return &RecommendationHandler{catalog: cat}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recommendations", h.GetRecommendations)
	router.POST("/create-profile", h.CreateProfile)
}

// GetRecommendations returns the top matches per category for the
// user's flavor profile. Dish names that match no catalog recipe are
// silently skipped; categories the request does not mention come back
// as empty lists.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	var req RecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var byCategory menu.CategorizedDishes
	if len(req.CategorizedDishes) > 0 {
		// Only the known category keys are consulted; anything else in
		// the map is ignored.
		byCategory = menu.CategorizedDishes{
			Appetizer: req.CategorizedDishes[menu.CategoryAppetizer],
			Mains:     req.CategorizedDishes[menu.CategoryMains],
			Desserts:  req.CategorizedDishes[menu.CategoryDesserts],
		}
	} else {
		byCategory = recommend.CategorizeFlat(req.MenuDishes)
	}

	recommendations := make(map[string][]RecipeRecommendation, len(menu.Categories))
	for _, category := range menu.Categories {
		var candidates []recommend.Candidate
		for _, dishName := range byCategory.ForCategory(category) {
			if recipe, ok := h.catalog.FindRecipe(dishName); ok {
				candidates = append(candidates, recommend.Candidate{
					DisplayName: dishName,
					Recipe:      recipe,
				})
			}
		}

		ranked := recommend.RankCategory(req.UserProfile.ForCategory(category), candidates)

		items := make([]RecipeRecommendation, 0, len(ranked))
		for _, r := range ranked {
			items = append(items, RecipeRecommendation{
				ID:              r.Recipe.ID,
				Name:            r.Name,
				Ingredients:     r.Recipe.Ingredients,
				FlavorProfile:   r.Recipe.Flavor,
				SimilarityScore: r.Score,
				Category:        category,
			})
		}
		recommendations[category] = items
	}

	c.JSON(http.StatusOK, RecommendationsResponse{Recommendations: recommendations})
}

// CreateProfile averages the flavor profiles of the liked dishes per
// category. Dishes that match no catalog recipe are skipped; an
// unknown category is a client error.
func (h *RecommendationHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profiles := map[string][]catalog.FlavorVector{
		menu.CategoryAppetizer: {},
		menu.CategoryMains:     {},
		menu.CategoryDesserts:  {},
	}

	for _, dish := range req.Dishes {
		if _, ok := profiles[dish.Category]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("unknown category %q; must be one of appetizer, mains, desserts", dish.Category),
			})
			return
		}
		if recipe, ok := h.catalog.FindRecipe(dish.Name); ok {
			profiles[dish.Category] = append(profiles[dish.Category], recipe.Flavor)
		}
	}

	c.JSON(http.StatusOK, recommend.UserProfile{
		Appetizer: recommend.AverageProfile(profiles[menu.CategoryAppetizer]),
		Mains:     recommend.AverageProfile(profiles[menu.CategoryMains]),
		Desserts:  recommend.AverageProfile(profiles[menu.CategoryDesserts]),
	})
}
