package api

import (
	"github.com/swaadapp/swaad/backend/internal/catalog"
	"github.com/swaadapp/swaad/backend/internal/menu"
	"github.com/swaadapp/swaad/backend/internal/recommend"
)

// ProcessMenuRequest carries raw menu text to extract dishes from.
// Missing text is treated as an empty menu, not an error.
type ProcessMenuRequest struct {
	Text string `json:"text"`
}

// MenuResponse is the extraction result for a text menu. Dishes is
// the flat list; Categorized splits the same names per section.
type MenuResponse struct {
	Dishes      []string               `json:"dishes"`
	Categorized menu.CategorizedDishes `json:"categorized"`
}

// ImageMenuResponse adds the raw text the vision model read from an
// uploaded menu image.
type ImageMenuResponse struct {
	ExtractedText string                 `json:"extracted_text"`
	Dishes        []string               `json:"dishes"`
	Categorized   menu.CategorizedDishes `json:"categorized"`
}

// RecommendationsRequest asks for per-category recommendations for
// the given menu. CategorizedDishes is optional; when absent the
// dishes are bucketed by keyword.
type RecommendationsRequest struct {
	UserProfile       *recommend.UserProfile `json:"user_profile" binding:"required"`
	MenuDishes        []string               `json:"menu_dishes" binding:"required"`
	CategorizedDishes map[string][]string    `json:"categorized_dishes"`
}

// RecipeRecommendation is one ranked dish. Name is the dish as it
// appeared on the menu; the rest describes the matched recipe.
type RecipeRecommendation struct {
	ID              int                  `json:"id"`
	Name            string               `json:"name"`
	Ingredients     []string             `json:"ingredients"`
	FlavorProfile   catalog.FlavorVector `json:"flavor_profile"`
	SimilarityScore float64              `json:"similarity_score"`
	Category        string               `json:"category"`
}

// RecommendationsResponse groups recommendations by category.
type RecommendationsResponse struct {
	Recommendations map[string][]RecipeRecommendation `json:"recommendations"`
}

// LikedDish names a dish the user enjoys and the category it belongs
// to.
type LikedDish struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// CreateProfileRequest builds a flavor profile from liked dishes.
type CreateProfileRequest struct {
	Dishes []LikedDish `json:"dishes" binding:"required,dive"`
}

// RecipeSummary is a search result row.
type RecipeSummary struct {
	ID            int                  `json:"id"`
	Name          string               `json:"name"`
	Ingredients   []string             `json:"ingredients"`
	FlavorProfile catalog.FlavorVector `json:"flavor_profile"`
}

// SearchResponse wraps recipe search results.
type SearchResponse struct {
	Recipes []RecipeSummary `json:"recipes"`
}
