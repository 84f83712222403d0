package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRecipesFindsByNameSubstring(t *testing.T) {
	router := setupTestRouter(nil)

	for _, query := range []string{"salad", "SALAD"} {
		w := performRequest(router, http.MethodGet, "/api/search-recipes?query="+query, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp SearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Recipes, 1)
		assert.Equal(t, 2, resp.Recipes[0].ID)
		assert.Equal(t, "Caesar Salad", resp.Recipes[0].Name)
		assert.Equal(t, []string{"romaine", "parmesan", "croutons", "anchovy dressing"}, resp.Recipes[0].Ingredients)
		assert.InDelta(t, 7.0, resp.Recipes[0].FlavorProfile.Umami, 1e-9)
	}
}

func TestSearchRecipesRequiresQuery(t *testing.T) {
	router := setupTestRouter(nil)

	w := performRequest(router, http.MethodGet, "/api/search-recipes", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "query parameter is required")
}

func TestSearchRecipesHonorsLimit(t *testing.T) {
	router := setupTestRouter(nil)

	// Every fixture recipe name contains an "a"; catalog order rules.
	w := performRequest(router, http.MethodGet, "/api/search-recipes?query=a&limit=3", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 3)
	assert.Equal(t, "Bruschetta", resp.Recipes[0].Name)
	assert.Equal(t, "Caesar Salad", resp.Recipes[1].Name)
	assert.Equal(t, "Tomato Soup", resp.Recipes[2].Name)
}

func TestSearchRecipesDefaultLimit(t *testing.T) {
	router := setupTestRouter(nil)

	w := performRequest(router, http.MethodGet, "/api/search-recipes?query=a", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Recipes, 8)
}

func TestSearchRecipesZeroLimitReturnsNothing(t *testing.T) {
	router := setupTestRouter(nil)

	w := performRequest(router, http.MethodGet, "/api/search-recipes?query=a&limit=0", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Recipes)
	assert.NotNil(t, resp.Recipes)
}

func TestSearchRecipesRejectsBadLimit(t *testing.T) {
	router := setupTestRouter(nil)

	for _, limit := range []string{"abc", "-1", "2.5"} {
		w := performRequest(router, http.MethodGet, "/api/search-recipes?query=a&limit="+limit, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code, "limit %q", limit)
		assert.Contains(t, errorMessage(t, w), "limit must be a non-negative integer")
	}
}

func TestSearchRecipesNoMatchesIsEmptyList(t *testing.T) {
	router := setupTestRouter(nil)

	w := performRequest(router, http.MethodGet, "/api/search-recipes?query=xyzzy", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Recipes)
	assert.NotNil(t, resp.Recipes)
}
