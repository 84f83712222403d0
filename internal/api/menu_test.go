package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swaadapp/swaad/backend/config"
	"github.com/swaadapp/swaad/backend/internal/service"
)

func TestProcessMenuCategorizesSections(t *testing.T) {
	router := setupTestRouter(nil)

	menuText := "Starters\n" +
		"bruschetta - $9.00\n" +
		"Tomato Soup $6.50\n" +
		"Main Course\n" +
		"GRILLED SALMON 22.00\n" +
		"chicken tikka masala - $15\n" +
		"Desserts\n" +
		"Chocolate Cake\n"

	w := performRequest(router, http.MethodPost, "/api/process-menu", gin.H{"text": menuText})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp MenuResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, []string{"Bruschetta", "Tomato Soup"}, resp.Categorized.Appetizer)
	assert.Equal(t, []string{"Grilled Salmon", "Chicken Tikka Masala"}, resp.Categorized.Mains)
	assert.Equal(t, []string{"Chocolate Cake"}, resp.Categorized.Desserts)
	assert.Equal(t, []string{
		"Bruschetta", "Tomato Soup",
		"Grilled Salmon", "Chicken Tikka Masala",
		"Chocolate Cake",
	}, resp.Dishes)
}

func TestProcessMenuWithoutTextReturnsEmptyLists(t *testing.T) {
	router := setupTestRouter(nil)

	w := performRequest(router, http.MethodPost, "/api/process-menu", gin.H{})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp MenuResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Dishes)
	assert.NotNil(t, resp.Dishes)
	assert.Empty(t, resp.Categorized.Appetizer)
	assert.Empty(t, resp.Categorized.Mains)
	assert.Empty(t, resp.Categorized.Desserts)
}

func TestProcessMenuRejectsMalformedJSON(t *testing.T) {
	router := setupTestRouter(nil)

	w := performRawRequest(router, http.MethodPost, "/api/process-menu", `{"text": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadMenuImageRequiresFile(t *testing.T) {
	router := setupTestRouter(nil)

	w := performRequest(router, http.MethodPost, "/api/upload-menu-image", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", errorMessage(t, w))
}

func TestUploadMenuImageRejectsNonImageFile(t *testing.T) {
	router := setupTestRouter(nil)

	for _, contentType := range []string{"text/plain", "application/pdf", ""} {
		w := performMultipartUpload(t, router, "/api/upload-menu-image", "menu.txt", contentType, []byte("not an image"))

		assert.Equal(t, http.StatusBadRequest, w.Code, "content type %q", contentType)
		assert.Equal(t, "File must be an image", errorMessage(t, w))
	}
}

func TestUploadMenuImageWithoutVisionConfigured(t *testing.T) {
	router := setupTestRouter(nil)

	w := performMultipartUpload(t, router, "/api/upload-menu-image", "menu.png", "image/png", []byte("fake png"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, errorMessage(t, w), "not configured")
}

func TestUploadMenuImageExtractsDishes(t *testing.T) {
	vision := stubVision(t, `{"dishes": ["Paneer Tikka", "Butter Chicken", "Gulab Jamun"]}`)
	router := setupTestRouter(vision)

	w := performMultipartUpload(t, router, "/api/upload-menu-image", "menu.png", "application/octet-stream", []byte("fake png"))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ImageMenuResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Paneer Tikka\nButter Chicken\nGulab Jamun", resp.ExtractedText)
	assert.Equal(t, []string{"Paneer Tikka", "Butter Chicken", "Gulab Jamun"}, resp.Dishes)
	assert.Equal(t, []string{"Paneer Tikka", "Butter Chicken", "Gulab Jamun"}, resp.Categorized.Mains)
	assert.Empty(t, resp.Categorized.Appetizer)
	assert.Empty(t, resp.Categorized.Desserts)
}

func TestUploadMenuImageInfersTypeFromFilename(t *testing.T) {
	var gotMIME string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					InlineData *struct {
						MIMEType string `json:"mimeType"`
					} `json:"inlineData"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		for _, content := range req.Contents {
			for _, part := range content.Parts {
				if part.InlineData != nil {
					gotMIME = part.InlineData.MIMEType
				}
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "{\"dishes\": [\"Masala Dosa\", \"Idli Sambar\"]}"}]}}]}`))
	}))
	t.Cleanup(ts.Close)

	vision := service.NewVisionService(config.VisionConfig{
		APIKey:  "test-key",
		BaseURL: ts.URL,
		Model:   "gemini-2.5-flash",
		Timeout: 5 * time.Second,
	}, nil, zap.NewNop())
	router := setupTestRouter(vision)

	w := performMultipartUpload(t, router, "/api/upload-menu-image", "menu.webp", "application/octet-stream", []byte("fake webp"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/webp", gotMIME)
}

func TestUploadMenuImageShortExtractionFails(t *testing.T) {
	vision := stubVision(t, `{"dishes": ["Pho"]}`)
	router := setupTestRouter(vision)

	w := performMultipartUpload(t, router, "/api/upload-menu-image", "menu.jpg", "image/jpeg", []byte("fake jpg"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "Could not extract text from image")
}

func TestUploadMenuImageNoDishesFails(t *testing.T) {
	vision := stubVision(t, `{"dishes": []}`)
	router := setupTestRouter(vision)

	w := performMultipartUpload(t, router, "/api/upload-menu-image", "menu.jpg", "image/jpeg", []byte("fake jpg"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "No dish names found in menu image")
}

func TestUploadMenuImageSurfacesVisionFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exhausted"}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(ts.Close)

	vision := service.NewVisionService(config.VisionConfig{
		APIKey:  "test-key",
		BaseURL: ts.URL,
		Model:   "gemini-2.5-flash",
		Timeout: 5 * time.Second,
	}, nil, zap.NewNop())
	router := setupTestRouter(vision)

	w := performMultipartUpload(t, router, "/api/upload-menu-image", "menu.jpg", "image/jpeg", []byte("fake jpg"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to process menu image", errorMessage(t, w))
}

func TestValidUploadType(t *testing.T) {
	assert.True(t, validUploadType("image/png"))
	assert.True(t, validUploadType("image/jpeg"))
	assert.True(t, validUploadType("application/octet-stream"))
	assert.False(t, validUploadType("text/plain"))
	assert.False(t, validUploadType("application/pdf"))
	assert.False(t, validUploadType(""))
}

func TestResolveMIMEType(t *testing.T) {
	assert.Equal(t, "image/gif", resolveMIMEType("image/gif", "menu.png"))
	assert.Equal(t, "image/png", resolveMIMEType("application/octet-stream", "menu.png"))
	assert.Equal(t, "image/png", resolveMIMEType("application/octet-stream", "MENU.PNG"))
	assert.Equal(t, "image/webp", resolveMIMEType("application/octet-stream", "menu.webp"))
	assert.Equal(t, "image/jpeg", resolveMIMEType("application/octet-stream", "menu.jpg"))
	assert.Equal(t, "image/jpeg", resolveMIMEType("application/octet-stream", "menu"))
}
