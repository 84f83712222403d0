package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swaadapp/swaad/backend/internal/menu"
	"github.com/swaadapp/swaad/backend/internal/service"
)

// minExtractedTextLength guards against images the vision model could
// not actually read.
const minExtractedTextLength = 10

// MenuHandler serves menu text processing and menu image uploads.
type MenuHandler struct {
	vision *service.VisionService
	log    *zap.Logger
}

// NewMenuHandler creates a menu handler. vision may be nil when no
// API key is configured; image uploads then fail with a clear error.
func NewMenuHandler(vision *service.VisionService, log *zap.Logger) *MenuHandler {
	return &MenuHandler{
		vision: vision,
		log:    log,
	}
}

func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/process-menu", h.ProcessMenu)
	router.POST("/upload-menu-image", h.UploadMenuImage)
}

// ProcessMenu extracts and categorizes dish names from raw menu text.
func (h *MenuHandler) ProcessMenu(c *gin.Context) {
	var req ProcessMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categorized := menu.ExtractDishes(req.Text)

	c.JSON(http.StatusOK, MenuResponse{
		Dishes:      categorized.All(),
		Categorized: categorized,
	})
}

// UploadMenuImage runs a menu image through the vision model, then
// through the same dish extraction as text menus.
func (h *MenuHandler) UploadMenuImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !validUploadType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be an image"})
		return
	}

	if h.vision == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image extraction is not configured; set GEMINI_API_KEY"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}

	extracted, err := h.vision.ExtractDishNames(c.Request.Context(), imageBytes, resolveMIMEType(contentType, fileHeader.Filename))
	if err != nil {
		if errors.Is(err, service.ErrNoDishesFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No dish names found in menu image. Please ensure the image contains a readable menu."})
			return
		}
		h.log.Error("menu image extraction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process menu image"})
		return
	}

	if len([]rune(strings.TrimSpace(extracted))) < minExtractedTextLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not extract text from image. Please ensure the image is clear and contains readable text."})
		return
	}

	categorized := menu.ExtractDishes(extracted)

	c.JSON(http.StatusOK, ImageMenuResponse{
		ExtractedText: extracted,
		Dishes:        categorized.All(),
		Categorized:   categorized,
	})
}

// validUploadType accepts declared image types, plus the generic
// octet-stream some clients send for files they did not sniff.
func validUploadType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || contentType == "application/octet-stream"
}

// resolveMIMEType trusts a declared image type, otherwise infers one
// from the filename extension, defaulting to JPEG.
func resolveMIMEType(contentType, filename string) string {
	if strings.HasPrefix(contentType, "image/") {
		return contentType
	}

	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
