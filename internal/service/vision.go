// Package service hosts clients for external APIs.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/swaadapp/swaad/backend/config"
)

// ErrNoDishesFound means the vision model produced no usable dish
// names for an image.
var ErrNoDishesFound = errors.New("no dish names found in menu image")

// Extractions are content-addressed, so repeat uploads of the same
// image skip the vision API entirely.
const extractCacheTTL = 24 * time.Hour

const extractionPrompt = `You are a menu extraction expert. Extract ONLY the dish/item names from this menu image.

CRITICAL RULES - FOLLOW THESE EXACTLY:
1. Extract ONLY the dish/item names - nothing else
2. DO NOT include:
   - Prices (e.g., $9.85, $14.00, $12.50)
   - Descriptions (e.g., "Eggs your style", "served with", ingredient lists)
   - Allergen symbols (e.g., Ⓦ, Ⓓ, Ⓔ, Ⓕ, Ⓢ, Ⓝ, Ⓩ, Ⓥ)
   - Section headers (e.g., "Breakfast", "Tartines", "Shakshuka", "BRUNCH")
   - Restaurant name, hours, footer text, or any other metadata
   - Partial words or fragments
3. DO include:
   - Complete dish names exactly as they appear (e.g., "Breakfast Sandwich", "French Toast")
   - Variants if clearly separate dishes (e.g., "French Toast - Sweet", "French Toast - Savory")
   - Full dish names even if they span multiple words

EXAMPLES OF CORRECT EXTRACTION:
✅ "Breakfast Sandwich" (correct)
✅ "Croissant Breakfast Sandwich" (correct)
✅ "Halloumi Sunny-Side Breakfast Sandwich" (correct)
❌ "$9.85" (WRONG - this is a price)
❌ "Eggs your style" (WRONG - this is a description)
❌ "Breakfast" (WRONG - this is a section header)
❌ "BRUNCH" (WRONG - this is a section header)
❌ "Served all day" (WRONG - this is metadata)

Return a JSON object with this exact format:
{
  "dishes": [
    "Dish Name 1",
    "Dish Name 2",
    "Dish Name 3"
  ]
}

Return ONLY valid JSON, no other text or explanation.`

// VisionService extracts dish names from menu images through the
// Gemini generateContent API.
type VisionService struct {
	client *resty.Client
	model  string
	redis  *redis.Client
	log    *zap.Logger
}

// NewVisionService builds the vision client. redisClient may be nil,
// in which case extractions are simply not cached.
func NewVisionService(cfg config.VisionConfig, redisClient *redis.Client, log *zap.Logger) *VisionService {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("x-goog-api-key", cfg.APIKey).
		SetTimeout(cfg.Timeout)

	return &VisionService{
		client: client,
		model:  cfg.Model,
		redis:  redisClient,
		log:    log,
	}
}

type generateContentRequest struct {
	Contents         []requestContent  `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ExtractDishNames sends a menu image to the vision model and returns
// the dish names it reads, one per line. Returns ErrNoDishesFound when
// the model answers but no dish names survive parsing.
func (s *VisionService) ExtractDishNames(ctx context.Context, imageBytes []byte, mimeType string) (string, error) {
	callID := uuid.NewString()
	cacheKey := extractCacheKey(imageBytes)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			s.log.Debug("menu extraction cache hit", zap.String("call_id", callID))
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("menu extraction cache read failed", zap.Error(err))
		}
	}

	s.log.Debug("extracting dish names from menu image",
		zap.String("call_id", callID),
		zap.String("mime_type", mimeType),
		zap.Int("image_bytes", len(imageBytes)))

	req := generateContentRequest{
		Contents: []requestContent{{
			Parts: []requestPart{
				{InlineData: &inlineData{
					MIMEType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(imageBytes),
				}},
				{Text: extractionPrompt},
			},
		}},
		GenerationConfig: &generationConfig{ResponseMIMEType: "application/json"},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", s.model))
	if err != nil {
		return "", fmt.Errorf("failed to send vision request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("vision API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var result generateContentResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse vision response: %w", err)
	}

	text := candidateText(result)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("vision API returned empty response")
	}

	dishes := parseDishNames(text)
	if len(dishes) == 0 {
		return "", ErrNoDishesFound
	}

	extracted := strings.Join(dishes, "\n")
	s.log.Debug("menu extraction complete",
		zap.String("call_id", callID),
		zap.Int("dishes", len(dishes)))

	if s.redis != nil {
		if err := s.redis.Set(ctx, cacheKey, extracted, extractCacheTTL).Err(); err != nil {
			s.log.Warn("menu extraction cache write failed", zap.Error(err))
		}
	}

	return extracted, nil
}

func extractCacheKey(imageBytes []byte) string {
	sum := sha256.Sum256(imageBytes)
	return "menu:extract:" + hex.EncodeToString(sum[:])
}

func candidateText(resp generateContentResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

var (
	embeddedDishesJSON = regexp.MustCompile(`(?s)\{[^{}]*"dishes"[^{}]*\[[^\]]*\][^{}]*\}`)
	numericNoiseLine   = regexp.MustCompile(`^[\d\s$.,\-]+$`)
	bareAmountLine     = regexp.MustCompile(`^\$?\d+\.?\d*\s*$`)
)

// Lines containing these are dropped when the model ignores the JSON
// instruction and we fall back to plain-text parsing.
var textFallbackSkips = []string{
	"$", "price", "contains", "allergen", "served", "hours",
	"brunch", "breakfast", "tartines", "shakshuka", "menu", "restaurant",
}

// parseDishNames reads the model's answer. Preferred forms are a JSON
// object with a "dishes" array or a bare JSON array; failing those it
// looks for a dishes object embedded in surrounding prose, then falls
// back to filtering the raw lines.
func parseDishNames(text string) []string {
	var wrapper struct {
		Dishes []string `json:"dishes"`
	}
	if err := json.Unmarshal([]byte(text), &wrapper); err == nil && wrapper.Dishes != nil {
		return cleanDishNames(wrapper.Dishes)
	}

	var bare []string
	if err := json.Unmarshal([]byte(text), &bare); err == nil {
		return cleanDishNames(bare)
	}

	if match := embeddedDishesJSON.FindString(text); match != "" {
		if err := json.Unmarshal([]byte(match), &wrapper); err == nil && len(wrapper.Dishes) > 0 {
			return cleanDishNames(wrapper.Dishes)
		}
	}

	return filterDishLines(text)
}

func cleanDishNames(dishes []string) []string {
	out := make([]string, 0, len(dishes))
	for _, d := range dishes {
		if trimmed := strings.TrimSpace(d); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func filterDishLines(text string) []string {
	var dishes []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if containsAnySkip(lower) {
			continue
		}
		if numericNoiseLine.MatchString(line) {
			continue
		}
		if n := len([]rune(line)); n < 3 || n > 80 {
			continue
		}
		if bareAmountLine.MatchString(line) {
			continue
		}
		dishes = append(dishes, line)
	}
	return dishes
}

func containsAnySkip(lower string) bool {
	for _, skip := range textFallbackSkips {
		if strings.Contains(lower, skip) {
			return true
		}
	}
	return false
}
