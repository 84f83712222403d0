package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/swaadapp/swaad/backend/internal/catalog"
	"github.com/swaadapp/swaad/backend/internal/menu"
)

// maxPerCategory caps how many recommendations one category returns.
const maxPerCategory = 5

// UserProfile holds one flavor preference vector per menu category.
type UserProfile struct {
	Appetizer catalog.FlavorVector `json:"appetizer"`
	Mains     catalog.FlavorVector `json:"mains"`
	Desserts  catalog.FlavorVector `json:"desserts"`
}

// ForCategory returns the preference vector for a category name,
// or the zero vector for names it does not know.
func (p UserProfile) ForCategory(category string) catalog.FlavorVector {
	switch category {
	case menu.CategoryAppetizer:
		return p.Appetizer
	case menu.CategoryMains:
		return p.Mains
	case menu.CategoryDesserts:
		return p.Desserts
	}
	return catalog.FlavorVector{}
}

// Candidate pairs a dish name as it appeared on the menu with the
// catalog recipe it matched.
type Candidate struct {
	DisplayName string
	Recipe      *catalog.Recipe
}

// ScoredCandidate is one ranked recommendation. Name is the menu's
// own wording for the dish, not the matched recipe's name.
type ScoredCandidate struct {
	Name   string
	Recipe *catalog.Recipe
	Score  float64
}

// CosineSimilarity computes the cosine of the angle between two
// flavor vectors. A vector with zero magnitude has no direction, so
// any comparison involving one scores 0.0.
func CosineSimilarity(a, b catalog.FlavorVector) float64 {
	av, bv := a.Components(), b.Components()

	var dot, na, nb float64
	for i := range av {
		dot += av[i] * bv[i]
		na += av[i] * av[i]
		nb += bv[i] * bv[i]
	}
	if na == 0 || nb == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// RankCategory scores every candidate against the category preference
// vector and returns the strongest matches, best first, at most five.
// Ordering is decided on full-precision similarities and ties keep
// their input order; the scores that come back are rounded to three
// decimal places.
func RankCategory(preference catalog.FlavorVector, candidates []Candidate) []ScoredCandidate {
	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, cand := range candidates {
		scored = append(scored, ScoredCandidate{
			Name:   cand.DisplayName,
			Recipe: cand.Recipe,
			Score:  CosineSimilarity(preference, cand.Recipe.Flavor),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > maxPerCategory {
		scored = scored[:maxPerCategory]
	}
	for i := range scored {
		scored[i].Score = round3(scored[i].Score)
	}
	return scored
}

// Keyword tables for bucketing a flat dish list when the caller
// supplies no categorization. Deliberately coarser than the menu
// segmenter's inference lists: these see already-extracted dish
// names, not raw menu lines.
var (
	fallbackDessertKeywords = []string{
		"cake", "pie", "ice cream", "pudding", "chocolate", "cookie",
		"brownie", "tart", "mousse", "custard", "flan", "sorbet",
	}
	fallbackAppetizerKeywords = []string{
		"salad", "soup", "dip", "bruschetta", "samosa", "spring roll",
		"wings", "nachos", "quesadilla", "hummus", "guacamole",
	}
)

// CategorizeFlat buckets dishes into menu categories by keyword,
// checking dessert cues before appetizer cues and defaulting to
// mains.
func CategorizeFlat(dishes []string) menu.CategorizedDishes {
	out := menu.CategorizedDishes{
		Appetizer: []string{},
		Mains:     []string{},
		Desserts:  []string{},
	}
	for _, dish := range dishes {
		lower := strings.ToLower(dish)
		switch {
		case containsAny(lower, fallbackDessertKeywords):
			out.Desserts = append(out.Desserts, dish)
		case containsAny(lower, fallbackAppetizerKeywords):
			out.Appetizer = append(out.Appetizer, dish)
		default:
			out.Mains = append(out.Mains, dish)
		}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
