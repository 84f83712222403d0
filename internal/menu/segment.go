package menu

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Menu section categories.
const (
	CategoryAppetizer = "appetizer"
	CategoryMains     = "mains"
	CategoryDesserts  = "desserts"
)

// Categories lists the section names in presentation order.
var Categories = []string{CategoryAppetizer, CategoryMains, CategoryDesserts}

// maxDishesPerCategory caps each extracted section list.
const maxDishesPerCategory = 20

// Section header synonyms, checked by substring containment in this order.
var (
	appetizerSynonyms = []string{
		"appetizer", "appetiser", "appetizers", "appetisers",
		"starter", "starters", "small plates", "small plate",
		"tapas", "hors d'oeuvres", "hors d'oeuvre", "hors d oeuvres",
		"beginning", "beginnings", "first course", "first courses",
	}
	mainsSynonyms = []string{
		"main", "mains", "main course", "main courses",
		"entree", "entrees", "big plates", "big plate",
		"large plates", "large plate", "mains course", "main dish",
		"main dishes", "second course", "second courses",
	}
	dessertSynonyms = []string{
		"dessert", "desserts", "sweet", "sweets",
		"pudding", "puddings", "finale", "finales",
		"sweet course", "sweet courses", "after dinner",
	}
)

// Keyword tables for inferring a category when no section header is active.
var (
	dessertKeywords = []string{
		"cake", "pie", "ice cream", "pudding", "chocolate", "cookie",
		"brownie", "tart", "mousse", "custard", "flan", "sorbet",
		"cheesecake", "tiramisu", "gelato", "sundae", "parfait",
		"creme brulee", "creme brûlée", "baklava", "cannoli",
	}
	appetizerKeywords = []string{
		"salad", "soup", "dip", "bruschetta", "samosa", "spring roll",
		"wings", "nachos", "quesadilla", "hummus", "guacamole",
		"appetizer", "starter", "tapas", "antipasto", "mezze",
		"crostini", "canape", "canapé",
	}
)

// Price-fragment stripping, applied to accepted dish lines in this order.
var (
	leadingNumbering  = regexp.MustCompile(`^\d+[.)]\s*`)
	trailingDashPrice = regexp.MustCompile(`\s*-\s*\$?\d+\.?\d*\s*$`)
	trailingPrice     = regexp.MustCompile(`\s*\$?\d+\.?\d*\s*$`)
	bracketedPrice    = regexp.MustCompile(`\s*[(\[].*?\d+\.?\d*.*?[)\]]\s*$`)
	embeddedDollar    = regexp.MustCompile(`\s+\$\d+\.?\d*\s*`)
	trailingCurrency  = regexp.MustCompile(`(?i)\s+\d+\.?\d*\s*(usd|eur|gbp|rs|rupees?|each|per)\s*$`)
)

// CategorizedDishes is the segmenter output: per-section ordered dish name
// lists, each deduplicated case-insensitively and capped at 20 entries.
type CategorizedDishes struct {
	Appetizer []string `json:"appetizer"`
	Mains     []string `json:"mains"`
	Desserts  []string `json:"desserts"`
}

// All flattens the lists in appetizer, mains, desserts order.
func (d CategorizedDishes) All() []string {
	all := make([]string, 0, len(d.Appetizer)+len(d.Mains)+len(d.Desserts))
	all = append(all, d.Appetizer...)
	all = append(all, d.Mains...)
	all = append(all, d.Desserts...)
	return all
}

// ForCategory returns the list for a category name, or nil for names
// it does not know.
func (d CategorizedDishes) ForCategory(category string) []string {
	switch category {
	case CategoryAppetizer:
		return d.Appetizer
	case CategoryMains:
		return d.Mains
	case CategoryDesserts:
		return d.Desserts
	}
	return nil
}

// ExtractDishes walks menu text line by line, tracking the active section
// via header detection and emitting normalized dish names per category.
//
// Header detection is a plain substring containment test that runs before
// the dish-line test, so a line containing a section synonym is always
// consumed as a header even when it could read as a dish name ("Main
// Lobster Roll"). Empty or all-noise input yields empty lists, not an
// error.
func ExtractDishes(menuText string) CategorizedDishes {
	buckets := map[string][]string{
		CategoryAppetizer: {},
		CategoryMains:     {},
		CategoryDesserts:  {},
	}
	seen := map[string]map[string]struct{}{
		CategoryAppetizer: {},
		CategoryMains:     {},
		CategoryDesserts:  {},
	}

	current := ""
	for _, raw := range strings.Split(menuText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case containsAny(lower, appetizerSynonyms):
			current = CategoryAppetizer
			continue
		case containsAny(lower, mainsSynonyms):
			current = CategoryMains
			continue
		case containsAny(lower, dessertSynonyms):
			current = CategoryDesserts
			continue
		}

		if !IsDishLine(line) {
			continue
		}

		cleaned := stripPriceFragments(line)
		if utf8.RuneCountInString(cleaned) < 2 {
			continue
		}

		name := NormalizeDishName(cleaned)
		if name == "" || utf8.RuneCountInString(name) < 2 {
			continue
		}
		if IsPriceLine(name) {
			continue
		}

		category := current
		if category == "" {
			category = inferCategory(name)
		}

		key := strings.ToLower(name)
		if _, dup := seen[category][key]; dup {
			continue
		}
		seen[category][key] = struct{}{}
		buckets[category] = append(buckets[category], name)
	}

	for category, dishes := range buckets {
		if len(dishes) > maxDishesPerCategory {
			buckets[category] = dishes[:maxDishesPerCategory]
		}
	}

	return CategorizedDishes{
		Appetizer: buckets[CategoryAppetizer],
		Mains:     buckets[CategoryMains],
		Desserts:  buckets[CategoryDesserts],
	}
}

// stripPriceFragments removes leading numbering and trailing or embedded
// price text from an accepted dish line. The "- $9.00" form is stripped
// before the bare trailing number so the separating dash goes with it.
func stripPriceFragments(line string) string {
	cleaned := leadingNumbering.ReplaceAllString(line, "")
	cleaned = trailingDashPrice.ReplaceAllString(cleaned, "")
	cleaned = trailingPrice.ReplaceAllString(cleaned, "")
	cleaned = bracketedPrice.ReplaceAllString(cleaned, "")
	cleaned = embeddedDollar.ReplaceAllString(cleaned, " ")
	cleaned = trailingCurrency.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// inferCategory guesses a section for a dish seen outside any header.
// Dessert keywords are checked before appetizer keywords; everything else
// defaults to mains.
func inferCategory(name string) string {
	lower := strings.ToLower(name)
	if containsAny(lower, dessertKeywords) {
		return CategoryDesserts
	}
	if containsAny(lower, appetizerKeywords) {
		return CategoryAppetizer
	}
	return CategoryMains
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
