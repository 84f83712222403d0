// Package menu turns raw restaurant menu text into categorized dish names.
// It carries the line classifier, the dish-name normalizer, and the
// section-aware segmenter.
package menu

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// pricePatterns match lines that are prices or price-related text. They run
// against the lowercased, trimmed line.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\$?\d+\.?\d*\s*$`),                      // bare number or price
	regexp.MustCompile(`^\d+\.?\d*\s*\$`),                        // number followed by dollar sign
	regexp.MustCompile(`^\$?\d+\.?\d*\s*-\s*\$?\d+\.?\d*`),       // price range
	regexp.MustCompile(`^\$?\d+\.?\d*\s*(usd|eur|gbp|rs|rupees?)`), // number with currency token
	regexp.MustCompile(`^price`),                                 // "price: ..." labels
	regexp.MustCompile(`^\d+\.?\d*\s*each`),
	regexp.MustCompile(`^\d+\.?\d*\s*per`),
}

var (
	bareNumberingPattern = regexp.MustCompile(`^\d+[.)]\s*$`)
	asciiLetterPattern   = regexp.MustCompile(`[a-zA-Z]`)
)

// skipKeywords are lines that never name a dish. Only an exact full-line
// match (lowercased) disqualifies a line; containment does not, so
// "Vegan Burger" survives even though "vegan" is listed.
var skipKeywords = map[string]struct{}{
	"menu": {}, "drink": {}, "beverage": {}, "wine": {}, "beer": {},
	"cocktail": {}, "coffee": {}, "tea": {}, "juice": {}, "allergen": {},
	"contains": {}, "gluten": {}, "vegan": {}, "vegetarian": {},
	"page": {}, "copyright": {}, "tel": {}, "phone": {}, "email": {},
	"website": {}, "www": {}, "hours": {}, "open": {}, "closed": {},
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {}, "am": {}, "pm": {},
}

// IsPriceLine reports whether a line is a price or price-related text: it
// matches one of the fixed price patterns, or is so dominated by digits and
// price punctuation that fewer than 30% of its characters are anything else.
func IsPriceLine(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	for _, pattern := range pricePatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}

	total := utf8.RuneCountInString(line)
	if total == 0 {
		return false
	}
	other := 0
	for _, r := range line {
		switch {
		case unicode.IsDigit(r) || unicode.IsSpace(r):
		case r == '$' || r == '.' || r == ',' || r == '-':
		default:
			other++
		}
	}
	return float64(other)/float64(total) < 0.3
}

// IsDishLine reports whether a line plausibly names a dish. The price test
// runs before the remaining noise checks: a line like "9.85 each" must be
// rejected as a price, not fall through to the alphabetic-content check.
func IsDishLine(line string) bool {
	clean := strings.TrimSpace(line)
	length := utf8.RuneCountInString(clean)
	if length < 2 || length > 80 {
		return false
	}
	if IsPriceLine(clean) {
		return false
	}
	if bareNumberingPattern.MatchString(clean) {
		return false
	}
	if _, reserved := skipKeywords[strings.ToLower(clean)]; reserved {
		return false
	}
	if !asciiLetterPattern.MatchString(clean) {
		return false
	}

	special := 0
	for _, r := range clean {
		if isWordRune(r) || unicode.IsSpace(r) {
			continue
		}
		special++
	}
	return float64(special)/float64(length) <= 0.5
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
