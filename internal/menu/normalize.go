package menu

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// lowercaseWords stay lowercase in a normalized name unless they lead it.
var lowercaseWords = map[string]struct{}{
	"and": {}, "or": {}, "the": {}, "a": {}, "an": {}, "of": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "with": {}, "by": {}, "from": {},
}

// uppercaseWords are acronyms forced to full caps wherever they appear.
var uppercaseWords = map[string]struct{}{
	"usa": {}, "uk": {}, "nyc": {}, "bbq": {}, "ai": {}, "ceo": {},
}

// NormalizeDishName cleans a raw candidate into a presentable dish name:
// whitespace collapsed, stray symbols stripped, words title-cased with the
// usual exceptions for short connectives and acronyms. An empty result
// means the candidate should be discarded. The function is idempotent.
func NormalizeDishName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	name = whitespaceRuns.ReplaceAllString(name, " ")
	name = stripArtifacts(name)
	name = whitespaceRuns.ReplaceAllString(name, " ")

	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}

	for i, word := range words {
		lower := strings.ToLower(word)
		switch {
		case hasKey(uppercaseWords, lower):
			words[i] = strings.ToUpper(word)
		case i > 0 && hasKey(lowercaseWords, lower):
			words[i] = lower
		default:
			words[i] = capitalize(word)
		}
	}

	return strings.TrimSpace(strings.Join(words, " "))
}

// stripArtifacts drops every rune except letters, digits, whitespace,
// hyphen, apostrophe, ampersand, comma and parentheses.
func stripArtifacts(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '-' || r == '\'' || r == '&' || r == ',' || r == '(' || r == ')':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func hasKey(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
