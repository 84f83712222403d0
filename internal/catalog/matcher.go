package catalog

import (
	"sort"
	"strings"
)

// wordOverlapThreshold is the minimum word-overlap score a tier-3 match
// must exceed (strictly) to count as a match.
const wordOverlapThreshold = 0.3

// FindRecipe resolves a free-text dish name against the catalog. Three
// tiers, first success wins:
//
//  1. case-insensitive exact name equality (hash lookup, first row wins)
//  2. the query as a substring of a recipe name, in dataset order
//  3. word-overlap scoring |q∩c| / max(|q|,|c|), best row wins, ties going
//     to the earliest row, and only if the score exceeds 0.3
//
// A failed lookup is not an error; the boolean reports whether a recipe
// was found.
func (c *Catalog) FindRecipe(name string) (*Recipe, bool) {
	query := strings.ToLower(strings.TrimSpace(name))

	if i, ok := c.byName[query]; ok {
		return &c.recipes[i], true
	}

	for i, lower := range c.lowerNames {
		if strings.Contains(lower, query) {
			return &c.recipes[i], true
		}
	}

	if i, ok := c.bestWordOverlap(query); ok {
		return &c.recipes[i], true
	}
	return nil, false
}

// bestWordOverlap runs the tier-3 scoring over the inverted word index so
// only rows sharing at least one word with the query are visited. The
// tie-break and threshold semantics are identical to a full linear scan.
func (c *Catalog) bestWordOverlap(query string) (int, bool) {
	queryWords := wordSet(query)
	if len(queryWords) == 0 {
		return 0, false
	}

	common := make(map[int]int)
	for w := range queryWords {
		for _, row := range c.byWord[w] {
			common[row]++
		}
	}
	if len(common) == 0 {
		return 0, false
	}

	rows := make([]int, 0, len(common))
	for row := range common {
		rows = append(rows, row)
	}
	sort.Ints(rows)

	bestRow, bestScore := -1, 0.0
	for _, row := range rows {
		denom := len(queryWords)
		if c.wordCount[row] > denom {
			denom = c.wordCount[row]
		}
		score := float64(common[row]) / float64(denom)
		if score > bestScore {
			bestScore = score
			bestRow = row
		}
	}
	if bestScore > wordOverlapThreshold {
		return bestRow, true
	}
	return 0, false
}

// Search returns up to limit recipes whose names contain the query,
// case-insensitively, in dataset order. A zero or negative limit
// yields no results.
func (c *Catalog) Search(query string, limit int) []Recipe {
	results := []Recipe{}
	if limit <= 0 {
		return results
	}

	queryLower := strings.ToLower(query)
	for i, lower := range c.lowerNames {
		if !strings.Contains(lower, queryLower) {
			continue
		}
		results = append(results, c.recipes[i])
		if len(results) >= limit {
			break
		}
	}
	return results
}
