// Package catalog holds the static recipe reference dataset: the recipes
// themselves, the CSV loader that reads them into memory once at startup,
// and the fuzzy name matcher used to resolve free-text dish names.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// DefaultDatasetFile is the dataset filename resolved against the working
// directory when no explicit path is configured.
const DefaultDatasetFile = "recipes_with_flavour_profiles.csv"

// FlavorVector is a five-dimensional taste descriptor. Components are
// non-negative and default to zero when the source data omits them.
type FlavorVector struct {
	Spicy float64 `json:"spicy"`
	Sweet float64 `json:"sweet"`
	Umami float64 `json:"umami"`
	Sour  float64 `json:"sour"`
	Salty float64 `json:"salty"`
}

// Components returns the vector in the fixed dimension ordering
// [spicy, sweet, umami, sour, salty] used by all similarity math.
func (v FlavorVector) Components() [5]float64 {
	return [5]float64{v.Spicy, v.Sweet, v.Umami, v.Sour, v.Salty}
}

// IsZero reports whether every component is zero.
func (v FlavorVector) IsZero() bool {
	return v == FlavorVector{}
}

// Recipe is one immutable row of the reference dataset. Category is
// contextual (it depends on where the dish appears on a menu) and is
// deliberately not part of the record.
type Recipe struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Ingredients []string     `json:"ingredients"`
	Flavor      FlavorVector `json:"flavor_profile"`
}

// Catalog is the in-memory reference dataset. It is built once and never
// mutated afterwards, so it is safe for unlimited concurrent readers.
type Catalog struct {
	recipes []Recipe

	// byName maps lowercased recipe names to the first row carrying them.
	byName map[string]int
	// lowerNames keeps the lowercased name per row for substring scans.
	lowerNames []string
	// byWord maps each name word to the ascending row indexes containing it.
	byWord map[string][]int
	// wordCount is the number of distinct words in each row's name.
	wordCount []int
}

// New builds a Catalog from already-parsed recipes. Used directly by tests
// and by Load once the CSV rows are decoded.
func New(recipes []Recipe) *Catalog {
	c := &Catalog{
		recipes:    recipes,
		byName:     make(map[string]int, len(recipes)),
		lowerNames: make([]string, len(recipes)),
		byWord:     make(map[string][]int),
		wordCount:  make([]int, len(recipes)),
	}
	for i, r := range recipes {
		lower := strings.ToLower(r.Name)
		c.lowerNames[i] = lower
		if _, ok := c.byName[lower]; !ok {
			c.byName[lower] = i
		}
		words := wordSet(lower)
		c.wordCount[i] = len(words)
		for w := range words {
			c.byWord[w] = append(c.byWord[w], i)
		}
	}
	return c
}

// Len returns the number of recipes in the catalog.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Load reads and parses the dataset CSV at path. A missing file or a row
// with an unparsable ingredients/flavor cell is an error: silently
// defaulting would corrupt every similarity computed from the data.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	cat, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return cat, nil
}

// Read parses dataset CSV content from r. The header row must name the
// id, name, ingredients and flavor_profile columns.
func Read(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"id", "name", "ingredients", "flavor_profile"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var recipes []Recipe
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[col["id"]]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse id: %w", row, err)
		}
		ingredients, err := parseStringList(record[col["ingredients"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse ingredients: %w", row, err)
		}
		flavor, err := parseFlavorProfile(record[col["flavor_profile"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse flavor_profile: %w", row, err)
		}

		recipes = append(recipes, Recipe{
			ID:          id,
			Name:        record[col["name"]],
			Ingredients: ingredients,
			Flavor:      flavor,
		})
	}

	return New(recipes), nil
}

// ResolvePath picks the dataset location: an explicitly configured path
// wins, otherwise the default filename is tried in the working directory
// and then one directory up.
func ResolvePath(configured string) string {
	if configured != "" {
		return configured
	}
	if _, err := os.Stat(DefaultDatasetFile); err == nil {
		return DefaultDatasetFile
	}
	return filepath.Join("..", DefaultDatasetFile)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the process-wide catalog, loading it from the default
// path on first call. The load happens exactly once even under concurrent
// first access; constructor injection of an explicit Catalog is preferred,
// this exists for callers that want the load-on-first-use convenience.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(ResolvePath(""))
	})
	return defaultCatalog, defaultErr
}

// wordSet splits a lowercased name into its set of whitespace-separated
// words.
func wordSet(lower string) map[string]struct{} {
	fields := strings.Fields(lower)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
