// Package catalog holds the immutable reference data the formulation engine
// works from: curated ingredient safety data, rule templates, base skeletons
// and the point-estimate percentages used for composition.
//
// Everything here is built once and only ever read afterwards, so a single
// Catalog and Formulary can be shared by any number of goroutines.
package catalog

import (
	"sort"
	"sync"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

// Version identifies the revision of the reference tables
const Version = "2024.06"

// Catalog is the ingredient reference dataset
type Catalog struct {
	ingredients map[string]models.Ingredient
	names       []string
}

// New builds a catalog from a list of entries. Names are normalised; a later
// entry with the same name replaces an earlier one.
func New(entries []models.Ingredient) *Catalog {
	c := &Catalog{ingredients: make(map[string]models.Ingredient, len(entries))}
	for _, e := range entries {
		e = e.Clone()
		e.Name = models.NormalizeName(e.Name)
		c.ingredients[e.Name] = e
	}
	c.names = make([]string, 0, len(c.ingredients))
	for n := range c.ingredients {
		c.names = append(c.names, n)
	}
	sort.Strings(c.names)
	return c
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	return New(referenceIngredients())
})

// Default returns the shared curated catalog
func Default() *Catalog {
	return defaultCatalog()
}

// Lookup finds an ingredient by name, case-insensitively. Unknown names are
// not an error; callers fall back to CategoryDefault.
func (c *Catalog) Lookup(name string) (models.Ingredient, bool) {
	ing, ok := c.ingredients[models.NormalizeName(name)]
	if !ok {
		return models.Ingredient{}, false
	}
	return ing.Clone(), true
}

// Names lists every curated ingredient in sorted order
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of curated ingredients
func (c *Catalog) Len() int { return len(c.ingredients) }

// CategoryDefault is the generic safe band used for ingredients outside the
// curated catalog.
func CategoryDefault(category models.Category) models.ConcentrationRange {
	switch category {
	case models.CategoryExtract:
		return models.ConcentrationRange{Min: 0.1, Max: 2.0, Recommended: 0.5}
	case models.CategoryBooster:
		return models.ConcentrationRange{Min: 0.5, Max: 5.0, Recommended: 2.0}
	default:
		return models.ConcentrationRange{Min: 0.1, Max: 5.0, Recommended: 1.0}
	}
}
