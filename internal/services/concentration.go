package services

import (
	"math"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/catalog"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

const (
	sensitiveRecommendedFactor = 0.7
	sensitiveMaxFactor         = 0.8
	mistActiveFactor           = 0.8

	phMinCeiling = 7.0
	phMaxFloor   = 3.0
)

// ConcentrationCalculator reports safe concentration bands for display
type ConcentrationCalculator struct {
	catalog *catalog.Catalog
}

// NewConcentrationCalculator creates a calculator over the given catalog
func NewConcentrationCalculator(c *catalog.Catalog) *ConcentrationCalculator {
	return &ConcentrationCalculator{catalog: c}
}

// ComputeRange returns the safe min/max/recommended percentage for an
// ingredient, adjusted for sensitive skin and for actives in a mist.
func (c *ConcentrationCalculator) ComputeRange(name string, category models.Category, skinTypes []string, format models.BaseFormat) models.ConcentrationRange {
	r, _ := c.baseRange(name, category)

	if hasTag(skinTypes, "sensitive") {
		// recommended is scaled and capped against the original max before
		// max itself shrinks
		r.Recommended = math.Min(r.Recommended*sensitiveRecommendedFactor, r.Max)
		r.Max = math.Min(r.Max*sensitiveMaxFactor, r.Max)
	}
	if format == models.FormatMist && category == models.CategoryActive {
		r.Recommended = math.Min(r.Recommended*mistActiveFactor, r.Max)
	}

	r.Min = math.Max(r.Min, 0)
	r.Max = math.Max(r.Max, 0)
	r.Recommended = math.Max(math.Min(r.Recommended, r.Max), 0)
	return r
}

func (c *ConcentrationCalculator) baseRange(name string, category models.Category) (models.ConcentrationRange, bool) {
	if ing, ok := c.catalog.Lookup(name); ok {
		return models.ConcentrationRange{
			Min:         ing.SafeMinPct,
			Max:         ing.SafeMaxPct,
			Recommended: ing.RecommendedPct,
		}, true
	}
	return catalog.CategoryDefault(category), false
}

// AggregatePhGuidance combines the pH windows of the given ingredients.
// Min is the lowest ph_min seen and max the highest ph_max. With no pH data
// at all the result is {7.0, 3.0, 5.0} and flagged Degenerate.
func (c *ConcentrationCalculator) AggregatePhGuidance(names []string) models.PhGuidance {
	g := models.PhGuidance{Min: phMinCeiling, Max: phMaxFloor}
	var sawMin, sawMax bool
	for _, n := range names {
		ing, ok := c.catalog.Lookup(n)
		if !ok {
			continue
		}
		if ing.PhMin != nil && (!sawMin || *ing.PhMin < g.Min) {
			g.Min = *ing.PhMin
			sawMin = true
		}
		if ing.PhMax != nil && (!sawMax || *ing.PhMax > g.Max) {
			g.Max = *ing.PhMax
			sawMax = true
		}
	}
	g.Optimal = (g.Min + g.Max) / 2
	g.Degenerate = !sawMin && !sawMax
	return g
}

// SafetyReport computes ranges for every requested ingredient along with pH
// guidance and the catalog warnings that apply.
func (c *ConcentrationCalculator) SafetyReport(req models.FormulationRequest) models.SafetyReport {
	format, _ := models.ResolveBaseFormat(req.BaseFormat)
	report := models.SafetyReport{
		Ranges:   []models.IngredientRange{},
		Warnings: []string{},
	}

	seenWarning := make(map[string]bool)
	var names []string
	add := func(list []string, category models.Category) {
		for _, raw := range list {
			name := models.NormalizeName(raw)
			if name == "" {
				continue
			}
			names = append(names, name)
			ing, curated := c.catalog.Lookup(name)
			report.Ranges = append(report.Ranges, models.IngredientRange{
				Ingredient: name,
				Category:   category,
				Curated:    curated,
				Range:      c.ComputeRange(name, category, req.SkinTypes, format),
			})
			for _, w := range ing.Warnings {
				if !seenWarning[w] {
					seenWarning[w] = true
					report.Warnings = append(report.Warnings, w)
				}
			}
		}
	}
	add(req.KeyActives, models.CategoryActive)
	add(req.Extracts, models.CategoryExtract)
	add(req.Boosters, models.CategoryBooster)

	report.Ph = c.AggregatePhGuidance(names)
	return report
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if models.NormalizeName(t) == want {
			return true
		}
	}
	return false
}
