package services

import (
	"fmt"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/catalog"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

// CompatibilityAnalyzer finds pairwise conflicts and synergies
type CompatibilityAnalyzer struct {
	catalog *catalog.Catalog
}

// NewCompatibilityAnalyzer creates an analyzer over the given catalog
func NewCompatibilityAnalyzer(c *catalog.Catalog) *CompatibilityAnalyzer {
	return &CompatibilityAnalyzer{catalog: c}
}

// Analyze checks every unordered pair in input order. A pair can be reported
// as both a conflict and a synergy when the reference data says so; no
// precedence is applied.
func (a *CompatibilityAnalyzer) Analyze(names []string) models.CompatibilityReport {
	report := models.CompatibilityReport{
		Conflicts: []models.CompatibilityFinding{},
		Synergies: []models.CompatibilityFinding{},
	}

	type entry struct {
		name string
		ing  models.Ingredient
	}
	entries := make([]entry, 0, len(names))
	for _, raw := range names {
		name := models.NormalizeName(raw)
		if name == "" {
			continue
		}
		// unknown names have empty lists and can only match via the other side
		ing, _ := a.catalog.Lookup(name)
		entries = append(entries, entry{name: name, ing: ing})
	}

	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			left, right := entries[i], entries[j]
			pair := [2]string{left.name, right.name}

			if left.ing.IncompatibleWithName(right.name) || right.ing.IncompatibleWithName(left.name) {
				report.Conflicts = append(report.Conflicts, models.CompatibilityFinding{
					Pair:        pair,
					Kind:        models.FindingConflict,
					Explanation: fmt.Sprintf("%s and %s should not be combined in the same formula", left.name, right.name),
				})
			}
			if left.ing.CompatibleWithName(right.name) || right.ing.CompatibleWithName(left.name) {
				report.Synergies = append(report.Synergies, models.CompatibilityFinding{
					Pair:        pair,
					Kind:        models.FindingSynergy,
					Explanation: fmt.Sprintf("%s and %s work well together", left.name, right.name),
				})
			}
		}
	}

	report.Rating = RateConflicts(len(report.Conflicts))
	return report
}

// RateConflicts maps a conflict count onto the three-tier rating
func RateConflicts(conflicts int) models.CompatibilityRating {
	switch {
	case conflicts == 0:
		return models.RatingExcellent
	case conflicts == 1:
		return models.RatingGood
	default:
		return models.RatingNeedsReview
	}
}
