package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/catalog"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

func TestAnalyze_Ratings(t *testing.T) {
	analyzer := NewCompatibilityAnalyzer(catalog.Default())

	tests := []struct {
		name      string
		input     []string
		conflicts int
		synergies int
		rating    models.CompatibilityRating
	}{
		{"empty", nil, 0, 0, models.RatingExcellent},
		{"single", []string{"retinol"}, 0, 0, models.RatingExcellent},
		{"retinol and vitamin c", []string{"retinol", "vitamin-c"}, 1, 0, models.RatingGood},
		{"three way", []string{"retinol", "vitamin-c", "niacinamide"}, 2, 1, models.RatingNeedsReview},
		{"energizing trio", []string{"caffeine", "beta-vulgaris", "avena-sativa"}, 0, 3, models.RatingExcellent},
		{"unknown names", []string{"foo", "bar"}, 0, 0, models.RatingExcellent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := analyzer.Analyze(tt.input)
			assert.Len(t, report.Conflicts, tt.conflicts)
			assert.Len(t, report.Synergies, tt.synergies)
			assert.Equal(t, tt.rating, report.Rating)
		})
	}
}

func TestAnalyze_EmptySlicesNotNil(t *testing.T) {
	report := NewCompatibilityAnalyzer(catalog.Default()).Analyze(nil)
	assert.NotNil(t, report.Conflicts)
	assert.NotNil(t, report.Synergies)
}

func TestAnalyze_PairOrderFollowsInput(t *testing.T) {
	analyzer := NewCompatibilityAnalyzer(catalog.Default())

	report := analyzer.Analyze([]string{"Vitamin C", "retinol"})
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, [2]string{"vitamin-c", "retinol"}, report.Conflicts[0].Pair)
	assert.Equal(t, models.FindingConflict, report.Conflicts[0].Kind)
	assert.Contains(t, report.Conflicts[0].Explanation, "vitamin-c and retinol")
}

func TestAnalyze_UniversalSentinelOnlySynergy(t *testing.T) {
	analyzer := NewCompatibilityAnalyzer(catalog.Default())

	report := analyzer.Analyze([]string{"hyaluronic-acid", "unknown-ingredient-xyz"})
	assert.Empty(t, report.Conflicts)
	require.Len(t, report.Synergies, 1)
	assert.Equal(t, models.FindingSynergy, report.Synergies[0].Kind)

	report = analyzer.Analyze([]string{"chamomile", "vitamin-c"})
	assert.Empty(t, report.Conflicts)
	assert.Len(t, report.Synergies, 1)
}

func TestAnalyze_PairCanBeBothConflictAndSynergy(t *testing.T) {
	cat := catalog.New([]models.Ingredient{
		{
			Name:           "alpha",
			Category:       models.CategoryActive,
			CompatibleWith: []models.CompatTarget{models.Named("beta")},
		},
		{
			Name:             "beta",
			Category:         models.CategoryActive,
			IncompatibleWith: []models.CompatTarget{models.Named("alpha")},
		},
	})

	report := NewCompatibilityAnalyzer(cat).Analyze([]string{"alpha", "beta"})
	require.Len(t, report.Conflicts, 1)
	require.Len(t, report.Synergies, 1)
	assert.Equal(t, report.Conflicts[0].Pair, report.Synergies[0].Pair)
	assert.Equal(t, models.RatingGood, report.Rating)
}

func TestRateConflicts(t *testing.T) {
	assert.Equal(t, models.RatingExcellent, RateConflicts(0))
	assert.Equal(t, models.RatingGood, RateConflicts(1))
	assert.Equal(t, models.RatingNeedsReview, RateConflicts(2))
	assert.Equal(t, models.RatingNeedsReview, RateConflicts(7))
}
