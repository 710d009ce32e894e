package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/catalog"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

func TestMatch(t *testing.T) {
	matcher := NewRuleMatcher(catalog.DefaultFormulary())

	tests := []struct {
		name       string
		keyActives []string
		extracts   []string
		wantKey    string
	}{
		{"exact signature", []string{"caffeine"}, []string{"beta-vulgaris", "avena-sativa"}, "caffeine_beetroot_oat"},
		{"superset still matches", []string{"caffeine"}, []string{"beta-vulgaris", "avena-sativa", "green-tea"}, "caffeine_beetroot_oat"},
		{"earlier template wins", []string{"caffeine", "l-carnitine"}, []string{"beta-vulgaris", "avena-sativa"}, "caffeine_beetroot_oat"},
		{"two actives", []string{"l-carnitine", "caffeine"}, nil, "l_carnitine_caffeine"},
		{"single active template", []string{"vitamin-c", "niacinamide"}, nil, "vitamin_c"},
		{"signature split across lists", []string{"niacinamide"}, []string{"neem"}, "niacinamide_neem"},
		{"no match", []string{"retinol"}, nil, ""},
		{"empty", nil, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, ok := matcher.Match(tt.keyActives, tt.extracts)
			assert.Equal(t, tt.wantKey != "", ok)
			assert.Equal(t, tt.wantKey, tmpl.Key)
		})
	}
}

func TestMatch_DeclarationOrder(t *testing.T) {
	first := catalog.NewTemplate(catalog.TemplateSpec{
		Key:         "first",
		Percentages: []models.FormulaEntry{{Ingredient: "a", Percentage: 1}},
	})
	second := catalog.NewTemplate(catalog.TemplateSpec{
		Key:         "second",
		Percentages: []models.FormulaEntry{{Ingredient: "a", Percentage: 2}, {Ingredient: "b", Percentage: 2}},
	})
	matcher := NewRuleMatcher(catalog.NewFormulary([]models.RuleTemplate{first, second}))

	tmpl, ok := matcher.Match([]string{"a", "b"}, nil)
	assert.True(t, ok)
	assert.Equal(t, "first", tmpl.Key)
}
