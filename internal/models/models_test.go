package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"Vitamin C":       "vitamin-c",
		"  retinol ":      "retinol",
		"hyaluronic-acid": "hyaluronic-acid",
		"Green   Tea":     "green-tea",
		"   ":             "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeName(in), in)
	}
}

func TestResolveBaseFormat(t *testing.T) {
	f, ok := ResolveBaseFormat("Serum")
	assert.True(t, ok)
	assert.Equal(t, FormatSerum, f)

	f, ok = ResolveBaseFormat("lotion")
	assert.False(t, ok)
	assert.Equal(t, FormatMist, f)

	f, _ = ResolveBaseFormat("")
	assert.Equal(t, FormatMist, f)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     FormulationRequest
		wantErr error
	}{
		{"ok", FormulationRequest{SkinTypes: []string{"dry"}, KeyActives: []string{"retinol"}}, nil},
		{"no skin types", FormulationRequest{KeyActives: []string{"retinol"}}, ErrNoSkinTypes},
		{"too many actives", FormulationRequest{SkinTypes: []string{"dry"}, KeyActives: []string{"a", "b", "c", "d"}}, ErrTooManyActives},
		{"blank ingredient", FormulationRequest{SkinTypes: []string{"dry"}, Boosters: []string{" "}}, ErrInvalidIngredientName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(3)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// zero disables the cap
	req := FormulationRequest{SkinTypes: []string{"dry"}, KeyActives: []string{"a", "b", "c", "d"}}
	assert.NoError(t, req.Validate(0))
}

func TestFormulaJSONKeepsOrder(t *testing.T) {
	f := Formula{
		{Ingredient: "water", Percentage: 88.47},
		{Ingredient: "glycerin", Percentage: 3.85},
		{Ingredient: "caffeine", Percentage: 0.48},
	}

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `{"water":88.47,"glycerin":3.85,"caffeine":0.48}`, string(data))

	var back Formula
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, f, back)

	require.NoError(t, json.Unmarshal([]byte(`null`), &back))
	assert.Nil(t, back)
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &back))
}

func TestFormulaHelpers(t *testing.T) {
	f := Formula{{Ingredient: "water", Percentage: 90}, {Ingredient: "glycerin", Percentage: 10}}

	v, ok := f.Get("glycerin")
	assert.True(t, ok)
	assert.Equal(t, 10.0, v)
	_, ok = f.Get("retinol")
	assert.False(t, ok)
	assert.Equal(t, 100.0, f.Total())
	assert.Equal(t, map[string]float64{"water": 90, "glycerin": 10}, f.Map())
}

func TestCompatTarget(t *testing.T) {
	universal := ParseCompatTarget("All Ingredients")
	assert.True(t, universal.Universal)
	assert.True(t, universal.Matches("anything"))
	assert.False(t, universal.MatchesNamed("anything"))

	named := ParseCompatTarget("Vitamin C")
	assert.False(t, named.Universal)
	assert.True(t, named.Matches("vitamin-c"))
	assert.True(t, named.MatchesNamed("vitamin-c"))
	assert.False(t, named.Matches("retinol"))

	data, err := json.Marshal([]CompatTarget{universal, named})
	require.NoError(t, err)
	assert.Equal(t, `["all-ingredients","vitamin-c"]`, string(data))

	var back []CompatTarget
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []CompatTarget{universal, named}, back)
}

func TestIngredientClone(t *testing.T) {
	ph := 5.0
	orig := Ingredient{Name: "x", Benefits: []string{"a"}, PhMin: &ph}
	c := orig.Clone()
	c.Benefits[0] = "b"
	*c.PhMin = 6.0

	assert.Equal(t, "a", orig.Benefits[0])
	assert.Equal(t, 5.0, *orig.PhMin)
}

func TestIngredientSet(t *testing.T) {
	s := NewIngredientSet("Retinol", "niacinamide")
	assert.True(t, s.Has("retinol"))
	assert.True(t, s.ContainsAll(NewIngredientSet("niacinamide")))
	assert.False(t, s.ContainsAll(NewIngredientSet("niacinamide", "neem")))
	assert.True(t, s.ContainsAll(NewIngredientSet()))
}
