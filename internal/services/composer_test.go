package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/catalog"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

func newTestComposer() *FormulationComposer {
	f := catalog.DefaultFormulary()
	return NewFormulationComposer(f, NewRuleMatcher(f))
}

func formulaKeys(f models.Formula) []string {
	keys := make([]string, 0, len(f))
	for _, e := range f {
		keys = append(keys, e.Ingredient)
	}
	return keys
}

func TestCompose_TemplateMatch(t *testing.T) {
	out := newTestComposer().Compose(models.FormulationRequest{
		SkinTypes:  []string{"normal", "sensitive"},
		BaseFormat: "mist",
		KeyActives: []string{"caffeine"},
		Extracts:   []string{"beta-vulgaris", "avena-sativa"},
	})

	assert.Equal(t, "caffeine_beetroot_oat", out.Template)
	assert.Equal(t, "energizing + anti-fatigue + calming", out.Profile)
	assert.Equal(t, "Your Caffeine Mist – Normal, Sensitive Skin Formula", out.Title)
	assert.Equal(t, []string{"water", "glycerin", "propanediol", "preservative", "caffeine", "beta-vulgaris", "avena-sativa"}, formulaKeys(out.Formula))
	assert.InDelta(t, 100.0, out.Formula.Total(), 0.01)

	// raw shares 92/4/3/1 + 0.5/2.0/1.5 over a total of 104
	water, _ := out.Formula.Get("water")
	assert.InDelta(t, 88.47, water, 1e-9)
	caffeine, _ := out.Formula.Get("caffeine")
	assert.InDelta(t, 0.48, caffeine, 1e-9)
}

func TestCompose_TemplateShareOnlyForSignature(t *testing.T) {
	c := newTestComposer()
	tmpl, ok := c.matcher.Match([]string{"caffeine"}, []string{"beta-vulgaris", "avena-sativa", "green-tea"})
	require.True(t, ok)

	assert.Equal(t, 0.5, c.share(models.CategoryActive, "caffeine", tmpl, true))
	assert.Equal(t, 0.3, c.share(models.CategoryActive, "caffeine", tmpl, false))
	assert.Equal(t, 2.0, c.share(models.CategoryExtract, "green-tea", tmpl, true))
	assert.Equal(t, 1.0, c.share(models.CategoryActive, "unknown-ingredient-xyz", tmpl, true))
}

func TestCompose_Fallback(t *testing.T) {
	out := newTestComposer().Compose(models.FormulationRequest{
		SkinTypes:  []string{"normal"},
		BaseFormat: "mist",
		KeyActives: []string{"unknown-ingredient-xyz"},
	})

	assert.Empty(t, out.Template)
	assert.Equal(t, "custom", out.Profile)
	// raw 1.0 over a total of 101
	pct, ok := out.Formula.Get("unknown-ingredient-xyz")
	require.True(t, ok)
	assert.InDelta(t, 0.99, pct, 1e-9)
	assert.InDelta(t, 100.0, out.Formula.Total(), 0.01)
}

func TestCompose_UnknownFormatIsMist(t *testing.T) {
	out := newTestComposer().Compose(models.FormulationRequest{
		SkinTypes:  []string{"dry"},
		BaseFormat: "lotion",
	})
	assert.Equal(t, "mist", out.BaseFormat)
	assert.Equal(t, []string{"water", "glycerin", "propanediol", "preservative"}, formulaKeys(out.Formula))
	assert.Equal(t, "balanced", out.Profile)
	assert.Equal(t, "Your Mist – Dry Skin Formula", out.Title)
}

func TestCompose_BoosterOverwritesSkeletonInPlace(t *testing.T) {
	out := newTestComposer().Compose(models.FormulationRequest{
		SkinTypes:  []string{"normal"},
		BaseFormat: "mist",
		Boosters:   []string{"glycerin"},
	})

	assert.Equal(t, []string{"water", "glycerin", "propanediol", "preservative"}, formulaKeys(out.Formula))
	// glycerin raw 5 over a total of 101
	glycerin, _ := out.Formula.Get("glycerin")
	assert.InDelta(t, 4.95, glycerin, 1e-9)
}

func TestCompose_SynthesizedText(t *testing.T) {
	out := newTestComposer().Compose(models.FormulationRequest{
		SkinTypes:  []string{"oily"},
		BaseFormat: "serum",
		KeyActives: []string{"niacinamide"},
		Extracts:   []string{"green-tea"},
		Boosters:   []string{"sodium-pca", "squalane"},
	})

	assert.Empty(t, out.Template)
	assert.Equal(t, "balancing", out.Profile)
	assert.Equal(t, "A carefully formulated blend designed to refine pores and even tone, defend with antioxidants, boost natural hydration.", out.Description)
	assert.Equal(t, []string{RecommendDefault}, out.Recommendations)
	assert.Equal(t, "Your Niacinamide Serum – Oily Skin Formula", out.Title)
}

func TestCompose_Recommendations(t *testing.T) {
	out := newTestComposer().Compose(models.FormulationRequest{
		SkinTypes:  []string{"sensitive"},
		BaseFormat: "cream",
		KeyActives: []string{"retinol", "vitamin-c"},
		Boosters:   []string{"copper-peptides"},
	})

	assert.Equal(t, []string{
		RecommendRetinolEvening,
		RecommendSplitRoutine,
		RecommendVitaminCStore,
		RecommendCopperSpacing,
		RecommendPatchTest,
	}, out.Recommendations)
	assert.Equal(t, "vitamin_c", out.Template)
}

func TestCompose_TitleFallsBackToExtracts(t *testing.T) {
	out := newTestComposer().Compose(models.FormulationRequest{
		BaseFormat: "serum",
		Extracts:   []string{"green-tea"},
	})
	assert.Equal(t, "Your Green Tea Serum – All Skin Formula", out.Title)
}

func TestCompose_NormalizesToHundred(t *testing.T) {
	c := newTestComposer()
	cat := catalog.Default()
	names := cat.Names()

	for _, format := range []string{"mist", "serum", "cream", "gel"} {
		for n := 0; n <= 10; n++ {
			req := models.FormulationRequest{SkinTypes: []string{"normal"}, BaseFormat: format}
			for _, name := range names[:n] {
				ing, _ := cat.Lookup(name)
				switch ing.Category {
				case models.CategoryActive:
					req.KeyActives = append(req.KeyActives, name)
				case models.CategoryExtract:
					req.Extracts = append(req.Extracts, name)
				default:
					req.Boosters = append(req.Boosters, name)
				}
			}

			out := c.Compose(req)
			label := fmt.Sprintf("%s/%d", format, n)
			assert.InDelta(t, 100.0, out.Formula.Total(), 0.01, label)
			for _, e := range out.Formula {
				assert.GreaterOrEqual(t, e.Percentage, 0.0, label)
				assert.InDelta(t, round2(e.Percentage), e.Percentage, 1e-9, label)
			}
		}
	}
}

func TestCompose_Deterministic(t *testing.T) {
	c := newTestComposer()
	req := models.FormulationRequest{
		SkinTypes:  []string{"dry", "sensitive"},
		BaseFormat: "cream",
		KeyActives: []string{"hyaluronic-acid", "niacinamide"},
		Extracts:   []string{"chamomile", "avena-sativa"},
		Boosters:   []string{"ceramides"},
	}

	first, err := json.Marshal(c.Compose(req))
	require.NoError(t, err)
	second, err := json.Marshal(c.Compose(req))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestCompose_DedupesNames(t *testing.T) {
	out := newTestComposer().Compose(models.FormulationRequest{
		SkinTypes:  []string{"normal"},
		BaseFormat: "serum",
		KeyActives: []string{"Niacinamide", "niacinamide", " "},
	})
	assert.Equal(t, []string{"water", "glycerin", "propanediol", "xanthan-gum", "preservative", "niacinamide"}, formulaKeys(out.Formula))
	assert.Equal(t, "balancing", out.Profile)
}

func TestNormalize_ResidualGoesToFirstLargest(t *testing.T) {
	out := Normalize(models.Formula{
		{Ingredient: "a", Percentage: 1},
		{Ingredient: "b", Percentage: 1},
		{Ingredient: "c", Percentage: 1},
	})
	assert.InDelta(t, 33.34, out[0].Percentage, 1e-9)
	assert.InDelta(t, 33.33, out[1].Percentage, 1e-9)
	assert.InDelta(t, 33.33, out[2].Percentage, 1e-9)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := models.Formula{{Ingredient: "a", Percentage: 1}, {Ingredient: "b", Percentage: 3}}
	out := Normalize(in)
	assert.Equal(t, 1.0, in[0].Percentage)
	assert.InDelta(t, 25.0, out[0].Percentage, 1e-9)
	assert.InDelta(t, 75.0, out[1].Percentage, 1e-9)
}

func TestNormalize_PanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { Normalize(nil) })
	assert.Panics(t, func() { Normalize(models.Formula{{Ingredient: "a", Percentage: 0}}) })
}
