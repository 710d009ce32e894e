package catalog

import "github.com/phpdevgmicro/SkinScript-sub000/internal/models"

var allSkinTypes = []string{"normal", "dry", "oily", "combination", "sensitive"}

func ph(v float64) *float64 { return &v }

func targets(names ...string) []models.CompatTarget {
	out := make([]models.CompatTarget, 0, len(names))
	for _, n := range names {
		out = append(out, models.ParseCompatTarget(n))
	}
	return out
}

// referenceIngredients is the curated safety dataset
func referenceIngredients() []models.Ingredient {
	return []models.Ingredient{
		// Actives
		{
			Name:           "caffeine",
			Category:       models.CategoryActive,
			SafeMinPct:     0.1,
			SafeMaxPct:     2.0,
			RecommendedPct: 0.5,
			Benefits:       []string{"Reduces puffiness", "Energizes tired-looking skin", "Improves microcirculation"},
			CompatibleWith: targets("beta-vulgaris", "avena-sativa", "green-tea", "niacinamide", "l-carnitine"),
			SkinTypes:      allSkinTypes,
			PhMin:          ph(5.0),
			PhMax:          ph(7.0),
		},
		{
			Name:           "l-carnitine",
			Category:       models.CategoryActive,
			SafeMinPct:     1.0,
			SafeMaxPct:     5.0,
			RecommendedPct: 2.0,
			Benefits:       []string{"Supports firmness", "Helps regulate sebum"},
			CompatibleWith: targets("caffeine", "green-tea"),
			SkinTypes:      []string{"normal", "oily", "combination"},
			PhMin:          ph(5.0),
			PhMax:          ph(7.0),
		},
		{
			Name:             "retinol",
			Category:         models.CategoryActive,
			SafeMinPct:       0.01,
			SafeMaxPct:       1.0,
			RecommendedPct:   0.3,
			Benefits:         []string{"Smooths fine lines", "Accelerates cell turnover", "Refines texture"},
			CompatibleWith:   targets("niacinamide", "hyaluronic-acid", "ceramides", "squalane"),
			IncompatibleWith: targets("vitamin-c", "salicylic-acid"),
			SkinTypes:        []string{"normal", "dry", "oily", "combination"},
			PhMin:            ph(5.5),
			PhMax:            ph(6.5),
			Warnings: []string{
				"Retinol increases sun sensitivity; use in the evening only",
				"Introduce gradually to limit irritation",
				"Not recommended during pregnancy",
			},
		},
		{
			Name:             "niacinamide",
			Category:         models.CategoryActive,
			SafeMinPct:       2.0,
			SafeMaxPct:       10.0,
			RecommendedPct:   5.0,
			Benefits:         []string{"Minimizes the look of pores", "Evens skin tone", "Strengthens the barrier"},
			CompatibleWith:   targets("retinol", "hyaluronic-acid", "ceramides", "sodium-pca"),
			IncompatibleWith: targets("vitamin-c"),
			SkinTypes:        allSkinTypes,
			PhMin:            ph(5.0),
			PhMax:            ph(7.0),
		},
		{
			Name:             "vitamin-c",
			Category:         models.CategoryActive,
			SafeMinPct:       5.0,
			SafeMaxPct:       20.0,
			RecommendedPct:   10.0,
			Benefits:         []string{"Brightens dull skin", "Antioxidant protection", "Supports collagen"},
			CompatibleWith:   targets("green-tea", "bilberry", "hyaluronic-acid"),
			IncompatibleWith: targets("retinol", "niacinamide", "copper-peptides"),
			SkinTypes:        []string{"normal", "dry", "oily", "combination"},
			PhMin:            ph(3.0),
			PhMax:            ph(3.5),
			Warnings:         []string{"Vitamin C oxidizes with light and air; store in an opaque, airtight container"},
		},
		{
			Name:           "hyaluronic-acid",
			Category:       models.CategoryActive,
			SafeMinPct:     0.1,
			SafeMaxPct:     2.0,
			RecommendedPct: 1.0,
			Benefits:       []string{"Deep hydration", "Plumps the look of fine lines"},
			CompatibleWith: targets(models.SentinelAllIngredients),
			SkinTypes:      allSkinTypes,
			PhMin:          ph(4.0),
			PhMax:          ph(7.0),
		},
		{
			Name:             "salicylic-acid",
			Category:         models.CategoryActive,
			SafeMinPct:       0.5,
			SafeMaxPct:       2.0,
			RecommendedPct:   1.0,
			Benefits:         []string{"Clears pores", "Reduces breakouts"},
			CompatibleWith:   targets("niacinamide", "neem", "green-tea"),
			IncompatibleWith: targets("retinol"),
			SkinTypes:        []string{"oily", "combination"},
			PhMin:            ph(3.0),
			PhMax:            ph(4.0),
			Warnings:         []string{"Can be drying; limit to once daily on sensitive areas"},
		},

		// Extracts
		{
			Name:           "beta-vulgaris",
			Category:       models.CategoryExtract,
			SafeMinPct:     0.5,
			SafeMaxPct:     3.0,
			RecommendedPct: 1.5,
			Benefits:       []string{"Revitalizes tired skin", "Rich in betalain antioxidants"},
			CompatibleWith: targets("caffeine", "avena-sativa"),
			SkinTypes:      allSkinTypes,
		},
		{
			Name:           "avena-sativa",
			Category:       models.CategoryExtract,
			SafeMinPct:     0.5,
			SafeMaxPct:     5.0,
			RecommendedPct: 1.5,
			Benefits:       []string{"Calms irritation", "Soothes dryness"},
			CompatibleWith: targets("caffeine", "beta-vulgaris", "chamomile"),
			SkinTypes:      []string{"normal", "dry", "sensitive"},
			PhMin:          ph(5.0),
			PhMax:          ph(7.5),
		},
		{
			Name:           "neem",
			Category:       models.CategoryExtract,
			SafeMinPct:     0.1,
			SafeMaxPct:     2.0,
			RecommendedPct: 1.0,
			Benefits:       []string{"Purifies", "Helps balance oily skin"},
			CompatibleWith: targets("green-tea", "salicylic-acid"),
			SkinTypes:      []string{"oily", "combination"},
			Warnings:       []string{"Neem has a strong natural scent"},
		},
		{
			Name:           "bilberry",
			Category:       models.CategoryExtract,
			SafeMinPct:     0.5,
			SafeMaxPct:     3.0,
			RecommendedPct: 1.5,
			Benefits:       []string{"Supports radiance", "Antioxidant rich"},
			CompatibleWith: targets("vitamin-c", "green-tea"),
			SkinTypes:      allSkinTypes,
		},
		{
			Name:           "green-tea",
			Category:       models.CategoryExtract,
			SafeMinPct:     0.5,
			SafeMaxPct:     5.0,
			RecommendedPct: 2.0,
			Benefits:       []string{"Antioxidant defense", "Calms redness"},
			CompatibleWith: targets("caffeine", "vitamin-c", "niacinamide"),
			SkinTypes:      allSkinTypes,
			PhMin:          ph(4.0),
			PhMax:          ph(6.0),
		},
		{
			Name:           "chamomile",
			Category:       models.CategoryExtract,
			SafeMinPct:     0.5,
			SafeMaxPct:     3.0,
			RecommendedPct: 1.5,
			Benefits:       []string{"Soothes", "Comforts reactive skin"},
			CompatibleWith: targets(models.SentinelAllIngredients),
			SkinTypes:      []string{"normal", "dry", "sensitive"},
		},

		// Boosters
		{
			Name:           "glycerin",
			Category:       models.CategoryBooster,
			SafeMinPct:     1.0,
			SafeMaxPct:     10.0,
			RecommendedPct: 5.0,
			Benefits:       []string{"Attracts moisture", "Softens"},
			CompatibleWith: targets(models.SentinelAllIngredients),
			SkinTypes:      allSkinTypes,
		},
		{
			Name:           "sodium-pca",
			Category:       models.CategoryBooster,
			SafeMinPct:     0.5,
			SafeMaxPct:     5.0,
			RecommendedPct: 3.0,
			Benefits:       []string{"Boosts natural moisturizing factor"},
			CompatibleWith: targets("niacinamide", "hyaluronic-acid"),
			SkinTypes:      allSkinTypes,
		},
		{
			Name:             "copper-peptides",
			Category:         models.CategoryBooster,
			SafeMinPct:       0.1,
			SafeMaxPct:       2.0,
			RecommendedPct:   0.5,
			Benefits:         []string{"Supports skin renewal", "Firms"},
			IncompatibleWith: targets("vitamin-c"),
			SkinTypes:        []string{"normal", "dry", "combination"},
			PhMin:            ph(5.0),
			PhMax:            ph(7.0),
		},
		{
			Name:           "ceramides",
			Category:       models.CategoryBooster,
			SafeMinPct:     0.5,
			SafeMaxPct:     5.0,
			RecommendedPct: 3.0,
			Benefits:       []string{"Restores the moisture barrier"},
			CompatibleWith: targets(models.SentinelAllActives),
			SkinTypes:      allSkinTypes,
		},
		{
			Name:           "squalane",
			Category:       models.CategoryBooster,
			SafeMinPct:     1.0,
			SafeMaxPct:     10.0,
			RecommendedPct: 2.0,
			Benefits:       []string{"Lightweight nourishment", "Softens"},
			CompatibleWith: targets(models.SentinelAllIngredients),
			SkinTypes:      allSkinTypes,
		},
	}
}
