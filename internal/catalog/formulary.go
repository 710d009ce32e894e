package catalog

import (
	"sync"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

// Formulary holds the tables the composer builds formulas from. The typical
// percentages here are point estimates for formula math and are kept apart
// from the safety ranges in Catalog on purpose: the two serve different
// callers and are allowed to disagree.
type Formulary struct {
	templates   []models.RuleTemplate
	skeletons   map[models.BaseFormat]models.BaseSkeleton
	typical     map[models.Category]map[string]float64
	fallback    map[models.Category]float64
	phrases     map[string]string
	profileTags map[string]string
}

// TemplateSpec is the authoring form of a rule template
type TemplateSpec struct {
	Key         string
	Profile     string
	Description string
	SkinTypes   []string
	Percentages []models.FormulaEntry
}

// NewTemplate builds a template with an explicit signature set
func NewTemplate(spec TemplateSpec) models.RuleTemplate {
	t := models.RuleTemplate{
		Key:         spec.Key,
		Profile:     spec.Profile,
		Description: spec.Description,
		SkinTypes:   append([]string(nil), spec.SkinTypes...),
		Signature:   models.IngredientSet{},
		Percentages: make(map[string]float64, len(spec.Percentages)),
	}
	for _, p := range spec.Percentages {
		name := models.NormalizeName(p.Ingredient)
		t.Signature[name] = struct{}{}
		t.Percentages[name] = p.Percentage
	}
	return t
}

// NewFormulary builds a formulary around the given templates, in declaration
// order, with the standard skeletons and point-estimate tables.
func NewFormulary(templates []models.RuleTemplate) *Formulary {
	return &Formulary{
		templates:   templates,
		skeletons:   baseSkeletons(),
		typical:     typicalPercentages(),
		fallback:    fallbackPercentages(),
		phrases:     benefitPhrases(),
		profileTags: profileTags(),
	}
}

var defaultFormulary = sync.OnceValue(func() *Formulary {
	specs := ruleTemplates()
	templates := make([]models.RuleTemplate, 0, len(specs))
	for _, s := range specs {
		templates = append(templates, NewTemplate(s))
	}
	return NewFormulary(templates)
})

// DefaultFormulary returns the shared curated formulary
func DefaultFormulary() *Formulary {
	return defaultFormulary()
}

// Templates returns the rule templates in declaration order
func (f *Formulary) Templates() []models.RuleTemplate {
	return append([]models.RuleTemplate(nil), f.templates...)
}

// Skeleton returns the bulk composition for a format. Unknown formats get
// the mist skeleton.
func (f *Formulary) Skeleton(format models.BaseFormat) models.BaseSkeleton {
	sk, ok := f.skeletons[format]
	if !ok {
		sk = f.skeletons[models.FormatMist]
	}
	sk.Components = append([]models.FormulaEntry(nil), sk.Components...)
	return sk
}

// TypicalPercentage returns the point estimate used when composing a formula.
// The boolean reports whether the ingredient had a curated value.
func (f *Formulary) TypicalPercentage(category models.Category, name string) (float64, bool) {
	if v, ok := f.typical[category][name]; ok {
		return v, true
	}
	return f.fallback[category], false
}

// BenefitPhrase returns the short verb phrase used in synthesized descriptions
func (f *Formulary) BenefitPhrase(name string) (string, bool) {
	p, ok := f.phrases[name]
	return p, ok
}

// ProfileTag returns the profile tag of an active
func (f *Formulary) ProfileTag(name string) (string, bool) {
	t, ok := f.profileTags[name]
	return t, ok
}

func baseSkeletons() map[models.BaseFormat]models.BaseSkeleton {
	return map[models.BaseFormat]models.BaseSkeleton{
		models.FormatMist: {
			Format: models.FormatMist,
			Components: []models.FormulaEntry{
				{Ingredient: "water", Percentage: 92.0},
				{Ingredient: "glycerin", Percentage: 4.0},
				{Ingredient: "propanediol", Percentage: 3.0},
				{Ingredient: "preservative", Percentage: 1.0},
			},
		},
		models.FormatSerum: {
			Format: models.FormatSerum,
			Components: []models.FormulaEntry{
				{Ingredient: "water", Percentage: 83.0},
				{Ingredient: "glycerin", Percentage: 10.0},
				{Ingredient: "propanediol", Percentage: 5.0},
				{Ingredient: "xanthan-gum", Percentage: 1.0},
				{Ingredient: "preservative", Percentage: 1.0},
			},
		},
		models.FormatCream: {
			Format: models.FormatCream,
			Components: []models.FormulaEntry{
				{Ingredient: "water", Percentage: 70.0},
				{Ingredient: "caprylic-capric-triglyceride", Percentage: 10.0},
				{Ingredient: "emulsifying-wax", Percentage: 8.0},
				{Ingredient: "shea-butter", Percentage: 6.0},
				{Ingredient: "glycerin", Percentage: 5.0},
				{Ingredient: "preservative", Percentage: 1.0},
			},
		},
	}
}

func typicalPercentages() map[models.Category]map[string]float64 {
	return map[models.Category]map[string]float64{
		models.CategoryActive: {
			"caffeine":        0.3,
			"l-carnitine":     2.0,
			"retinol":         0.1,
			"niacinamide":     5.0,
			"vitamin-c":       10.0,
			"hyaluronic-acid": 1.0,
		},
		models.CategoryExtract: {
			"beta-vulgaris": 2.0,
			"avena-sativa":  1.5,
			"neem":          1.0,
			"bilberry":      1.5,
			"green-tea":     2.0,
			"chamomile":     1.5,
		},
		models.CategoryBooster: {
			"glycerin":        5.0,
			"sodium-pca":      3.0,
			"copper-peptides": 0.5,
			"ceramides":       3.0,
			"squalane":        2.0,
		},
	}
}

func fallbackPercentages() map[models.Category]float64 {
	return map[models.Category]float64{
		models.CategoryActive:  1.0,
		models.CategoryExtract: 1.5,
		models.CategoryBooster: 2.0,
	}
}

func benefitPhrases() map[string]string {
	return map[string]string{
		"caffeine":        "energize and depuff",
		"l-carnitine":     "support firmness and vitality",
		"retinol":         "smooth fine lines and renew texture",
		"niacinamide":     "refine pores and even tone",
		"vitamin-c":       "brighten and protect against dullness",
		"hyaluronic-acid": "deliver deep, lasting hydration",
		"salicylic-acid":  "keep pores clear",
		"beta-vulgaris":   "revitalize tired-looking skin",
		"avena-sativa":    "calm and soothe irritation",
		"neem":            "purify and clarify",
		"bilberry":        "boost radiance",
		"green-tea":       "defend with antioxidants",
		"chamomile":       "soothe and comfort",
		"glycerin":        "attract and hold moisture",
		"sodium-pca":      "boost natural hydration",
		"copper-peptides": "support skin renewal",
		"ceramides":       "strengthen the moisture barrier",
		"squalane":        "soften and nourish",
	}
}

func profileTags() map[string]string {
	return map[string]string{
		"caffeine":        "energizing",
		"l-carnitine":     "firming",
		"retinol":         "renewing",
		"niacinamide":     "balancing",
		"vitamin-c":       "brightening",
		"hyaluronic-acid": "hydrating",
		"salicylic-acid":  "clarifying",
	}
}

// ruleTemplates are matched in this order; larger signatures come first so a
// specific preset wins over a generic one.
func ruleTemplates() []TemplateSpec {
	return []TemplateSpec{
		{
			Key:         "caffeine_beetroot_oat",
			Profile:     "energizing + anti-fatigue + calming",
			Description: "An energizing blend that wakes up tired skin with caffeine, revitalizes with beetroot and calms with colloidal oat.",
			SkinTypes:   []string{"normal", "dry", "combination", "sensitive"},
			Percentages: []models.FormulaEntry{
				{Ingredient: "caffeine", Percentage: 0.5},
				{Ingredient: "beta-vulgaris", Percentage: 2.0},
				{Ingredient: "avena-sativa", Percentage: 1.5},
			},
		},
		{
			Key:         "vitamin_c_green_tea_bilberry",
			Profile:     "brightening + antioxidant + radiance",
			Description: "A brightening antioxidant trio: vitamin C evens tone while green tea and bilberry defend against environmental stress.",
			SkinTypes:   []string{"normal", "oily", "combination"},
			Percentages: []models.FormulaEntry{
				{Ingredient: "vitamin-c", Percentage: 10.0},
				{Ingredient: "green-tea", Percentage: 2.0},
				{Ingredient: "bilberry", Percentage: 1.0},
			},
		},
		{
			Key:         "hyaluronic_chamomile_oat",
			Profile:     "hydrating + soothing + calming",
			Description: "A comforting hydration formula pairing hyaluronic acid with chamomile and oat for reactive, thirsty skin.",
			SkinTypes:   []string{"dry", "sensitive"},
			Percentages: []models.FormulaEntry{
				{Ingredient: "hyaluronic-acid", Percentage: 1.0},
				{Ingredient: "chamomile", Percentage: 1.5},
				{Ingredient: "avena-sativa", Percentage: 2.0},
			},
		},
		{
			Key:         "retinol_niacinamide",
			Profile:     "renewing + balancing",
			Description: "A renewing night treatment where niacinamide buffers retinol to refine texture with less irritation.",
			SkinTypes:   []string{"normal", "oily", "combination"},
			Percentages: []models.FormulaEntry{
				{Ingredient: "retinol", Percentage: 0.2},
				{Ingredient: "niacinamide", Percentage: 4.0},
			},
		},
		{
			Key:         "niacinamide_neem",
			Profile:     "balancing + clarifying",
			Description: "A clarifying formula for congested skin: niacinamide refines pores while neem purifies.",
			SkinTypes:   []string{"oily", "combination"},
			Percentages: []models.FormulaEntry{
				{Ingredient: "niacinamide", Percentage: 5.0},
				{Ingredient: "neem", Percentage: 1.0},
			},
		},
		{
			Key:         "l_carnitine_caffeine",
			Profile:     "firming + energizing",
			Description: "A firming pick-me-up combining l-carnitine and caffeine for skin that looks tired and lacks bounce.",
			SkinTypes:   []string{"normal", "oily", "combination"},
			Percentages: []models.FormulaEntry{
				{Ingredient: "l-carnitine", Percentage: 2.0},
				{Ingredient: "caffeine", Percentage: 0.3},
			},
		},
		{
			Key:         "vitamin_c",
			Profile:     "brightening",
			Description: "A focused brightening formula built around a stable dose of vitamin C.",
			SkinTypes:   []string{"normal", "dry", "oily", "combination"},
			Percentages: []models.FormulaEntry{
				{Ingredient: "vitamin-c", Percentage: 12.0},
			},
		},
	}
}
