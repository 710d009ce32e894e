package services

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/catalog"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

const (
	maxDescriptionPhrases = 3
	defaultDescription    = "A carefully formulated blend designed to nourish and balance your skin."
	defaultProfile        = "balanced"
	unknownProfileTag     = "custom"
)

// Usage guidance appended by the composer
const (
	RecommendRetinolEvening = "Use retinol in the evening only and apply a broad-spectrum SPF 30+ every morning."
	RecommendSplitRoutine   = "Apply vitamin C in the morning and retinol at night so each active works at its best."
	RecommendVitaminCStore  = "Store in a cool, dark place and use within 3 months to keep vitamin C stable."
	RecommendCopperSpacing  = "Avoid layering copper peptides and vitamin C in the same routine."
	RecommendPatchTest      = "Patch test on the inner arm for 24 hours before first use."
	RecommendDefault        = "Apply to clean skin morning and evening."
)

// FormulationComposer builds a normalized formulation from a request
type FormulationComposer struct {
	formulary *catalog.Formulary
	matcher   *RuleMatcher
}

// NewFormulationComposer creates a composer
func NewFormulationComposer(f *catalog.Formulary, matcher *RuleMatcher) *FormulationComposer {
	return &FormulationComposer{formulary: f, matcher: matcher}
}

// Compose layers actives, extracts and boosters onto the base skeleton of the
// requested format, normalizes the result to 100% and derives the text
// fields. It never fails; unknown formats and ingredients fall back to
// defaults.
func (c *FormulationComposer) Compose(req models.FormulationRequest) models.Formulation {
	format, _ := models.ResolveBaseFormat(req.BaseFormat)
	actives := normalizeNames(req.KeyActives)
	extracts := normalizeNames(req.Extracts)
	boosters := normalizeNames(req.Boosters)
	skinTypes := normalizeNames(req.SkinTypes)

	tmpl, matched := c.matcher.Match(actives, extracts)

	var formula models.Formula
	for _, comp := range c.formulary.Skeleton(format).Components {
		formula = setShare(formula, comp.Ingredient, comp.Percentage)
	}
	for _, name := range actives {
		formula = setShare(formula, name, c.share(models.CategoryActive, name, tmpl, matched))
	}
	for _, name := range extracts {
		formula = setShare(formula, name, c.share(models.CategoryExtract, name, tmpl, matched))
	}
	for _, name := range boosters {
		// templates never cover boosters
		formula = setShare(formula, name, c.share(models.CategoryBooster, name, tmpl, false))
	}

	out := models.Formulation{
		Title:           c.title(actives, extracts, format, skinTypes),
		Formula:         Normalize(formula),
		SkinTypes:       skinTypes,
		BaseFormat:      string(format),
		Recommendations: c.recommendations(actives, extracts, boosters, skinTypes),
	}
	if matched {
		out.Description = tmpl.Description
		out.Profile = tmpl.Profile
		out.Template = tmpl.Key
	} else {
		out.Description = c.description(actives, extracts, boosters)
		out.Profile = c.profile(actives)
	}
	return out
}

func (c *FormulationComposer) share(category models.Category, name string, tmpl models.RuleTemplate, matched bool) float64 {
	if matched {
		if pct, ok := tmpl.Percentages[name]; ok {
			return pct
		}
	}
	pct, _ := c.formulary.TypicalPercentage(category, name)
	return pct
}

// setShare assigns a share, overwriting in place if the ingredient is
// already present so composition order is preserved.
func setShare(f models.Formula, name string, pct float64) models.Formula {
	for i := range f {
		if f[i].Ingredient == name {
			f[i].Percentage = pct
			return f
		}
	}
	return append(f, models.FormulaEntry{Ingredient: name, Percentage: pct})
}

// Normalize scales every share so the formula sums to 100, rounded to two
// decimals. Rounding drift is pushed entirely onto the single largest entry
// (the first one on ties). It panics on an empty or zero-sum formula, which
// cannot happen for a composed formula because every skeleton holds water.
func Normalize(f models.Formula) models.Formula {
	total := f.Total()
	if len(f) == 0 || total <= 0 {
		panic("formulation: cannot normalize an empty composition")
	}

	out := make(models.Formula, len(f))
	for i, e := range f {
		out[i] = models.FormulaEntry{Ingredient: e.Ingredient, Percentage: round2(e.Percentage / total * 100)}
	}

	if residual := 100 - out.Total(); math.Abs(residual) > 1e-9 {
		largest := 0
		for i := range out {
			if out[i].Percentage > out[largest].Percentage {
				largest = i
			}
		}
		out[largest].Percentage = round2(out[largest].Percentage + residual)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (c *FormulationComposer) title(actives, extracts []string, format models.BaseFormat, skinTypes []string) string {
	caser := cases.Title(language.English)

	featured := actives
	if len(featured) == 0 {
		featured = extracts
	}
	names := make([]string, 0, len(featured))
	for _, n := range featured {
		names = append(names, caser.String(strings.ReplaceAll(n, "-", " ")))
	}

	skins := make([]string, 0, len(skinTypes))
	for _, s := range skinTypes {
		skins = append(skins, caser.String(strings.ReplaceAll(s, "-", " ")))
	}
	skinPart := "All"
	if len(skins) > 0 {
		skinPart = strings.Join(skins, ", ")
	}

	var b strings.Builder
	b.WriteString("Your ")
	if len(names) > 0 {
		b.WriteString(strings.Join(names, " + "))
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "%s – %s Skin Formula", caser.String(string(format)), skinPart)
	return b.String()
}

func (c *FormulationComposer) description(lists ...[]string) string {
	var phrases []string
	for _, list := range lists {
		for _, n := range list {
			if len(phrases) == maxDescriptionPhrases {
				break
			}
			if p, ok := c.formulary.BenefitPhrase(n); ok {
				phrases = append(phrases, p)
			}
		}
	}
	if len(phrases) == 0 {
		return defaultDescription
	}
	return fmt.Sprintf("A carefully formulated blend designed to %s.", strings.Join(phrases, ", "))
}

func (c *FormulationComposer) profile(actives []string) string {
	if len(actives) == 0 {
		return defaultProfile
	}
	tags := make([]string, 0, len(actives))
	for _, n := range actives {
		tag, ok := c.formulary.ProfileTag(n)
		if !ok {
			tag = unknownProfileTag
		}
		tags = append(tags, tag)
	}
	return strings.Join(tags, " + ")
}

func (c *FormulationComposer) recommendations(actives, extracts, boosters, skinTypes []string) []string {
	selected := models.NewIngredientSet(append(append(append([]string(nil), actives...), extracts...), boosters...)...)
	var recs []string
	if selected.Has("retinol") {
		recs = append(recs, RecommendRetinolEvening)
		if selected.Has("vitamin-c") {
			recs = append(recs, RecommendSplitRoutine)
		}
	}
	if selected.Has("vitamin-c") {
		recs = append(recs, RecommendVitaminCStore)
		if selected.Has("copper-peptides") {
			recs = append(recs, RecommendCopperSpacing)
		}
	}
	if hasTag(skinTypes, "sensitive") {
		recs = append(recs, RecommendPatchTest)
	}
	if len(recs) == 0 {
		recs = append(recs, RecommendDefault)
	}
	return recs
}

// normalizeNames canonicalises names, dropping blanks and repeats
func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		n := models.NormalizeName(raw)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
