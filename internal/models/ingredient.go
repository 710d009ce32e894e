package models

import (
	"encoding/json"
	"strings"
)

// Category classifies an ingredient by the role it plays in a formulation
type Category string

const (
	CategoryActive  Category = "active"
	CategoryExtract Category = "extract"
	CategoryBooster Category = "booster"
	CategoryBase    Category = "base"
)

// Compatibility sentinels used by the reference data. Either one means the
// ingredient pairs well with anything.
const (
	SentinelAllIngredients = "all-ingredients"
	SentinelAllActives     = "all-actives"
)

// CompatTarget is one entry of a compatibility list: either a named
// ingredient or a universal marker.
type CompatTarget struct {
	Universal bool
	Name      string
}

// Named returns a target matching exactly one ingredient
func Named(name string) CompatTarget {
	return CompatTarget{Name: NormalizeName(name)}
}

// ParseCompatTarget turns a raw table value into a target, recognising the
// universal sentinels.
func ParseCompatTarget(raw string) CompatTarget {
	name := NormalizeName(raw)
	if name == SentinelAllIngredients || name == SentinelAllActives {
		return CompatTarget{Universal: true, Name: name}
	}
	return CompatTarget{Name: name}
}

// Matches reports whether the target covers the given ingredient. Universal
// targets match everything.
func (t CompatTarget) Matches(name string) bool {
	return t.Universal || t.Name == name
}

// MatchesNamed ignores universal markers; incompatibility is only ever
// declared against a specific ingredient.
func (t CompatTarget) MatchesNamed(name string) bool {
	return !t.Universal && t.Name == name
}

func (t CompatTarget) String() string { return t.Name }

func (t CompatTarget) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Name)
}

func (t *CompatTarget) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = ParseCompatTarget(raw)
	return nil
}

// Ingredient is a curated reference entry. Values are fixed at startup.
type Ingredient struct {
	Name             string         `json:"name"`
	Category         Category       `json:"category"`
	SafeMinPct       float64        `json:"safe_min_pct"`
	SafeMaxPct       float64        `json:"safe_max_pct"`
	RecommendedPct   float64        `json:"recommended_pct"`
	Benefits         []string       `json:"benefits"`
	CompatibleWith   []CompatTarget `json:"compatible_with"`
	IncompatibleWith []CompatTarget `json:"incompatible_with"`
	SkinTypes        []string       `json:"skin_types"`
	PhMin            *float64       `json:"ph_min,omitempty"`
	PhMax            *float64       `json:"ph_max,omitempty"`
	Warnings         []string       `json:"warnings,omitempty"`
}

// CompatibleWithName reports whether the ingredient lists name (or a
// universal marker) as compatible.
func (i Ingredient) CompatibleWithName(name string) bool {
	for _, t := range i.CompatibleWith {
		if t.Matches(name) {
			return true
		}
	}
	return false
}

// IncompatibleWithName reports whether the ingredient lists name as incompatible
func (i Ingredient) IncompatibleWithName(name string) bool {
	for _, t := range i.IncompatibleWith {
		if t.MatchesNamed(name) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate shared reference data
func (i Ingredient) Clone() Ingredient {
	out := i
	out.Benefits = append([]string(nil), i.Benefits...)
	out.CompatibleWith = append([]CompatTarget(nil), i.CompatibleWith...)
	out.IncompatibleWith = append([]CompatTarget(nil), i.IncompatibleWith...)
	out.SkinTypes = append([]string(nil), i.SkinTypes...)
	out.Warnings = append([]string(nil), i.Warnings...)
	if i.PhMin != nil {
		v := *i.PhMin
		out.PhMin = &v
	}
	if i.PhMax != nil {
		v := *i.PhMax
		out.PhMax = &v
	}
	return out
}

// NormalizeName canonicalises an ingredient or tag name: trimmed, lowercase,
// inner whitespace collapsed to hyphens.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// ConcentrationRange is a safe usage band in percent (w/w)
type ConcentrationRange struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Recommended float64 `json:"recommended"`
}

// PhGuidance aggregates the pH windows of a set of ingredients. Degenerate is
// set when none of them carried pH data, in which case Min > Max.
type PhGuidance struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Optimal    float64 `json:"optimal"`
	Degenerate bool    `json:"degenerate"`
}
