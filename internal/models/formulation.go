package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// BaseFormat is the product vehicle
type BaseFormat string

const (
	FormatMist  BaseFormat = "mist"
	FormatSerum BaseFormat = "serum"
	FormatCream BaseFormat = "cream"
)

// ResolveBaseFormat maps a raw format to a known one. Anything unrecognised
// becomes mist, reported through the second return value.
func ResolveBaseFormat(raw string) (BaseFormat, bool) {
	switch f := BaseFormat(NormalizeName(raw)); f {
	case FormatMist, FormatSerum, FormatCream:
		return f, true
	default:
		return FormatMist, false
	}
}

// FormulationRequest is the intake form payload
type FormulationRequest struct {
	SkinTypes  []string `json:"skin_types"`
	BaseFormat string   `json:"base_format"`
	KeyActives []string `json:"key_actives"`
	Extracts   []string `json:"extracts"`
	Boosters   []string `json:"boosters"`
}

// Ingredients returns actives, extracts and boosters in that order
func (r FormulationRequest) Ingredients() []string {
	out := make([]string, 0, len(r.KeyActives)+len(r.Extracts)+len(r.Boosters))
	out = append(out, r.KeyActives...)
	out = append(out, r.Extracts...)
	out = append(out, r.Boosters...)
	return out
}

// HasSkinType reports whether tag is among the requested skin types
func (r FormulationRequest) HasSkinType(tag string) bool {
	for _, s := range r.SkinTypes {
		if NormalizeName(s) == tag {
			return true
		}
	}
	return false
}

// Validate enforces the boundary contract of the intake form. The engine
// itself accepts any request; this is for callers such as the HTTP layer.
func (r FormulationRequest) Validate(maxActives int) error {
	if len(r.SkinTypes) == 0 {
		return ErrNoSkinTypes
	}
	if maxActives > 0 && len(r.KeyActives) > maxActives {
		return fmt.Errorf("%w: got %d, limit %d", ErrTooManyActives, len(r.KeyActives), maxActives)
	}
	for _, name := range r.Ingredients() {
		if NormalizeName(name) == "" {
			return fmt.Errorf("%w: %q", ErrInvalidIngredientName, name)
		}
	}
	return nil
}

// FormulaEntry is one ingredient share of a formula
type FormulaEntry struct {
	Ingredient string  `json:"ingredient"`
	Percentage float64 `json:"percentage"`
}

// Formula keeps ingredient shares in composition order. It encodes as a JSON
// object whose keys follow that order.
type Formula []FormulaEntry

// Get returns the share of an ingredient
func (f Formula) Get(name string) (float64, bool) {
	for _, e := range f {
		if e.Ingredient == name {
			return e.Percentage, true
		}
	}
	return 0, false
}

// Total sums every share
func (f Formula) Total() float64 {
	var sum float64
	for _, e := range f {
		sum += e.Percentage
	}
	return sum
}

// Map returns the formula as a plain map
func (f Formula) Map() map[string]float64 {
	out := make(map[string]float64, len(f))
	for _, e := range f {
		out[e.Ingredient] = e.Percentage
	}
	return out
}

func (f Formula) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Ingredient)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Percentage)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *Formula) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*f = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("formula: expected object, got %v", tok)
	}
	var out Formula
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("formula: expected key, got %v", keyTok)
		}
		var pct float64
		if err := dec.Decode(&pct); err != nil {
			return fmt.Errorf("formula: value for %q: %w", key, err)
		}
		out = append(out, FormulaEntry{Ingredient: key, Percentage: pct})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = out
	return nil
}

// Formulation is the composed output. It is built once per request and never
// mutated afterwards.
type Formulation struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Profile         string   `json:"profile"`
	Formula         Formula  `json:"formula"`
	SkinTypes       []string `json:"skin_types"`
	BaseFormat      string   `json:"base_format"`
	Recommendations []string `json:"recommendations"`
	Template        string   `json:"template,omitempty"`
}

// BaseSkeleton is the bulk, non-active part of a format. Its components sum to 100.
type BaseSkeleton struct {
	Format     BaseFormat
	Components []FormulaEntry
}

// IngredientSet is a set of normalised ingredient names
type IngredientSet map[string]struct{}

// NewIngredientSet builds a set from names, normalising each one
func NewIngredientSet(names ...string) IngredientSet {
	s := make(IngredientSet, len(names))
	for _, n := range names {
		s[NormalizeName(n)] = struct{}{}
	}
	return s
}

// Has reports membership
func (s IngredientSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// ContainsAll reports whether every member of other is in s
func (s IngredientSet) ContainsAll(other IngredientSet) bool {
	for n := range other {
		if !s.Has(n) {
			return false
		}
	}
	return true
}

// RuleTemplate is a hand-authored preset for a specific ingredient combination
type RuleTemplate struct {
	Key         string
	Profile     string
	Description string
	SkinTypes   []string
	Signature   IngredientSet
	Percentages map[string]float64
}

// Matches reports whether the template signature is fully present in selected
func (t RuleTemplate) Matches(selected IngredientSet) bool {
	return len(t.Signature) > 0 && selected.ContainsAll(t.Signature)
}

// FindingKind distinguishes conflicts from synergies
type FindingKind string

const (
	FindingConflict FindingKind = "conflict"
	FindingSynergy  FindingKind = "synergy"
)

// CompatibilityFinding describes one ingredient pair
type CompatibilityFinding struct {
	Pair        [2]string   `json:"pair"`
	Kind        FindingKind `json:"kind"`
	Explanation string      `json:"explanation"`
}

// CompatibilityRating is a coarse summary of the conflict count
type CompatibilityRating string

const (
	RatingExcellent   CompatibilityRating = "excellent"
	RatingGood        CompatibilityRating = "good"
	RatingNeedsReview CompatibilityRating = "needs-review"
)

// CompatibilityReport is the analyzer output
type CompatibilityReport struct {
	Conflicts []CompatibilityFinding `json:"conflicts"`
	Synergies []CompatibilityFinding `json:"synergies"`
	Rating    CompatibilityRating    `json:"rating"`
}

// IngredientRange is the safe band computed for one requested ingredient
type IngredientRange struct {
	Ingredient string             `json:"ingredient"`
	Category   Category           `json:"category"`
	Curated    bool               `json:"curated"`
	Range      ConcentrationRange `json:"range"`
}

// SafetyReport collects ranges, pH guidance and catalog warnings for a request
type SafetyReport struct {
	Ranges   []IngredientRange `json:"ranges"`
	Ph       PhGuidance        `json:"ph"`
	Warnings []string          `json:"warnings"`
}

// FormulationResult bundles everything the engine derives from one request
type FormulationResult struct {
	Formulation   Formulation         `json:"formulation"`
	Compatibility CompatibilityReport `json:"compatibility"`
	Safety        SafetyReport        `json:"safety"`
}

// StoredFormulation is what the persistence collaborator keeps
type StoredFormulation struct {
	ID           string             `json:"id"`
	Request      FormulationRequest `json:"request"`
	Result       FormulationResult  `json:"result"`
	AISuggestion string             `json:"ai_suggestion,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}
