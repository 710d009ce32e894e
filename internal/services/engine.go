package services

import (
	"github.com/phpdevgmicro/SkinScript-sub000/internal/catalog"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

// Engine wires the rule components together. It holds no mutable state and
// is safe to share between goroutines.
type Engine struct {
	Calculator *ConcentrationCalculator
	Analyzer   *CompatibilityAnalyzer
	Matcher    *RuleMatcher
	Composer   *FormulationComposer
}

// NewEngine builds an engine over the given reference tables
func NewEngine(c *catalog.Catalog, f *catalog.Formulary) *Engine {
	matcher := NewRuleMatcher(f)
	return &Engine{
		Calculator: NewConcentrationCalculator(c),
		Analyzer:   NewCompatibilityAnalyzer(c),
		Matcher:    matcher,
		Composer:   NewFormulationComposer(f, matcher),
	}
}

// NewDefaultEngine builds an engine over the curated tables
func NewDefaultEngine() *Engine {
	return NewEngine(catalog.Default(), catalog.DefaultFormulary())
}

// Evaluate composes the formulation and runs the compatibility and safety
// analyses for one request.
func (e *Engine) Evaluate(req models.FormulationRequest) models.FormulationResult {
	return models.FormulationResult{
		Formulation:   e.Composer.Compose(req),
		Compatibility: e.Analyzer.Analyze(req.Ingredients()),
		Safety:        e.Calculator.SafetyReport(req),
	}
}
