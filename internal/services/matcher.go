package services

import (
	"github.com/phpdevgmicro/SkinScript-sub000/internal/catalog"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

// RuleMatcher looks up the first rule template covered by a selection
type RuleMatcher struct {
	templates []models.RuleTemplate
}

// NewRuleMatcher creates a matcher over the formulary's templates
func NewRuleMatcher(f *catalog.Formulary) *RuleMatcher {
	return &RuleMatcher{templates: f.Templates()}
}

// Match returns the first template, in declaration order, whose whole
// signature is present among keyActives and extracts. Extra ingredients in
// the selection do not disqualify a template.
func (m *RuleMatcher) Match(keyActives, extracts []string) (models.RuleTemplate, bool) {
	selected := models.NewIngredientSet(append(append([]string(nil), keyActives...), extracts...)...)
	for _, t := range m.templates {
		if t.Matches(selected) {
			return t, true
		}
	}
	return models.RuleTemplate{}, false
}
