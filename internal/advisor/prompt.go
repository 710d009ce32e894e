// Package advisor asks a language model for supplementary narrative about a
// composed formulation. The engine's numbers stay the source of truth; the
// model only adds prose.
package advisor

import (
	"fmt"
	"strings"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

// BuildPrompt renders the request and the engine's safe ranges into a prompt
func BuildPrompt(req models.FormulationRequest, result models.FormulationResult) string {
	var b strings.Builder

	b.WriteString("You are a cosmetic chemist writing friendly guidance for a custom skincare product.\n")
	b.WriteString("Do not change any percentage below; they are final. Explain the benefits of each ingredient ")
	b.WriteString("and how to use the product, in under 200 words.\n\n")

	f := result.Formulation
	fmt.Fprintf(&b, "Product: %s\n", f.Title)
	fmt.Fprintf(&b, "Format: %s\n", f.BaseFormat)
	fmt.Fprintf(&b, "Skin types: %s\n", strings.Join(f.SkinTypes, ", "))
	fmt.Fprintf(&b, "Profile: %s\n", f.Profile)

	writeList(&b, "Key actives", req.KeyActives)
	writeList(&b, "Extracts", req.Extracts)
	writeList(&b, "Boosters", req.Boosters)

	b.WriteString("\nFinal formula (% w/w):\n")
	for _, e := range f.Formula {
		fmt.Fprintf(&b, "- %s: %.2f\n", e.Ingredient, e.Percentage)
	}

	if len(result.Safety.Ranges) > 0 {
		b.WriteString("\nSafe ranges:\n")
		for _, r := range result.Safety.Ranges {
			fmt.Fprintf(&b, "- %s (%s): %.2f-%.2f%%, recommended %.2f%%\n",
				r.Ingredient, r.Category, r.Range.Min, r.Range.Max, r.Range.Recommended)
		}
	}

	if c := result.Compatibility; len(c.Conflicts) > 0 {
		b.WriteString("\nCompatibility notes:\n")
		for _, finding := range c.Conflicts {
			fmt.Fprintf(&b, "- %s\n", finding.Explanation)
		}
	}

	if len(result.Safety.Warnings) > 0 {
		b.WriteString("\nWarnings to mention:\n")
		for _, w := range result.Safety.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(items, ", "))
}
