package database

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/catalog"
)

// CatalogImporter mirrors the reference tables into the graph so stored
// formulations can be queried alongside ingredient relationships
type CatalogImporter struct {
	client *Neo4jClient
	log    *zap.Logger
}

// NewCatalogImporter creates a new catalog importer
func NewCatalogImporter(client *Neo4jClient) *CatalogImporter {
	return &CatalogImporter{client: client, log: client.log}
}

// ImportCatalog runs every import step in dependency order. Steps use MERGE,
// so running it on every start is safe.
func (i *CatalogImporter) ImportCatalog(ctx context.Context, cat *catalog.Catalog, f *catalog.Formulary) error {
	i.log.Info("starting catalog import", zap.String("version", catalog.Version))

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"constraints", i.ensureConstraints},
		{"ingredients", func(ctx context.Context) error { return i.importIngredients(ctx, cat) }},
		{"compatibility", func(ctx context.Context) error { return i.importCompatibility(ctx, cat) }},
		{"templates", func(ctx context.Context) error { return i.importTemplates(ctx, f) }},
	}

	for _, step := range steps {
		i.log.Debug("importing", zap.String("step", step.name))
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("failed to import %s: %w", step.name, err)
		}
	}

	i.log.Info("catalog import completed", zap.Int("ingredients", cat.Len()))
	return nil
}

func (i *CatalogImporter) ensureConstraints(ctx context.Context) error {
	queries := []string{
		`CREATE CONSTRAINT ingredient_name IF NOT EXISTS FOR (i:Ingredient) REQUIRE i.name IS UNIQUE`,
		`CREATE CONSTRAINT formulation_id IF NOT EXISTS FOR (f:Formulation) REQUIRE f.id IS UNIQUE`,
		`CREATE CONSTRAINT template_key IF NOT EXISTS FOR (t:RuleTemplate) REQUIRE t.key IS UNIQUE`,
	}
	for _, q := range queries {
		if err := i.client.ExecuteWrite(ctx, q, nil); err != nil {
			return err
		}
	}
	return nil
}

func (i *CatalogImporter) importIngredients(ctx context.Context, cat *catalog.Catalog) error {
	query := `
		UNWIND $rows AS row
		MERGE (i:Ingredient {name: row.name})
		SET i.category = row.category,
			i.safe_min_pct = row.safe_min_pct,
			i.safe_max_pct = row.safe_max_pct,
			i.recommended_pct = row.recommended_pct,
			i.benefits = row.benefits,
			i.skin_types = row.skin_types,
			i.warnings = row.warnings,
			i.ph_min = row.ph_min,
			i.ph_max = row.ph_max,
			i.universally_compatible = row.universal,
			i.catalog_version = $version
	`
	return i.client.ExecuteWrite(ctx, query, map[string]any{
		"rows":    ingredientRows(cat),
		"version": catalog.Version,
	})
}

func (i *CatalogImporter) importCompatibility(ctx context.Context, cat *catalog.Catalog) error {
	compatible, incompatible := compatibilityEdges(cat)

	compatibleQuery := `
		UNWIND $edges AS edge
		MATCH (a:Ingredient {name: edge.from})
		MERGE (b:Ingredient {name: edge.to})
		MERGE (a)-[:COMPATIBLE_WITH]->(b)
	`
	if err := i.client.ExecuteWrite(ctx, compatibleQuery, map[string]any{"edges": compatible}); err != nil {
		return fmt.Errorf("failed to build COMPATIBLE_WITH relationships: %w", err)
	}

	incompatibleQuery := `
		UNWIND $edges AS edge
		MATCH (a:Ingredient {name: edge.from})
		MERGE (b:Ingredient {name: edge.to})
		MERGE (a)-[:INCOMPATIBLE_WITH]->(b)
	`
	if err := i.client.ExecuteWrite(ctx, incompatibleQuery, map[string]any{"edges": incompatible}); err != nil {
		return fmt.Errorf("failed to build INCOMPATIBLE_WITH relationships: %w", err)
	}
	return nil
}

func (i *CatalogImporter) importTemplates(ctx context.Context, f *catalog.Formulary) error {
	query := `
		UNWIND $templates AS t
		MERGE (r:RuleTemplate {key: t.key})
		SET r.profile = t.profile,
			r.description = t.description,
			r.skin_types = t.skin_types,
			r.position = t.position
		WITH r, t
		UNWIND t.ingredients AS ing
		MERGE (i:Ingredient {name: ing.name})
		MERGE (r)-[u:USES]->(i)
		SET u.percentage = ing.percentage
	`
	return i.client.ExecuteWrite(ctx, query, map[string]any{"templates": templateRows(f)})
}

// GetImportStatus returns node and relationship counts for the catalog graph
func (i *CatalogImporter) GetImportStatus(ctx context.Context) (map[string]int, error) {
	query := `
		MATCH (i:Ingredient) WITH count(i) AS ingredients
		OPTIONAL MATCH ()-[c:COMPATIBLE_WITH]->() WITH ingredients, count(c) AS compatible_with
		OPTIONAL MATCH ()-[x:INCOMPATIBLE_WITH]->() WITH ingredients, compatible_with, count(x) AS incompatible_with
		OPTIONAL MATCH (r:RuleTemplate) WITH ingredients, compatible_with, incompatible_with, count(r) AS templates
		OPTIONAL MATCH (f:Formulation)
		RETURN ingredients, compatible_with, incompatible_with, templates, count(f) AS formulations
	`

	results, err := i.client.ExecuteRead(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	keys := []string{"ingredients", "compatible_with", "incompatible_with", "templates", "formulations"}
	status := make(map[string]int, len(keys))
	for _, k := range keys {
		status[k] = 0
		if len(results) > 0 {
			if v, ok := results[0][k].(int64); ok {
				status[k] = int(v)
			}
		}
	}
	return status, nil
}

func ingredientRows(cat *catalog.Catalog) []map[string]any {
	rows := make([]map[string]any, 0, cat.Len())
	for _, name := range cat.Names() {
		ing, _ := cat.Lookup(name)
		universal := false
		for _, t := range ing.CompatibleWith {
			if t.Universal {
				universal = true
			}
		}
		row := map[string]any{
			"name":            ing.Name,
			"category":        string(ing.Category),
			"safe_min_pct":    ing.SafeMinPct,
			"safe_max_pct":    ing.SafeMaxPct,
			"recommended_pct": ing.RecommendedPct,
			"benefits":        nonNil(ing.Benefits),
			"skin_types":      nonNil(ing.SkinTypes),
			"warnings":        nonNil(ing.Warnings),
			"universal":       universal,
			"ph_min":          nil,
			"ph_max":          nil,
		}
		if ing.PhMin != nil {
			row["ph_min"] = *ing.PhMin
		}
		if ing.PhMax != nil {
			row["ph_max"] = *ing.PhMax
		}
		rows = append(rows, row)
	}
	return rows
}

// compatibilityEdges flattens the named compatibility lists. Universal
// markers become a node property instead of edges.
func compatibilityEdges(cat *catalog.Catalog) (compatible, incompatible []map[string]any) {
	compatible = []map[string]any{}
	incompatible = []map[string]any{}
	for _, name := range cat.Names() {
		ing, _ := cat.Lookup(name)
		for _, t := range ing.CompatibleWith {
			if !t.Universal {
				compatible = append(compatible, map[string]any{"from": ing.Name, "to": t.Name})
			}
		}
		for _, t := range ing.IncompatibleWith {
			if !t.Universal {
				incompatible = append(incompatible, map[string]any{"from": ing.Name, "to": t.Name})
			}
		}
	}
	return compatible, incompatible
}

func templateRows(f *catalog.Formulary) []map[string]any {
	templates := f.Templates()
	rows := make([]map[string]any, 0, len(templates))
	for pos, t := range templates {
		ingredients := make([]map[string]any, 0, len(t.Percentages))
		for _, name := range sortedKeys(t.Percentages) {
			ingredients = append(ingredients, map[string]any{"name": name, "percentage": t.Percentages[name]})
		}
		rows = append(rows, map[string]any{
			"key":         t.Key,
			"profile":     t.Profile,
			"description": t.Description,
			"skin_types":  nonNil(t.SkinTypes),
			"position":    pos,
			"ingredients": ingredients,
		})
	}
	return rows
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
