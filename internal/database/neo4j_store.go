package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

// Neo4jFormulationStore keeps formulations as graph nodes linked to the
// ingredients they contain. The full record is also kept as a JSON payload
// so reads do not have to reassemble it from relationships.
type Neo4jFormulationStore struct {
	client *Neo4jClient
}

// NewNeo4jFormulationStore creates a store on top of a connected client
func NewNeo4jFormulationStore(client *Neo4jClient) *Neo4jFormulationStore {
	return &Neo4jFormulationStore{client: client}
}

// Save writes the formulation node, its CONTAINS edges and skin type links in
// one transaction
func (s *Neo4jFormulationStore) Save(ctx context.Context, rec models.StoredFormulation) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode formulation: %w", err)
	}

	f := rec.Result.Formulation
	entries := make([]map[string]any, 0, len(f.Formula))
	for _, e := range f.Formula {
		entries = append(entries, map[string]any{"ingredient": e.Ingredient, "percentage": e.Percentage})
	}

	nodeQuery := `
		MERGE (f:Formulation {id: $id})
		SET f.created_at = datetime($createdAt),
			f.title = $title,
			f.profile = $profile,
			f.base_format = $baseFormat,
			f.template = $template,
			f.rating = $rating,
			f.payload = $payload
		WITH f
		UNWIND $entries AS entry
		MERGE (i:Ingredient {name: entry.ingredient})
		MERGE (f)-[c:CONTAINS]->(i)
		SET c.percentage = entry.percentage
	`
	skinQuery := `
		MATCH (f:Formulation {id: $id})
		UNWIND $skinTypes AS skinType
		MERGE (s:SkinType {name: skinType})
		MERGE (f)-[:FOR_SKIN]->(s)
	`

	return s.client.ExecuteWriteTransaction(ctx, func(tx neo4j.ManagedTransaction) error {
		if _, err := tx.Run(ctx, nodeQuery, map[string]any{
			"id":         rec.ID,
			"createdAt":  rec.CreatedAt.UTC().Format(time.RFC3339Nano),
			"title":      f.Title,
			"profile":    f.Profile,
			"baseFormat": f.BaseFormat,
			"template":   f.Template,
			"rating":     string(rec.Result.Compatibility.Rating),
			"payload":    string(payload),
			"entries":    entries,
		}); err != nil {
			return err
		}
		_, err := tx.Run(ctx, skinQuery, map[string]any{
			"id":        rec.ID,
			"skinTypes": nonNil(f.SkinTypes),
		})
		return err
	})
}

// Get loads one formulation by id
func (s *Neo4jFormulationStore) Get(ctx context.Context, id string) (models.StoredFormulation, error) {
	query := `
		MATCH (f:Formulation {id: $id})
		RETURN f.payload AS payload
	`
	results, err := s.client.ExecuteRead(ctx, query, map[string]any{"id": id})
	if err != nil {
		return models.StoredFormulation{}, err
	}
	if len(results) == 0 {
		return models.StoredFormulation{}, models.ErrNotFound
	}
	return decodePayload(results[0]["payload"])
}

// ListRecent returns the newest formulations first
func (s *Neo4jFormulationStore) ListRecent(ctx context.Context, limit int) ([]models.StoredFormulation, error) {
	query := `
		MATCH (f:Formulation)
		RETURN f.payload AS payload
		ORDER BY f.created_at DESC
		LIMIT $limit
	`
	results, err := s.client.ExecuteRead(ctx, query, map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}

	recs := make([]models.StoredFormulation, 0, len(results))
	for _, r := range results {
		rec, err := decodePayload(r["payload"])
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Ping checks the database connection
func (s *Neo4jFormulationStore) Ping(ctx context.Context) error {
	return s.client.Health(ctx)
}

func decodePayload(v any) (models.StoredFormulation, error) {
	raw, ok := v.(string)
	if !ok {
		return models.StoredFormulation{}, fmt.Errorf("unexpected payload type %T", v)
	}
	var rec models.StoredFormulation
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return models.StoredFormulation{}, fmt.Errorf("failed to decode formulation: %w", err)
	}
	return rec, nil
}
