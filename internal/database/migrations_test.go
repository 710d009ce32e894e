package database

import (
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/catalog"
)

func TestIngredientRows(t *testing.T) {
	cat := catalog.Default()
	rows := ingredientRows(cat)
	require.Len(t, rows, cat.Len())

	byName := map[string]map[string]any{}
	for _, r := range rows {
		byName[r["name"].(string)] = r
	}

	retinol := byName["retinol"]
	assert.Equal(t, "active", retinol["category"])
	assert.Equal(t, 5.5, retinol["ph_min"])
	assert.Equal(t, false, retinol["universal"])

	chamomile := byName["chamomile"]
	assert.Nil(t, chamomile["ph_min"])
	assert.Equal(t, true, chamomile["universal"])
	assert.NotNil(t, chamomile["warnings"])
}

func TestCompatibilityEdges(t *testing.T) {
	compatible, incompatible := compatibilityEdges(catalog.Default())

	assert.Contains(t, incompatible, map[string]any{"from": "retinol", "to": "vitamin-c"})
	assert.Contains(t, incompatible, map[string]any{"from": "copper-peptides", "to": "vitamin-c"})
	assert.Contains(t, compatible, map[string]any{"from": "caffeine", "to": "beta-vulgaris"})

	for _, e := range compatible {
		assert.NotEqual(t, "all-ingredients", e["to"])
		assert.NotEqual(t, "all-actives", e["to"])
	}
}

func TestTemplateRows(t *testing.T) {
	rows := templateRows(catalog.DefaultFormulary())
	require.Len(t, rows, 7)

	first := rows[0]
	assert.Equal(t, "caffeine_beetroot_oat", first["key"])
	assert.Equal(t, 0, first["position"])

	ingredients := first["ingredients"].([]map[string]any)
	require.Len(t, ingredients, 3)
	assert.Equal(t, "avena-sativa", ingredients[0]["name"])
	assert.Equal(t, 1.5, ingredients[0]["percentage"])
}

func TestDecodePayload(t *testing.T) {
	rec, err := decodePayload(`{"id":"f-1","created_at":"2024-06-01T00:00:00Z"}`)
	require.NoError(t, err)
	assert.Equal(t, "f-1", rec.ID)

	_, err = decodePayload(42)
	assert.Error(t, err)
	_, err = decodePayload("{not json")
	assert.Error(t, err)
}

func TestRecordsToMaps(t *testing.T) {
	maps := recordsToMaps([]*neo4j.Record{
		{Keys: []string{"ingredients", "templates"}, Values: []any{int64(18), int64(7)}},
	})
	require.Len(t, maps, 1)
	assert.Equal(t, int64(18), maps[0]["ingredients"])
	assert.Equal(t, int64(7), maps[0]["templates"])

	assert.NotNil(t, recordsToMaps(nil))
}
