package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/services"
)

func openTestSQLite(t *testing.T) *SQLStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "formulations.db")
	s, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRecord(id string, createdAt time.Time) models.StoredFormulation {
	req := models.FormulationRequest{
		SkinTypes:  []string{"normal", "sensitive"},
		BaseFormat: "mist",
		KeyActives: []string{"caffeine"},
		Extracts:   []string{"beta-vulgaris", "avena-sativa"},
	}
	return models.StoredFormulation{
		ID:        id,
		Request:   req,
		Result:    services.NewDefaultEngine().Evaluate(req),
		CreatedAt: createdAt,
	}
}

func TestSQLStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)
	require.NoError(t, s.Ping(ctx))

	created := time.Date(2024, 6, 1, 9, 30, 0, 123456789, time.UTC)
	rec := sampleRecord("f-1", created)
	rec.AISuggestion = "Mist over makeup to refresh."
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, "f-1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Equal(t, rec.Request, got.Request)
	assert.Equal(t, rec.Result.Formulation.Formula, got.Result.Formulation.Formula)
	assert.Equal(t, rec.Result.Formulation.Template, got.Result.Formulation.Template)
	assert.Equal(t, rec.AISuggestion, got.AISuggestion)
}

func TestSQLStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	rec := sampleRecord("f-1", time.Now().UTC())
	require.NoError(t, s.Save(ctx, rec))
	rec.AISuggestion = "updated"
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, "f-1")
	require.NoError(t, err)
	assert.Equal(t, "updated", got.AISuggestion)

	recs, err := s.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestSQLStore_GetMissing(t *testing.T) {
	s := openTestSQLite(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSQLStore_ListRecent(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Save(ctx, sampleRecord(fmt.Sprintf("f-%d", i), base.Add(time.Duration(i)*time.Hour))))
	}

	recs, err := s.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "f-4", recs[0].ID)
	assert.Equal(t, "f-3", recs[1].ID)
	assert.Equal(t, "f-2", recs[2].ID)
}

func TestSQLStore_ListRecentEmpty(t *testing.T) {
	recs, err := openTestSQLite(t).ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRebind(t *testing.T) {
	pg := &SQLStore{dialect: DialectPostgres}
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", pg.rebind("SELECT * FROM t WHERE a = ? AND b = ?"))

	lite := &SQLStore{dialect: DialectSQLite}
	assert.Equal(t, "SELECT ? ", lite.rebind("SELECT ? "))
}
