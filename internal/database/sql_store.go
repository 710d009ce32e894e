package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Dialect selects placeholder syntax and the database/sql driver
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// created_at is stored as fixed-width UTC text so it sorts lexically on
// both backends
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS formulations (
		id            TEXT PRIMARY KEY,
		created_at    TEXT NOT NULL,
		title         TEXT NOT NULL,
		profile       TEXT NOT NULL,
		base_format   TEXT NOT NULL,
		request       TEXT NOT NULL,
		result        TEXT NOT NULL,
		ai_suggestion TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_formulations_created_at ON formulations (created_at)`,
}

// SQLStore persists formulations in SQLite or Postgres
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQLite opens (creating if needed) a SQLite database file
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)
	return newSQLStore(ctx, db, DialectSQLite)
}

// OpenPostgres connects to Postgres through the pgx stdlib driver
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := openDB("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}
	return newSQLStore(ctx, db, DialectPostgres)
}

func newSQLStore(ctx context.Context, db *sql.DB, dialect Dialect) (*SQLStore, error) {
	s := &SQLStore{db: db, dialect: dialect}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Close releases the connection pool
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Ping checks the connection
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Save inserts or replaces a formulation
func (s *SQLStore) Save(ctx context.Context, rec models.StoredFormulation) error {
	request, err := json.Marshal(rec.Request)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	query := s.rebind(`
		INSERT INTO formulations (id, created_at, title, profile, base_format, request, result, ai_suggestion)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			created_at = excluded.created_at,
			title = excluded.title,
			profile = excluded.profile,
			base_format = excluded.base_format,
			request = excluded.request,
			result = excluded.result,
			ai_suggestion = excluded.ai_suggestion
	`)
	f := rec.Result.Formulation
	_, err = s.db.ExecContext(ctx, query,
		rec.ID,
		rec.CreatedAt.UTC().Format(timeLayout),
		f.Title,
		f.Profile,
		f.BaseFormat,
		string(request),
		string(result),
		rec.AISuggestion,
	)
	if err != nil {
		return fmt.Errorf("failed to insert formulation: %w", err)
	}
	return nil
}

// Get loads one formulation by id
func (s *SQLStore) Get(ctx context.Context, id string) (models.StoredFormulation, error) {
	query := s.rebind(`
		SELECT id, created_at, request, result, ai_suggestion
		FROM formulations WHERE id = ?
	`)
	rec, err := scanFormulation(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoredFormulation{}, models.ErrNotFound
	}
	return rec, err
}

// ListRecent returns the newest formulations first
func (s *SQLStore) ListRecent(ctx context.Context, limit int) ([]models.StoredFormulation, error) {
	query := s.rebind(`
		SELECT id, created_at, request, result, ai_suggestion
		FROM formulations
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`)
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list formulations: %w", err)
	}
	defer rows.Close()

	recs := []models.StoredFormulation{}
	for rows.Next() {
		rec, err := scanFormulation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFormulation(row rowScanner) (models.StoredFormulation, error) {
	var rec models.StoredFormulation
	var createdAt, request, result string
	if err := row.Scan(&rec.ID, &createdAt, &request, &result, &rec.AISuggestion); err != nil {
		return models.StoredFormulation{}, err
	}

	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return models.StoredFormulation{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	rec.CreatedAt = t
	if err := json.Unmarshal([]byte(request), &rec.Request); err != nil {
		return models.StoredFormulation{}, fmt.Errorf("failed to decode request: %w", err)
	}
	if err := json.Unmarshal([]byte(result), &rec.Result); err != nil {
		return models.StoredFormulation{}, fmt.Errorf("failed to decode result: %w", err)
	}
	return rec, nil
}

// rebind rewrites ? placeholders into $n for Postgres
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
