package database

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	neo4jconfig "github.com/neo4j/neo4j-go-driver/v5/neo4j/config"
	"go.uber.org/zap"
)

const verifyTimeout = 10 * time.Second

// Neo4jClient wraps the Neo4j driver with the few query shapes the catalog
// importer and formulation store need
type Neo4jClient struct {
	driver   neo4j.DriverWithContext
	database string
	log      *zap.Logger
}

// Config holds the Neo4j connection configuration
type Config struct {
	URI      string
	Username string
	Password string
	Database string // typically "neo4j" for AuraDB

	// MaxPoolSize caps open connections; zero keeps the driver default
	MaxPoolSize int
}

// NewNeo4jClient connects and verifies connectivity before returning
func NewNeo4jClient(ctx context.Context, cfg Config, log *zap.Logger) (*Neo4jClient, error) {
	if log == nil {
		log = zap.NewNop()
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *neo4jconfig.Config) {
			if cfg.MaxPoolSize > 0 {
				c.MaxConnectionPoolSize = cfg.MaxPoolSize
			}
		})
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(verifyCtx)
		return nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	log.Info("connected to Neo4j", zap.String("uri", cfg.URI), zap.String("database", cfg.Database))
	return &Neo4jClient{driver: driver, database: cfg.Database, log: log}, nil
}

// Close closes the Neo4j driver connection
func (c *Neo4jClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// ExecuteWrite runs a single write statement routed to a writer
func (c *Neo4jClient) ExecuteWrite(ctx context.Context, query string, params map[string]any) error {
	if _, err := c.run(ctx, query, params, neo4j.ExecuteQueryWithWritersRouting()); err != nil {
		return fmt.Errorf("failed to execute write query: %w", err)
	}
	return nil
}

// ExecuteRead runs a read statement and returns each record as a map
func (c *Neo4jClient) ExecuteRead(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	records, err := c.run(ctx, query, params, neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return nil, fmt.Errorf("failed to execute read query: %w", err)
	}
	return recordsToMaps(records), nil
}

// Health checks the database connection health
func (c *Neo4jClient) Health(ctx context.Context) error {
	if _, err := c.run(ctx, "RETURN 1", nil, neo4j.ExecuteQueryWithReadersRouting()); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// ExecuteWriteTransaction runs work inside one managed write transaction;
// the driver retries it on transient failures
func (c *Neo4jClient) ExecuteWriteTransaction(ctx context.Context, work func(neo4j.ManagedTransaction) error) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	if _, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, work(tx)
	}); err != nil {
		return fmt.Errorf("failed to execute write transaction: %w", err)
	}
	return nil
}

func (c *Neo4jClient) run(ctx context.Context, query string, params map[string]any, routing neo4j.ExecuteQueryConfigurationOption) ([]*neo4j.Record, error) {
	start := time.Now()
	result, err := neo4j.ExecuteQuery(ctx, c.driver, query, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(c.database),
		routing,
	)
	c.log.Debug("neo4j query", zap.Duration("took", time.Since(start)), zap.Error(err))
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

func recordsToMaps(records []*neo4j.Record) []map[string]any {
	results := make([]map[string]any, 0, len(records))
	for _, record := range records {
		m := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			m[key] = record.Values[i]
		}
		results = append(results, m)
	}
	return results
}
