package helper

import (
	"os"
	"strconv"
	"strings"

	database "github.com/phpdevgmicro/SkinScript-sub000/internal/database"
)

// Supported STORE_DRIVER values
const (
	StoreNeo4j    = "neo4j"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreNone     = "none"
)

// AppConfig holds everything the server reads from the environment
type AppConfig struct {
	Port          string
	StoreDriver   string
	Neo4j         database.Config
	SQLitePath    string
	PostgresDSN   string
	CacheSize     int
	GeminiAPIKey  string
	GeminiModel   string
	LogLevel      string
	MaxKeyActives int
}

// LoadAppConfigFromEnv loads the server configuration from environment variables
func LoadAppConfigFromEnv() AppConfig {
	return AppConfig{
		Port:          getEnvOrDefault("APP_PORT", "8080"),
		StoreDriver:   strings.ToLower(getEnvOrDefault("STORE_DRIVER", StoreSQLite)),
		Neo4j:         LoadConfigFromEnv(),
		SQLitePath:    getEnvOrDefault("SQLITE_PATH", "data/formulations.db"),
		PostgresDSN:   getEnvOrDefault("POSTGRES_DSN", ""),
		CacheSize:     getEnvIntOrDefault("CACHE_SIZE", database.DefaultCacheSize),
		GeminiAPIKey:  getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:   getEnvOrDefault("GEMINI_MODEL", ""),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		MaxKeyActives: getEnvIntOrDefault("MAX_KEY_ACTIVES", 3),
	}
}

// LoadConfigFromEnv loads Neo4j configuration from environment variables
func LoadConfigFromEnv() database.Config {
	return database.Config{
		URI:      getEnvOrDefault("NEO4J_URI", ""),
		Username: getEnvOrDefault("NEO4J_USERNAME", "neo4j"),
		Password: getEnvOrDefault("NEO4J_PASSWORD", ""),
		Database: getEnvOrDefault("NEO4J_DATABASE", "neo4j"),

		MaxPoolSize: getEnvIntOrDefault("NEO4J_MAX_POOL_SIZE", 0),
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
