package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/advisor"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/catalog"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/database"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/handlers"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/logging"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/services"
	"github.com/phpdevgmicro/SkinScript-sub000/pkg/helper"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := helper.LoadAppConfigFromEnv()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cat := catalog.Default()
	formulary := catalog.DefaultFormulary()
	engine := services.NewEngine(cat, formulary)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, cat, formulary, logger)
	if err != nil {
		logger.Fatal("failed to open formulation store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()

	var adv services.Advisor
	if cfg.GeminiAPIKey != "" {
		gemini, err := advisor.NewGeminiAdvisor(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Warn("advisor disabled", zap.Error(err))
		} else {
			adv = gemini
			logger.Info("advisor enabled", zap.String("advisor", gemini.Name()))
		}
	}

	// Initialize services
	formulationService := services.NewFormulationService(engine, store, adv, logger)

	// Initialize API handlers
	apiHandler := handlers.NewAPIHandler(formulationService, cat, cfg.MaxKeyActives, logger)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Setup API routes
	apiHandler.SetupRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// Create server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Gracefully shutdown with a timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server exited properly")
}

// openStore builds the configured formulation store behind an LRU cache.
// The returned close func is always safe to call.
func openStore(ctx context.Context, cfg helper.AppConfig, cat *catalog.Catalog, f *catalog.Formulary, logger *zap.Logger) (services.FormulationStore, func(), error) {
	var (
		inner   database.Store
		closeFn = func() {}
	)

	switch cfg.StoreDriver {
	case helper.StoreNone:
		logger.Info("formulation storage disabled, previews only")
		return nil, closeFn, nil

	case helper.StoreNeo4j:
		client, err := database.NewNeo4jClient(ctx, cfg.Neo4j, logger)
		if err != nil {
			return nil, closeFn, err
		}
		closeFn = func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				logger.Error("error closing Neo4j connection", zap.Error(err))
			}
		}

		importer := database.NewCatalogImporter(client)
		if err := importer.ImportCatalog(ctx, cat, f); err != nil {
			closeFn()
			return nil, func() {}, fmt.Errorf("catalog import failed: %w", err)
		}
		status, err := importer.GetImportStatus(ctx)
		if err != nil {
			closeFn()
			return nil, func() {}, fmt.Errorf("failed to get import status: %w", err)
		}
		logger.Info("catalog imported", zap.Any("status", status))
		inner = database.NewNeo4jFormulationStore(client)

	case helper.StoreSQLite:
		s, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, closeFn, err
		}
		closeFn = func() { _ = s.Close() }
		inner = s

	case helper.StorePostgres:
		s, err := database.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, closeFn, err
		}
		closeFn = func() { _ = s.Close() }
		inner = s

	default:
		return nil, closeFn, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	cached, err := database.NewCachedStore(inner, cfg.CacheSize)
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}
	return cached, closeFn, nil
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
