package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

// DefaultListLimit caps ListRecent when the caller gives no limit
const DefaultListLimit = 20

// FormulationStore persists composed formulations
type FormulationStore interface {
	Save(ctx context.Context, rec models.StoredFormulation) error
	Get(ctx context.Context, id string) (models.StoredFormulation, error)
	ListRecent(ctx context.Context, limit int) ([]models.StoredFormulation, error)
}

// Advisor produces supplementary narrative text for a formulation. Its output
// never replaces the engine's numbers.
type Advisor interface {
	Suggest(ctx context.Context, req models.FormulationRequest, result models.FormulationResult) (string, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// FormulationService handles the formulation use cases on top of the engine
type FormulationService struct {
	engine  *Engine
	store   FormulationStore
	advisor Advisor
	log     *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewFormulationService creates a formulation service. store and advisor may
// be nil; without a store only previews are available.
func NewFormulationService(engine *Engine, store FormulationStore, advisor Advisor, log *zap.Logger) *FormulationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FormulationService{
		engine:  engine,
		store:   store,
		advisor: advisor,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Engine exposes the underlying rule engine
func (s *FormulationService) Engine() *Engine {
	return s.engine
}

// Preview evaluates a request without persisting anything
func (s *FormulationService) Preview(req models.FormulationRequest) models.FormulationResult {
	return s.engine.Evaluate(req)
}

// Create evaluates a request, asks the advisor for narrative text and stores
// the result under a new id. An advisor failure is logged and skipped.
func (s *FormulationService) Create(ctx context.Context, req models.FormulationRequest) (models.StoredFormulation, error) {
	if s.store == nil {
		return models.StoredFormulation{}, models.ErrStoreUnavailable
	}

	rec := models.StoredFormulation{
		ID:        s.newID(),
		Request:   req,
		Result:    s.engine.Evaluate(req),
		CreatedAt: s.now().UTC(),
	}

	if s.advisor != nil {
		suggestion, err := s.advisor.Suggest(ctx, req, rec.Result)
		if err != nil {
			s.log.Warn("advisor suggestion failed", zap.String("id", rec.ID), zap.Error(err))
		} else {
			rec.AISuggestion = suggestion
		}
	}

	if err := s.store.Save(ctx, rec); err != nil {
		return models.StoredFormulation{}, fmt.Errorf("failed to save formulation: %w", err)
	}

	s.log.Info("formulation created",
		zap.String("id", rec.ID),
		zap.String("template", rec.Result.Formulation.Template),
		zap.String("rating", string(rec.Result.Compatibility.Rating)),
	)
	return rec, nil
}

// Get loads a stored formulation
func (s *FormulationService) Get(ctx context.Context, id string) (models.StoredFormulation, error) {
	if s.store == nil {
		return models.StoredFormulation{}, models.ErrStoreUnavailable
	}
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return models.StoredFormulation{}, fmt.Errorf("failed to get formulation %s: %w", id, err)
	}
	return rec, nil
}

// ListRecent returns the newest stored formulations first
func (s *FormulationService) ListRecent(ctx context.Context, limit int) ([]models.StoredFormulation, error) {
	if s.store == nil {
		return nil, models.ErrStoreUnavailable
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	recs, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list formulations: %w", err)
	}
	return recs, nil
}

// CheckStore reports whether the configured store is reachable. Without a
// store it returns ErrStoreUnavailable.
func (s *FormulationService) CheckStore(ctx context.Context) error {
	if s.store == nil {
		return models.ErrStoreUnavailable
	}
	if p, ok := s.store.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
