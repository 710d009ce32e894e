package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/catalog"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
	"github.com/phpdevgmicro/SkinScript-sub000/internal/services"
)

// APIHandler handles all API requests
type APIHandler struct {
	formulationService *services.FormulationService
	catalog            *catalog.Catalog
	log                *zap.Logger
	maxKeyActives      int
}

// NewAPIHandler creates a new API handler. maxKeyActives caps the number of
// key actives a request may carry; zero disables the cap.
func NewAPIHandler(formulationService *services.FormulationService, cat *catalog.Catalog, maxKeyActives int, log *zap.Logger) *APIHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &APIHandler{
		formulationService: formulationService,
		catalog:            cat,
		log:                log,
		maxKeyActives:      maxKeyActives,
	}
}

// SetupRoutes configures all API routes
func (h *APIHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/ingredients", h.ListIngredients)
		api.GET("/ingredients/:name", h.GetIngredient)
		api.POST("/compatibility", h.AnalyzeCompatibility)
		api.POST("/concentrations", h.ComputeConcentrations)
		api.POST("/formulations/preview", h.PreviewFormulation)
		api.POST("/formulations", h.CreateFormulation)
		api.GET("/formulations", h.ListFormulations)
		api.GET("/formulations/:id", h.GetFormulation)
	}
}

// Health reports liveness, store reachability and the reference data version
func (h *APIHandler) Health(c *gin.Context) {
	code, status, store := http.StatusOK, "ok", "ok"
	if err := h.formulationService.CheckStore(c.Request.Context()); err != nil {
		if errors.Is(err, models.ErrStoreUnavailable) {
			store = "disabled"
		} else {
			h.log.Warn("store health check failed", zap.Error(err))
			code, status, store = http.StatusServiceUnavailable, "degraded", "unavailable"
		}
	}
	c.JSON(code, gin.H{
		"status":          status,
		"store":           store,
		"catalog_version": catalog.Version,
	})
}

// ListIngredients lists every curated ingredient
func (h *APIHandler) ListIngredients(c *gin.Context) {
	names := h.catalog.Names()
	ingredients := make([]models.Ingredient, 0, len(names))
	for _, n := range names {
		ing, _ := h.catalog.Lookup(n)
		ingredients = append(ingredients, ing)
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(ingredients),
		"ingredients": ingredients,
	})
}

// GetIngredient returns one curated ingredient
func (h *APIHandler) GetIngredient(c *gin.Context) {
	ing, ok := h.catalog.Lookup(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}
	c.JSON(http.StatusOK, ing)
}

type compatibilityRequest struct {
	Ingredients []string `json:"ingredients"`
}

// AnalyzeCompatibility reports conflicts and synergies for a list of ingredients
func (h *APIHandler) AnalyzeCompatibility(c *gin.Context) {
	var req compatibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	c.JSON(http.StatusOK, h.formulationService.Engine().Analyzer.Analyze(req.Ingredients))
}

// ComputeConcentrations returns the safe ranges and pH guidance for a request
func (h *APIHandler) ComputeConcentrations(c *gin.Context) {
	req, ok := h.bindFormulationRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.formulationService.Engine().Calculator.SafetyReport(req))
}

// PreviewFormulation composes a formulation without storing it
func (h *APIHandler) PreviewFormulation(c *gin.Context) {
	req, ok := h.bindFormulationRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.formulationService.Preview(req))
}

// CreateFormulation composes and stores a formulation
func (h *APIHandler) CreateFormulation(c *gin.Context) {
	req, ok := h.bindFormulationRequest(c)
	if !ok {
		return
	}

	rec, err := h.formulationService.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "create formulation", err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// GetFormulation loads a stored formulation
func (h *APIHandler) GetFormulation(c *gin.Context) {
	rec, err := h.formulationService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "get formulation", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ListFormulations lists recent formulations
func (h *APIHandler) ListFormulations(c *gin.Context) {
	limit := services.DefaultListLimit
	if limitParam := c.Query("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	recs, err := h.formulationService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, "list formulations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"limit":        limit,
		"formulations": recs,
	})
}

func (h *APIHandler) bindFormulationRequest(c *gin.Context) (models.FormulationRequest, bool) {
	var req models.FormulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return req, false
	}
	if err := req.Validate(h.maxKeyActives); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	return req, true
}

func (h *APIHandler) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Formulation not found"})
	case errors.Is(err, models.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Formulation storage is not available"})
	default:
		h.log.Error("request failed", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op})
	}
}
