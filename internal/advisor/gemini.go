package advisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	genai "google.golang.org/genai"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

// DefaultModel is used when no model name is configured
const DefaultModel = "gemini-2.0-flash"

const maxAttempts = 3

// ErrEmptyResponse is returned when the model answers with no text
var ErrEmptyResponse = errors.New("advisor: empty response from model")

// generator is the slice of the genai client the advisor depends on
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAdvisor is a thin wrapper around the official genai client
type GeminiAdvisor struct {
	models  generator
	model   string
	log     *zap.Logger
	backoff time.Duration
}

// NewGeminiAdvisor creates an advisor backed by the Gemini API
func NewGeminiAdvisor(ctx context.Context, apiKey, model string, log *zap.Logger) (*GeminiAdvisor, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return newGeminiAdvisor(cli.Models, model, log), nil
}

func newGeminiAdvisor(g generator, model string, log *zap.Logger) *GeminiAdvisor {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GeminiAdvisor{models: g, model: model, log: log, backoff: 300 * time.Millisecond}
}

// Name identifies the backing model
func (g *GeminiAdvisor) Name() string { return "Gemini:" + g.model }

// Suggest asks the model for narrative guidance, retrying transient failures
func (g *GeminiAdvisor) Suggest(ctx context.Context, req models.FormulationRequest, result models.FormulationResult) (string, error) {
	prompt := BuildPrompt(req, result)
	g.log.Debug("advisor request", zap.String("model", g.model), zap.Int("prompt_bytes", len(prompt)))

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := g.models.GenerateContent(ctx, g.model,
			[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}},
			nil,
		)
		if err != nil {
			lastErr = err
		} else if text := responseText(resp); text != "" {
			return text, nil
		} else {
			lastErr = ErrEmptyResponse
		}

		g.log.Warn("advisor attempt failed", zap.Int("attempt", attempt+1), zap.Error(lastErr))
		if attempt == maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(g.backoff * time.Duration(1<<attempt)):
		}
	}
	return "", lastErr
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
