// Package gemini provides the summary generation client backed by the
// Google Gemini API.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"earningsnerd_backend/internal/feature/summaries/usecase"
)

const (
	// DefaultModel is the default Gemini model for summary generation.
	DefaultModel = "gemini-2.5-flash"
)

// GeminiSummarizer generates filing summaries using the Google Gemini API.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

// Compile-time check that GeminiSummarizer implements Summarizer.
var _ usecase.Summarizer = (*GeminiSummarizer)(nil)

// NewGeminiSummarizer creates a new GeminiSummarizer using ADC.
// The environment needs GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT,
// and GOOGLE_CLOUD_LOCATION (or GEMINI_API_KEY for API-key auth).
func NewGeminiSummarizer(ctx context.Context) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiSummarizer{client: client, model: DefaultModel}, nil
}

// GenerateJSON runs the prompt and returns the raw model text. The model
// is asked for JSON output; contract validation happens in the usecase.
func (g *GeminiSummarizer) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}

// ModelName returns the model identifier recorded on generated summaries.
func (g *GeminiSummarizer) ModelName() string {
	return g.model
}
