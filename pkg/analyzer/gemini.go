package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// GeminiAnalyzer scores dialogue text with Google GenAI Gemini.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

// GeminiConfig holds configuration for the Gemini analyzer.
type GeminiConfig struct {
	APIKey string // If empty, uses GOOGLE_API_KEY env var
	Model  string // e.g., "gemini-3-pro"
}

// NewGeminiAnalyzer creates a Gemini-backed analyzer.
func NewGeminiAnalyzer(ctx context.Context, cfg GeminiConfig) (*GeminiAnalyzer, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = os.Getenv("GOOGLE_MODEL")
	}
	if model == "" {
		model = "gemini-3-pro"
	}

	return &GeminiAnalyzer{client: client, model: model}, nil
}

// Analyze asks the model for a JSON score object and parses it.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, text string) (map[string]float64, error) {
	prompt := a.buildPrompt(text)

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini generate failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response from gemini")
	}

	var raw string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			raw += part.Text
		}
	}

	scores, err := parseScores(raw)
	if err != nil {
		return nil, err
	}
	return clampScores(scores), nil
}

// Model returns the model name.
func (a *GeminiAnalyzer) Model() string {
	return a.model
}

func (a *GeminiAnalyzer) buildPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Score the following statement on each moral dimension from 0.0 to 1.0.\n")
	b.WriteString("Respond with a single JSON object whose keys are exactly: ")
	b.WriteString(strings.Join(Traits, ", "))
	b.WriteString(".\n\nStatement:\n")
	b.WriteString(text)
	return b.String()
}

// parseScores extracts the first JSON object from a model reply, which
// may be wrapped in markdown fences or prose.
func parseScores(raw string) (map[string]float64, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response: %q", raw)
	}

	var scores map[string]float64
	if err := json.Unmarshal([]byte(raw[start:end+1]), &scores); err != nil {
		return nil, fmt.Errorf("parse scores: %w", err)
	}
	return scores, nil
}
