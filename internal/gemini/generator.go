package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"google.golang.org/genai"
)

// GeneratorConfig carries the sampling parameters applied to every
// completion. Values are validated at construction, not per call.
type GeneratorConfig struct {
	Model       string
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// Generator produces chat completions through Genkit using a fixed model
// and sampling configuration.
type Generator struct {
	g   *genkit.Genkit
	cfg GeneratorConfig
}

// NewGenerator builds a Generator bound to the given Genkit instance.
func NewGenerator(g *genkit.Genkit, cfg GeneratorConfig) (*Generator, error) {
	if g == nil {
		return nil, fmt.Errorf("genkit instance is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}
	return &Generator{g: g, cfg: cfg}, nil
}

// Complete sends prompt to the model and returns the raw response text.
// An empty response is an error: downstream parsing has nothing to work
// with, and the caller's fallback path should engage.
func (gen *Generator) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: empty prompt", ErrGeneration)
	}

	resp, err := genkit.Generate(ctx, gen.g,
		ai.WithModelName("googleai/"+gen.cfg.Model),
		ai.WithPrompt(prompt),
		ai.WithConfig(&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(gen.cfg.Temperature),
			TopP:            genai.Ptr(gen.cfg.TopP),
			MaxOutputTokens: int32(gen.cfg.MaxTokens),
		}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}
	return text, nil
}
