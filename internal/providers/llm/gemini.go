package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/sandevgo/sanibot/internal/config"
	"github.com/sandevgo/sanibot/internal/core"
)

// Gemini generates answers through the Google Generative AI SDK.
type Gemini struct {
	client *genai.Client
	model  string
	opts   *config.GenerationConfig
}

var _ core.Generator = (*Gemini)(nil)

func NewGemini(ctx context.Context, cfg *config.GeminiConfig, gen *config.GenerationConfig) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{
		client: client,
		model:  cfg.Model,
		opts:   gen,
	}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(float32(g.opts.Temperature))
	model.SetTopP(float32(g.opts.TopP))
	model.SetMaxOutputTokens(int32(g.opts.MaxTokens))

	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates")
	}

	part := res.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part %T", part)
	}
	return string(text), nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}
