package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sandevgo/sanibot/internal/config"
	"github.com/sandevgo/sanibot/internal/core"
)

// OpenAI generates answers through a chat completions endpoint. The base
// URL is configurable, so any OpenAI-compatible service works.
type OpenAI struct {
	baseProvider
	opts *config.GenerationConfig
}

var _ core.Generator = (*OpenAI)(nil)

func NewOpenAI(cfg *config.OpenAIConfig, gen *config.GenerationConfig) *OpenAI {
	return &OpenAI{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, gen.Timeout),
		opts:         gen,
	}
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": o.opts.Temperature,
		"top_p":       o.opts.TopP,
		"max_tokens":  o.opts.MaxTokens,
	}

	headers := map[string]string{
		"Authorization": "Bearer " + o.apiKey,
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return parseChatCompletion(resp)
}

func parseChatCompletion(resp *http.Response) (string, error) {
	data, err := readBody(resp)
	if err != nil {
		return "", err
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices: %s", string(data))
	}
	return result.Choices[0].Message.Content, nil
}
