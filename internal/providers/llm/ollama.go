package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sandevgo/sanibot/internal/config"
	"github.com/sandevgo/sanibot/internal/core"
)

// Ollama generates answers through the native /api/generate endpoint.
type Ollama struct {
	baseProvider
	opts *config.GenerationConfig
}

var _ core.Generator = (*Ollama)(nil)

func NewOllama(cfg *config.OllamaConfig, gen *config.GenerationConfig) *Ollama {
	return &Ollama{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, gen.Timeout),
		opts:         gen,
	}
}

func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]any{
			"temperature": o.opts.Temperature,
			"top_p":       o.opts.TopP,
			"num_predict": o.opts.MaxTokens,
		},
	}

	headers := make(map[string]string)
	if o.apiKey != "" {
		headers["Authorization"] = "Bearer " + o.apiKey
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/api/generate", payload, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return "", err
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return result.Response, nil
}

// Models lists the model names the Ollama daemon has pulled. The installer
// uses it both as an availability probe and for model selection.
func (o *Ollama) Models(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", o.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}

	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama not available: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(result.Models))
	for _, m := range result.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
