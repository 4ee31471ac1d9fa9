package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/sandevgo/sanibot/internal/config"
)

func testOllamaConfig(baseURL string) *config.OllamaConfig {
	return &config.OllamaConfig{
		BaseURL: baseURL,
		Model:   "llama3.2",
		APIKey:  "local-key",
	}
}

func TestOllama_Generate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var (
		payload map[string]any
		auth    string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/generate" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"response":"Apre alle 7:00.","done":true}`))
	}))
	defer srv.Close()

	o := NewOllama(testOllamaConfig(srv.URL), testGenerationConfig())

	text, err := o.Generate(ctx, "A che ora apre il centro prelievi?")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "Apre alle 7:00." {
		t.Errorf("text = %q, want the decoded response field", text)
	}
	if payload["model"] != "llama3.2" {
		t.Errorf("model = %v, want llama3.2", payload["model"])
	}
	if payload["prompt"] != "A che ora apre il centro prelievi?" {
		t.Errorf("prompt = %v", payload["prompt"])
	}
	if stream, ok := payload["stream"]; !ok || stream != false {
		t.Errorf("stream = %v, want explicit false", stream)
	}
	opts, ok := payload["options"].(map[string]any)
	if !ok {
		t.Fatalf("options missing from payload: %v", payload)
	}
	wantOpts := map[string]any{"temperature": 0.7, "top_p": 0.9, "num_predict": float64(500)}
	if !reflect.DeepEqual(opts, wantOpts) {
		t.Errorf("options = %v, want %v", opts, wantOpts)
	}
	if auth != "Bearer local-key" {
		t.Errorf("Authorization = %q, want the bearer token", auth)
	}
}

func TestOllama_Generate_HTTPError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	o := NewOllama(testOllamaConfig(srv.URL), testGenerationConfig())

	_, err := o.Generate(ctx, "ciao")
	if err == nil || !strings.Contains(err.Error(), "http 404") {
		t.Errorf("Generate() error = %v, want http 404", err)
	}
}

func TestOllama_Models(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/tags" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"name":"llama3.2"},{"name":"mistral"}]}`))
	}))
	defer srv.Close()

	o := NewOllama(testOllamaConfig(srv.URL), testGenerationConfig())

	names, err := o.Models(ctx)
	if err != nil {
		t.Fatalf("Models() error = %v", err)
	}
	want := []string{"llama3.2", "mistral"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Models() = %v, want %v", names, want)
	}
}

func TestOllama_Models_Unavailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	o := NewOllama(testOllamaConfig(srv.URL), testGenerationConfig())

	_, err := o.Models(ctx)
	if err == nil || !strings.Contains(err.Error(), "ollama not available") {
		t.Errorf("Models() error = %v, want ollama not available", err)
	}
}
