package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/sanibot/internal/config"
)

func testGenerationConfig() *config.GenerationConfig {
	return &config.GenerationConfig{
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   500,
		Timeout:     5 * time.Second,
	}
}

func TestNewBaseProvider_TimeoutFallback(t *testing.T) {
	t.Parallel()

	b := newBaseProvider("http://localhost:11434", "", "llama3.2", 0)
	if b.client.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", b.client.Timeout, defaultTimeout)
	}

	b = newBaseProvider("http://localhost:11434", "", "llama3.2", 5*time.Second)
	if b.client.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want %v", b.client.Timeout, 5*time.Second)
	}
}

func TestDoRequest_RetriesServerErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	b := newBaseProvider(srv.URL, "", "llama3.2", time.Second)

	resp, err := b.doRequest(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		t.Fatalf("doRequest() error = %v", err)
	}
	resp.Body.Close()

	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server hit %d times, want 3", got)
	}
}

func TestDoRequest_NoRetryOnClientError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	b := newBaseProvider(srv.URL, "", "llama3.2", time.Second)

	resp, err := b.doRequest(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		t.Fatalf("doRequest() error = %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 passed through", resp.StatusCode)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
}
