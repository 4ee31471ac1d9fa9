package llm

import (
	"context"
	"testing"

	"github.com/sandevgo/sanibot/internal/config"
)

func TestNewGenerator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	g, err := NewGenerator(ctx, &config.AppConfig{Generator: "ollama"}, testGenerationConfig())
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if _, ok := g.(*Ollama); !ok {
		t.Errorf("generator = %T, want *Ollama", g)
	}
}

func TestNewGenerator_Unknown(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := NewGenerator(ctx, &config.AppConfig{Generator: "llamacpp"}, testGenerationConfig())
	if err == nil {
		t.Error("unknown generator should fail")
	}
}
