package state

import (
	"context"

	"github.com/sandevgo/sanibot/internal/core"
)

type engineControl interface {
	SetRanker(ctx context.Context, name string) error
	ActiveRanker() string
	Rankers() []string
}

// GlobalState adapts the engine's runtime switches for command handlers.
type GlobalState struct {
	engine engineControl
}

var _ core.GlobalState = (*GlobalState)(nil)

func NewGlobalState(
	engine engineControl,
) *GlobalState {
	return &GlobalState{
		engine: engine,
	}
}

func (s *GlobalState) ChangeRanker(ctx context.Context, backend string) error {
	return s.engine.SetRanker(ctx, backend)
}

func (s *GlobalState) ActiveRanker() string {
	return s.engine.ActiveRanker()
}

func (s *GlobalState) Rankers() []string {
	return s.engine.Rankers()
}
