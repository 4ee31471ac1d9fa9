package core

import (
	"context"
)

// GlobalState exposes runtime-switchable engine settings to command handlers.
type GlobalState interface {
	ChangeRanker(ctx context.Context, backend string) error
	ActiveRanker() string
	Rankers() []string
}
