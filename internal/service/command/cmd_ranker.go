package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/sanibot/internal/core"
)

type RankerCommand struct {
	state     core.GlobalState
	formatter *ResponseFormatter
}

func NewRankerCommand(state core.GlobalState) *RankerCommand {
	return &RankerCommand{
		state:     state,
		formatter: NewResponseFormatter(),
	}
}

func (c *RankerCommand) Name() string {
	return "ranker"
}

func (c *RankerCommand) Description() string {
	return "Mostra o cambia il backend di ranking"
}

func (c *RankerCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Ranking strutture"),
			c.formatter.Label("Backend attivo", c.state.ActiveRanker()),
			c.formatter.Label("Disponibili", strings.Join(c.state.Rankers(), ", ")),
			c.formatter.Usage("/ranker [nome]"),
			c.formatter.Examples([]string{"/ranker fuzzy", "/ranker tfidf"}),
		), nil
	}

	if err := c.state.ChangeRanker(ctx, args[0]); err != nil {
		return "", fmt.Errorf("failed to set ranker: %w", err)
	}

	return c.formatter.Combine(
		c.formatter.Success(fmt.Sprintf("Backend di ranking: `%s`", c.state.ActiveRanker())),
	), nil
}
