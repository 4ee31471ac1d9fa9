package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/sanibot/internal/core"
)

type HelpCommand struct {
	commands  []core.Command
	formatter *ResponseFormatter
}

func NewHelpCommand() *HelpCommand {
	return &HelpCommand{
		formatter: NewResponseFormatter(),
	}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "Mostra i comandi disponibili"
}

func (c *HelpCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	items := make([]string, 0, len(c.commands))
	for _, cmd := range c.commands {
		items = append(items, fmt.Sprintf("/%s · %s", cmd.Name(), cmd.Description()))
	}
	return c.formatter.Combine(
		c.formatter.Info("Comandi disponibili"),
		c.formatter.List(items),
		c.formatter.Tip("Tutto il resto lo tratto come una domanda sulle strutture"),
	), nil
}
