package command

import (
	"context"

	"github.com/sandevgo/sanibot/internal/engine/suggest"
)

type StartCommand struct {
	formatter *ResponseFormatter
}

func NewStartCommand() *StartCommand {
	return &StartCommand{
		formatter: NewResponseFormatter(),
	}
}

func (c *StartCommand) Name() string {
	return "start"
}

func (c *StartCommand) Description() string {
	return "Presenta l'assistente"
}

func (c *StartCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	return c.formatter.Combine(
		c.formatter.Section("👋", "Ciao! Sono SaniBot",
			"Ti aiuto con orari, servizi, prenotazioni e contatti delle strutture sanitarie dell'ULSS 9 Scaligera."),
		"Prova a chiedermi:\n"+c.formatter.List(suggest.Greeting()),
		c.formatter.Tip("Usa /help per l'elenco dei comandi"),
	), nil
}
