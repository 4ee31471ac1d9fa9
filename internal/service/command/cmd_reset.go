package command

import (
	"context"
)

type sessionStore interface {
	Clear(sessionID string)
}

type ResetCommand struct {
	sessions  sessionStore
	formatter *ResponseFormatter
}

func NewResetCommand(sessions sessionStore) *ResetCommand {
	return &ResetCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Azzera la conversazione corrente"
}

func (c *ResetCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	c.sessions.Clear(sessionID)
	return c.formatter.Combine(
		c.formatter.Success("Conversazione azzerata"),
		"Ho dimenticato le domande precedenti di questa chat.\n",
	), nil
}
