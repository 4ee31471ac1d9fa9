package core

import "context"

// CmdRouter dispatches slash-command input coming from a transport.
// Execute reports false when the input is not a command.
type CmdRouter interface {
	Execute(ctx context.Context, sessionID, input string) (string, bool)
	ListCommands() []Command
}

// Command is a single slash command. Execute receives the session so
// commands that touch conversation state can reach the right one.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}
