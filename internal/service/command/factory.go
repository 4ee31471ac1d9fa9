package command

import (
	"github.com/sandevgo/sanibot/internal/core"
)

// NewCommands builds the full command set. The help command lists the
// others, so it gets the finished slice after construction.
func NewCommands(
	state core.GlobalState,
	stats statsSource,
	respCache cacheSource,
	sessions sessionStore,
	search searcher,
) []core.Command {
	help := NewHelpCommand()
	cmds := []core.Command{
		NewStartCommand(),
		help,
		NewSearchCommand(search),
		NewRankerCommand(state),
		NewStatsCommand(stats, respCache),
		NewResetCommand(sessions),
	}
	help.commands = cmds
	return cmds
}
