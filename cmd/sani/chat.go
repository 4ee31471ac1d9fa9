package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/sandevgo/sanibot/internal/transport/cli"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	Long:  `Opens the interactive terminal chat, regardless of which transports are enabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		a := newApp(ctx)
		defer a.close(ctx)

		rl, err := cli.NewReadLine(a.engine, a.commands, a.cfg)
		if err != nil {
			return err
		}
		defer func() { _ = rl.Shutdown(ctx) }()

		// ^C cancels the context, which is a normal way to leave the chat.
		if err := rl.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
