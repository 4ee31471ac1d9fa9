package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/pkg/conv"
	"github.com/spf13/cobra"
)

var askSession string

var askCmd = &cobra.Command{
	Use:          "ask [question]",
	Short:        "Ask a single question and print the answer",
	Long:         `Runs one question through the full pipeline and prints the answer as plain text.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		a := newApp(ctx)
		defer a.close(ctx)

		ans := a.engine.Ask(ctx, core.Query{
			SessionID: askSession,
			Question:  strings.Join(args, " "),
		})

		fmt.Println(conv.MarkdownToPlainText([]byte(ans.Text)))
		for _, s := range ans.Suggestions {
			fmt.Printf("  • %s\n", s)
		}

		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askSession, "session", core.DefaultSessionID, "session id for conversation memory")
	rootCmd.AddCommand(askCmd)
}
