// Package cli runs the assistant as an interactive terminal chat. Slash
// commands go through the shared command router; everything else is a
// question for the ask pipeline.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/sanibot/internal/config"
	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/internal/engine/intent"
	"github.com/sandevgo/sanibot/internal/engine/suggest"
	"github.com/sandevgo/sanibot/pkg/conv"
	"github.com/sandevgo/sanibot/pkg/log"
)

const sessionID = "cli-local"

// Asker answers questions; the engine implements it.
type Asker interface {
	Ask(ctx context.Context, q core.Query) core.Answer
}

type ReadLine struct {
	cfg      *config.AppConfig
	engine   Asker
	commands core.CmdRouter
	rl       *readline.Instance
}

func NewReadLine(engine Asker, commands core.CmdRouter, cfg *config.AppConfig) (*ReadLine, error) {
	// Input history lives next to the database under the runtime directory.
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.GetRuntimePath(), "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:      cfg,
		engine:   engine,
		commands: commands,
		rl:       rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("ReadLine chat started. Type 'exit' to quit.")

	fmt.Fprintln(r.rl.Stdout(), "👋 Ciao! Sono SaniBot. Prova a chiedermi:")
	for _, s := range suggest.Greeting() {
		fmt.Fprintf(r.rl.Stdout(), "  • %s\n", s)
	}

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if reply, handled := r.commands.Execute(ctx, sessionID, line); handled {
			fmt.Fprintln(r.rl.Stdout(), conv.MarkdownToPlainText([]byte(reply)))
			continue
		}

		ans := r.engine.Ask(ctx, core.Query{SessionID: sessionID, Question: line})
		r.printAnswer(ans)
	}
}

// printAnswer renders the answer as plain text with the follow-up block
// below it, mirroring what the Telegram transport sends.
func (r *ReadLine) printAnswer(ans core.Answer) {
	fmt.Fprintln(r.rl.Stdout(), conv.MarkdownToPlainText([]byte(ans.Text)))

	switch {
	case ans.Intent == intent.Emergenza:
		fmt.Fprintln(r.rl.Stdout(), "\n🚨 Importante:")
		for _, s := range suggest.Emergency() {
			fmt.Fprintf(r.rl.Stdout(), "  • %s\n", s)
		}
	case len(ans.Suggestions) > 0:
		fmt.Fprintln(r.rl.Stdout(), "\n💡 Potresti chiedere:")
		for _, s := range ans.Suggestions {
			fmt.Fprintf(r.rl.Stdout(), "  • %s\n", s)
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
