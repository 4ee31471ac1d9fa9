// Package telegram runs the assistant as a long-polling Telegram bot.
// Slash commands go through the shared command router; everything else
// is a question for the ask pipeline.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/sanibot/internal/config"
	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/pkg/log"
	"github.com/sandevgo/sanibot/pkg/srv"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

// Asker answers user questions; the engine implements it.
type Asker interface {
	Ask(ctx context.Context, q core.Query) core.Answer
}

type Bot struct {
	bot      *tele.Bot
	cfg      *config.TelegramConfig
	engine   Asker
	commands core.CmdRouter
	send     *sender
	ownerID  int64
}

var _ srv.Service = (*Bot)(nil)

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	engine Asker,
	commands core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		cfg:      cfg,
		engine:   engine,
		commands: commands,
		send:     newSender(b),
		ownerID:  cfg.OwnerID,
	}

	// Hand the signal context with the logger to every handler.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// OwnerID zero keeps the bot public; anything else locks it down.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if bot.ownerID != 0 && c.Sender().ID != bot.ownerID {
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleText)

	if err := b.SetCommands(menuCommands(commands)); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to publish telegram command menu")
	}

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleText(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	sessionID := fmt.Sprintf("telegram-%d", c.Chat().ID)

	text := strings.TrimSpace(c.Text())
	if text == "" {
		return nil
	}

	if reply, handled := b.commands.Execute(ctx, sessionID, text); handled {
		return b.send.sendMarkdown(ctx, c.Chat(), reply, false)
	}

	_ = c.Notify(tele.Typing)

	ans := b.engine.Ask(ctx, core.Query{Question: text, SessionID: sessionID})

	if err := b.send.sendMarkdown(ctx, c.Chat(), renderAnswer(ans), false); err != nil {
		logger.Error().Err(err).Msg("failed to deliver telegram answer")
		return err
	}
	return nil
}

// menuCommands mirrors the router's command set into the Telegram menu.
func menuCommands(router core.CmdRouter) []tele.Command {
	cmds := router.ListCommands()
	out := make([]tele.Command, 0, len(cmds))
	for _, cmd := range cmds {
		out = append(out, tele.Command{Text: cmd.Name(), Description: cmd.Description()})
	}
	return out
}
