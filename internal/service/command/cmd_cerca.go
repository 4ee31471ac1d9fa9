package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/sanibot/internal/catalog"
	"github.com/sandevgo/sanibot/internal/core"
)

// searchLimit is how many facilities /cerca shows, a bit more than the
// ask pipeline puts into a prompt.
const searchLimit = 5

type searcher interface {
	Search(ctx context.Context, query string, limit int) []core.ScoredFacility
}

type SearchCommand struct {
	engine    searcher
	formatter *ResponseFormatter
}

func NewSearchCommand(engine searcher) *SearchCommand {
	return &SearchCommand{
		engine:    engine,
		formatter: NewResponseFormatter(),
	}
}

func (c *SearchCommand) Name() string {
	return "cerca"
}

func (c *SearchCommand) Description() string {
	return "Cerca una struttura per nome, città o servizio"
}

func (c *SearchCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Ricerca strutture"),
			c.formatter.Usage("/cerca <testo>"),
			c.formatter.Examples([]string{"/cerca prelievi villafranca", "/cerca pronto soccorso"}),
		), nil
	}

	query := strings.Join(args, " ")
	results := c.engine.Search(ctx, query, searchLimit)
	if len(results) == 0 {
		return c.formatter.Combine(
			c.formatter.Section("🔍", "Ricerca strutture",
				fmt.Sprintf("Nessun risultato per \"%s\".", query)),
			c.formatter.Tip("Prova con il nome della città o del servizio"),
		), nil
	}

	sections := []string{
		c.formatter.Section("🔍", fmt.Sprintf("Risultati per \"%s\"", query), ""),
	}
	for i := range results {
		r := &results[i]
		sections = append(sections, fmt.Sprintf("**%d · rilevanza %.0f%%**\n%s\n",
			i+1, r.Score*100, catalog.Describe(&r.Facility, "")))
	}
	return c.formatter.Combine(sections...), nil
}
