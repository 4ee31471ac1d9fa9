package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/sanibot/internal/core"
)

type statsSource interface {
	Stats(ctx context.Context) core.UsageStats
}

type cacheSource interface {
	Stats() core.CacheStats
}

type StatsCommand struct {
	stats     statsSource
	cache     cacheSource
	formatter *ResponseFormatter
}

func NewStatsCommand(
	stats statsSource,
	respCache cacheSource,
) *StatsCommand {
	return &StatsCommand{
		stats:     stats,
		cache:     respCache,
		formatter: NewResponseFormatter(),
	}
}

func (c *StatsCommand) Name() string {
	return "stats"
}

func (c *StatsCommand) Description() string {
	return "Mostra le statistiche d'uso"
}

func (c *StatsCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	usage := c.stats.Stats(ctx)
	cacheStats := c.cache.Stats()

	session := c.formatter.Label("Domande", fmt.Sprintf("%d", usage.CurrentSession.TotalQueries)) +
		c.formatter.Label("Tempo medio", usage.CurrentSession.AvgResponseTime) +
		c.formatter.Label("Risposte riuscite", usage.CurrentSession.SuccessRate) +
		c.formatter.Label("Errori", fmt.Sprintf("%d", usage.CurrentSession.ErrorCount)) +
		c.formatter.Label("Durata", usage.CurrentSession.SessionDuration)

	sections := []string{
		c.formatter.Info("Statistiche d'uso"),
		c.formatter.Section("💬", "Sessione corrente", session),
	}

	if len(usage.CurrentSession.TopIntents) > 0 {
		items := make([]string, 0, len(usage.CurrentSession.TopIntents))
		for _, ic := range usage.CurrentSession.TopIntents {
			items = append(items, fmt.Sprintf("%s (%d)", ic.Intent, ic.Count))
		}
		sections = append(sections, c.formatter.Section("🎯", "Intent più frequenti", c.formatter.List(items)))
	}

	historical := c.formatter.Label("Domande totali", fmt.Sprintf("%d", usage.Historical.TotalQueriesAllTime)) +
		c.formatter.Label("Sessioni", fmt.Sprintf("%d", usage.Historical.TotalSessions))
	if len(usage.Insights.PeakHours) > 0 {
		historical += c.formatter.Label("Ore di punta", strings.Join(usage.Insights.PeakHours, ", "))
	}
	sections = append(sections, c.formatter.Section("📚", "Storico", historical))

	cacheBlock := c.formatter.Label("Voci", fmt.Sprintf("%d/%d", cacheStats.Size, cacheStats.Capacity)) +
		c.formatter.Label("Hit rate", cacheStats.HitRate)
	sections = append(sections, c.formatter.Section("⚡", "Cache risposte", cacheBlock))

	return c.formatter.Combine(sections...), nil
}
