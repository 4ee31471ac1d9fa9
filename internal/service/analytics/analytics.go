// Package analytics records usage metrics for answered questions and
// aggregates them into the stats payload served by the transports.
package analytics

import (
	"context"
	"crypto/rand"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/pkg/log"
)

// Every flushEvery-th record triggers a write-through to the store.
const flushEvery = 10

// Question text is cut before it leaves the engine, for privacy.
const maxQuestionRunes = 100

// Service keeps the current process session in memory and writes records
// through to the interaction store in batches.
type Service struct {
	store core.InteractionStore
	now   func() time.Time

	mu        sync.Mutex
	startedAt time.Time
	records   []core.Interaction
	intents   map[string]int
	elapsed   []time.Duration
	errors    int
	pending   []core.Interaction
	entropy   *ulid.MonotonicEntropy
}

func NewService(store core.InteractionStore) *Service {
	return &Service{
		store:     store,
		now:       time.Now,
		startedAt: time.Now(),
		intents:   make(map[string]int),
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
}

// Record logs one answered question. Persistence failures are logged and
// never reach the caller; losing a metric must not break an answer.
func (s *Service) Record(ctx context.Context, sessionID, question, intentName string, elapsed time.Duration, success bool) {
	now := s.now()

	s.mu.Lock()
	rec := core.Interaction{
		ID:        ulid.MustNew(ulid.Timestamp(now), s.entropy).String(),
		SessionID: sessionID,
		Question:  truncateRunes(question, maxQuestionRunes),
		Intent:    intentName,
		Elapsed:   elapsed,
		Success:   success,
		At:        now,
	}
	s.records = append(s.records, rec)
	s.intents[intentName]++
	s.elapsed = append(s.elapsed, elapsed)
	if !success {
		s.errors++
	}
	s.pending = append(s.pending, rec)
	shouldFlush := len(s.records)%flushEvery == 0
	s.mu.Unlock()

	if shouldFlush {
		if err := s.Flush(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("failed to flush analytics")
		}
	}

	log.FromCtx(ctx).Debug().
		Str("intent", intentName).
		Dur("elapsed", elapsed).
		Bool("success", success).
		Msg("query recorded")
}

// Flush writes the buffered records to the store.
func (s *Service) Flush(ctx context.Context) error {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	var firstErr error
	saved := 0
	for _, rec := range pending {
		if err := s.store.Add(ctx, rec); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		saved++
	}
	if firstErr != nil {
		return fmt.Errorf("persist interactions (%d of %d saved): %w", saved, len(pending), firstErr)
	}

	log.FromCtx(ctx).Debug().Int("interactions", saved).Msg("analytics flushed")
	return nil
}

// Stats aggregates the current session and the store into one payload.
func (s *Service) Stats(ctx context.Context) core.UsageStats {
	s.mu.Lock()
	records := append([]core.Interaction(nil), s.records...)
	intents := make(map[string]int, len(s.intents))
	for k, v := range s.intents {
		intents[k] = v
	}
	elapsed := append([]time.Duration(nil), s.elapsed...)
	errors := s.errors
	startedAt := s.startedAt
	pendingCount := len(s.pending)
	s.mu.Unlock()

	total := len(records)
	avg := time.Duration(0)
	if total > 0 {
		avg = avgDuration(elapsed)
	}
	successRate := 100.0
	if total > 0 {
		successRate = float64(total-errors) / float64(total) * 100
	}

	stored, err := s.store.CountAll(ctx)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to count interactions")
	}
	sessions, err := s.store.CountSessions(ctx)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to count sessions")
	}

	return core.UsageStats{
		CurrentSession: core.SessionUsage{
			TotalQueries:    total,
			AvgResponseTime: fmt.Sprintf("%.2fs", avg.Seconds()),
			SuccessRate:     fmt.Sprintf("%.1f%%", successRate),
			ErrorCount:      errors,
			SessionDuration: formatDuration(s.now().Sub(startedAt)),
			TopIntents:      topIntents(intents, 5),
		},
		Historical: core.HistoricalUsage{
			// Flushed records are already in the store; only the buffer
			// is added on top.
			TotalQueriesAllTime: stored + int64(pendingCount),
			TotalSessions:       sessions,
		},
		Insights: core.UsageInsights{
			PeakHours:        peakHours(records),
			CommonQuestions:  commonQuestions(records),
			PerformanceTrend: performanceTrend(elapsed),
		},
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func avgDuration(ds []time.Duration) time.Duration {
	var sum time.Duration
	for _, d := range ds {
		sum += d
	}
	return sum / time.Duration(len(ds))
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, sec)
	default:
		return fmt.Sprintf("%ds", sec)
	}
}

func topIntents(counts map[string]int, n int) []core.IntentCount {
	out := make([]core.IntentCount, 0, len(counts))
	for intentName, count := range counts {
		out = append(out, core.IntentCount{Intent: intentName, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Intent < out[j].Intent
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func peakHours(records []core.Interaction) []string {
	hourly := make(map[int]int)
	for _, rec := range records {
		hourly[rec.At.Hour()]++
	}
	if len(hourly) == 0 {
		return nil
	}

	type hourCount struct{ hour, count int }
	counts := make([]hourCount, 0, len(hourly))
	for h, c := range hourly {
		counts = append(counts, hourCount{hour: h, count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].hour < counts[j].hour
	})
	if len(counts) > 3 {
		counts = counts[:3]
	}

	out := make([]string, len(counts))
	for i, hc := range counts {
		out[i] = fmt.Sprintf("%02d:00-%02d:00", hc.hour, hc.hour+1)
	}
	return out
}

func commonQuestions(records []core.Interaction) []string {
	patterns := make(map[string]int)
	for _, rec := range records {
		patterns[simplifyQuestion(rec.Question)]++
	}
	if len(patterns) == 0 {
		return nil
	}

	type patternCount struct {
		pattern string
		count   int
	}
	counts := make([]patternCount, 0, len(patterns))
	for p, c := range patterns {
		counts = append(counts, patternCount{pattern: p, count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].pattern < counts[j].pattern
	})
	if len(counts) > 5 {
		counts = counts[:5]
	}

	out := make([]string, len(counts))
	for i, pc := range counts {
		out[i] = pc.pattern
	}
	return out
}

var (
	clockRe     = regexp.MustCompile(`\d{1,2}:\d{2}`)
	hourRangeRe = regexp.MustCompile(`\d{1,2}-\d{1,2}`)
)

var knownCities = []string{
	"verona", "malcesine", "bussolengo", "villafranca",
	"bovolone", "marzana", "san bonifacio",
}

// simplifyQuestion collapses city names and clock times into placeholders
// so differently phrased questions group into one pattern.
func simplifyQuestion(q string) string {
	q = strings.ToLower(q)
	for _, city := range knownCities {
		q = strings.ReplaceAll(q, city, "[CITTÀ]")
	}
	q = clockRe.ReplaceAllString(q, "[ORA]")
	q = hourRangeRe.ReplaceAllString(q, "[ORARIO]")
	return strings.TrimSpace(q)
}

func performanceTrend(elapsed []time.Duration) map[string]string {
	if len(elapsed) == 0 {
		return map[string]string{"status": "Dati insufficienti"}
	}

	overall := avgDuration(elapsed)
	recent := overall
	if len(elapsed) >= 10 {
		recent = avgDuration(elapsed[len(elapsed)-10:])
	}

	trend := "stabile"
	switch {
	case recent < time.Duration(float64(overall)*0.8):
		trend = "miglioramento"
	case recent > time.Duration(float64(overall)*1.2):
		trend = "peggioramento"
	}

	return map[string]string{
		"trend":       trend,
		"recent_avg":  fmt.Sprintf("%.2fs", recent.Seconds()),
		"overall_avg": fmt.Sprintf("%.2fs", overall.Seconds()),
	}
}
