// Package engine runs the ask pipeline: classify the question, resolve
// references against session memory, serve cached or FAQ answers when
// possible, otherwise rank facilities, build a prompt and generate.
package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/sanibot/internal/catalog"
	"github.com/sandevgo/sanibot/internal/config"
	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/internal/engine/cache"
	"github.com/sandevgo/sanibot/internal/engine/intent"
	"github.com/sandevgo/sanibot/internal/engine/memory"
	"github.com/sandevgo/sanibot/internal/engine/prompt"
	"github.com/sandevgo/sanibot/internal/engine/rank"
	"github.com/sandevgo/sanibot/internal/engine/suggest"
	"github.com/sandevgo/sanibot/pkg/fuzzy"
	"github.com/sandevgo/sanibot/pkg/log"
)

// Apologies returned instead of errors; the assistant never fails a user.
const (
	apologyDataUnavailable = "Mi dispiace, c'è un problema temporaneo nel caricamento dei dati. Riprova tra qualche istante."
	apologyGeneration      = "Mi dispiace, ho avuto un problema nel generare la risposta. Puoi riprovare o chiamare il centralino ULSS9 al 045 807 1111."
)

// Minimum similarity between the question and a FAQ question for the
// stored answer to be served directly.
const faqMatchThreshold = 0.7

// Datasource hands out the current facility dataset snapshot.
type Datasource interface {
	Snapshot() *catalog.Snapshot
}

var _ Datasource = (*catalog.Catalog)(nil)

// Recorder persists usage analytics for answered questions.
type Recorder interface {
	Record(ctx context.Context, sessionID, question, intentName string, elapsed time.Duration, success bool)
}

// Engine wires the pipeline collaborators together. Safe for concurrent
// use; the active ranking backend can be switched at runtime.
type Engine struct {
	cfg        *config.EngineConfig
	data       Datasource
	classifier *intent.Classifier
	sessions   *memory.Sessions
	cache      *cache.Cache
	prompts    *prompt.Builder
	generator  core.Generator
	analytics  Recorder
	now        func() time.Time

	mu      sync.RWMutex
	ranker  rank.Ranker
	rankers map[string]rank.Ranker
}

// New builds an engine. The first ranker is the active backend; the rest
// stay registered for runtime switching.
func New(
	cfg *config.EngineConfig,
	data Datasource,
	classifier *intent.Classifier,
	sessions *memory.Sessions,
	respCache *cache.Cache,
	prompts *prompt.Builder,
	generator core.Generator,
	analytics Recorder,
	rankers ...rank.Ranker,
) *Engine {
	e := &Engine{
		cfg:        cfg,
		data:       data,
		classifier: classifier,
		sessions:   sessions,
		cache:      respCache,
		prompts:    prompts,
		generator:  generator,
		analytics:  analytics,
		now:        time.Now,
		rankers:    make(map[string]rank.Ranker, len(rankers)),
	}
	for _, r := range rankers {
		e.rankers[r.Name()] = r
	}
	if len(rankers) > 0 {
		e.ranker = rankers[0]
	}
	return e
}

// Ask answers a user question. The question must be non-empty after
// trimming; transports validate input before calling. Failures come back
// as apology answers, never as errors.
func (e *Engine) Ask(ctx context.Context, q core.Query) core.Answer {
	start := e.now()
	logger := log.FromCtx(ctx)

	question := strings.TrimSpace(q.Question)
	sessionID := q.SessionID
	if sessionID == "" {
		sessionID = core.DefaultSessionID
	}
	logger.Info().
		Str("session", sessionID).
		Str("question", firstRunes(question, 50)).
		Msg("new question")

	snap := e.data.Snapshot()
	if snap == nil {
		logger.Error().Msg("facility dataset unavailable")
		return core.Answer{
			Text:    apologyDataUnavailable,
			Intent:  intent.General,
			Elapsed: e.now().Sub(start),
		}
	}

	intentName := e.classifier.Classify(question)
	logger.Info().Str("intent", intentName).Msg("intent classified")
	if intent.IsEmergency(question) {
		logger.Warn().Msg("possible emergency in question")
	}
	if svc := intent.ServiceHint(question); svc != "" {
		logger.Debug().Str("service", svc).Msg("specific service requested")
	}

	sess := e.sessions.Get(sessionID)
	if len(q.History) > 0 {
		sess.SetHistory(q.History)
	}
	dialog := sess.DialogContext()
	lastFacility := sess.CurrentFacility()
	if sess.IsFollowUp(question) {
		logger.Debug().Msg("follow-up question")
	}

	resolved := sess.Resolve(question)
	if resolved != question {
		logger.Debug().Str("resolved", resolved).Msg("ambiguous reference resolved")
	}

	if hit, ok := e.cache.Get(resolved, intentName); ok {
		logger.Info().Msg("answer served from cache")
		return core.Answer{
			Text:          hit.Text,
			Facility:      hit.Facility,
			Suggestions:   suggest.Generate(question, hit.Text, intentName, e.suggestionLimit()),
			Intent:        intentName,
			ResolvedQuery: resolved,
			CacheHit:      true,
			Elapsed:       e.now().Sub(start),
		}
	}

	if answer, ok := matchFAQ(resolved, snap.FAQs); ok {
		logger.Info().Msg("answer found in FAQ")
		e.cache.Set(ctx, resolved, intentName, core.CachedAnswer{Text: answer})
		return core.Answer{
			Text:          answer,
			Suggestions:   suggest.Generate(question, answer, intentName, e.suggestionLimit()),
			Intent:        intentName,
			ResolvedQuery: resolved,
			Elapsed:       e.now().Sub(start),
		}
	}

	contextParts := e.currentRanker().Context(resolved, intentName)
	fullContext := strings.Join(contextParts, "\n") + extraContext(intentName, snap.UsefulNumbers)
	promptText := e.prompts.Build(ctx, fullContext, dialog, resolved, intentName)

	text, err := e.generator.Generate(ctx, promptText)
	if err != nil {
		elapsed := e.now().Sub(start)
		logger.Error().Err(err).Msg("answer generation failed")
		e.record(ctx, sessionID, question, intentName, elapsed, false)
		return core.Answer{
			Text:    apologyGeneration,
			Intent:  intentName,
			Elapsed: elapsed,
		}
	}
	text = strings.TrimSpace(text)

	mentioned := memory.ExtractFacility(text)
	e.cache.Set(ctx, resolved, intentName, core.CachedAnswer{Text: text, Facility: mentioned})
	sess.AddTurn(question, text)

	elapsed := e.now().Sub(start)
	e.record(ctx, sessionID, question, intentName, elapsed, true)

	facility := mentioned
	if facility == "" {
		facility = lastFacility
	}
	return core.Answer{
		Text:          text,
		Facility:      facility,
		Suggestions:   suggest.Generate(question, text, intentName, e.suggestionLimit()),
		Intent:        intentName,
		ResolvedQuery: resolved,
		RankedContext: contextParts,
		Elapsed:       elapsed,
	}
}

// Search ranks facilities against free text with the active backend.
// Used by the /cerca command; the classifier steers intent weighting
// the same way it does for full questions.
func (e *Engine) Search(ctx context.Context, query string, limit int) []core.ScoredFacility {
	intentName := e.classifier.Classify(query)
	results := e.currentRanker().Rank(query, intentName, limit)
	log.FromCtx(ctx).Debug().
		Str("intent", intentName).
		Int("results", len(results)).
		Msg("facility search")
	return results
}

// SetRanker switches the active ranking backend by name.
func (e *Engine) SetRanker(ctx context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.rankers[name]
	if !ok {
		return fmt.Errorf("unknown ranker %q", name)
	}
	e.ranker = r
	log.FromCtx(ctx).Info().Str("ranker", name).Msg("ranking backend switched")
	return nil
}

// ActiveRanker returns the name of the backend answering questions now.
func (e *Engine) ActiveRanker() string {
	return e.currentRanker().Name()
}

// Rankers lists the registered backend names, sorted.
func (e *Engine) Rankers() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.rankers))
	for name := range e.rankers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) currentRanker() rank.Ranker {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ranker
}

func (e *Engine) suggestionLimit() int {
	if e.cfg != nil && e.cfg.SuggestionLimit > 0 {
		return e.cfg.SuggestionLimit
	}
	return suggest.DefaultMax
}

func (e *Engine) record(ctx context.Context, sessionID, question, intentName string, elapsed time.Duration, success bool) {
	if e.analytics == nil {
		return
	}
	e.analytics.Record(ctx, sessionID, question, intentName, elapsed, success)
}

// matchFAQ scans the FAQ list in order: a tag contained in the question
// wins immediately, otherwise a fuzzy match against the stored question
// above the threshold does.
func matchFAQ(question string, faqs []core.FAQ) (string, bool) {
	q := strings.ToLower(question)
	for _, f := range faqs {
		for _, tag := range f.Tags {
			if strings.Contains(q, tag) {
				return f.Answer, true
			}
		}
		if fuzzy.Ratio(q, strings.ToLower(f.Question)) > faqMatchThreshold {
			return f.Answer, true
		}
	}
	return "", false
}

// extraContext appends per-intent lines the dataset cannot express.
func extraContext(intentName string, numbers map[string]string) string {
	switch intentName {
	case intent.Prenotazione:
		cup := numbers["cup_prenotazioni"]
		if cup == "" {
			cup = "N/D"
		}
		return "\nPer prenotazioni: CUP " + cup
	case intent.Emergenza:
		return "\nPer emergenze: chiamare il 118"
	}
	return ""
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
