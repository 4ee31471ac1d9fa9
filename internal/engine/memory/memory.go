// Package memory keeps per-session conversation state: recent turns,
// the facility under discussion and resolution of vague references
// ("quello", "lì") back to it.
package memory

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/sanibot/internal/core"
)

const DefaultMaxTurns = 5

// Turns included in the prompt dialog block.
const dialogTurns = 3

var ambiguousPronouns = []string{
	"suo", "sua", "suoi", "sue",
	"lì", "là", "li",
	"questa", "questo", "questi", "queste",
	"quella", "quello", "quelli", "quelle",
	"stesso", "stessa", "stessi", "stesse",
}

// Word-bounded markers that justify annotating the question with the
// facility from context. Boundaries are spelled out because \b is
// ASCII-only and would miss accented forms like "lì".
var referenceMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(li|lì|là)(?:[^\p{L}\p{N}_]|$)`),
	regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(questo|questa)(?:[^\p{L}\p{N}_]|$)`),
	regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(quello|quella)(?:[^\p{L}\p{N}_]|$)`),
}

var followUpIndicators = []string{
	"e per", "invece", "e se", "ma",
	"altro", "ancora", "anche",
	"stesso", "stessa", "sempre",
}

// Conversation is the memory of a single session. Safe for concurrent
// use; transports may hit the same session from different goroutines.
type Conversation struct {
	mu        sync.Mutex
	maxTurns  int
	history   []core.Turn
	facility  string
	service   string
	city      string
	updatedAt time.Time
}

// Summary is a point-in-time view of what a conversation is about.
type Summary struct {
	Facility  string
	Service   string
	City      string
	Turns     int
	UpdatedAt time.Time
}

func NewConversation(maxTurns int) *Conversation {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Conversation{maxTurns: maxTurns, updatedAt: time.Now()}
}

// SetHistory replaces the stored turns with client-supplied history,
// keeping only the most recent window. Context entities found in the
// assistant messages overwrite the current ones; absent entities keep
// their previous value.
func (c *Conversation) SetHistory(turns []core.Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(turns) > c.maxTurns {
		turns = turns[len(turns)-c.maxTurns:]
	}
	c.history = make([]core.Turn, len(turns))
	copy(c.history, turns)

	for _, t := range turns {
		c.absorb(t.Assistant)
	}
	c.updatedAt = time.Now()
}

// AddTurn records a completed exchange and updates the entity context
// from the assistant's answer.
func (c *Conversation) AddTurn(user, assistant string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = append(c.history, core.Turn{User: user, Assistant: assistant, At: time.Now()})
	if len(c.history) > c.maxTurns {
		c.history = c.history[len(c.history)-c.maxTurns:]
	}
	c.absorb(assistant)
	c.updatedAt = time.Now()
}

// absorb updates context entities from an assistant message.
// Callers must hold c.mu.
func (c *Conversation) absorb(assistant string) {
	if f := ExtractFacility(assistant); f != "" {
		c.facility = f
	}
	if s := ExtractService(assistant); s != "" {
		c.service = s
	}
	if city := ExtractCity(assistant); city != "" {
		c.city = city
	}
}

// Resolve annotates a question that leans on an ambiguous reference
// with the facility currently under discussion. Questions without such
// references, or conversations without a facility, pass through as-is.
func (c *Conversation) Resolve(question string) string {
	lower := strings.ToLower(question)

	ambiguous := false
	for _, p := range ambiguousPronouns {
		if strings.Contains(lower, p) {
			ambiguous = true
			break
		}
	}
	if !ambiguous {
		return question
	}

	c.mu.Lock()
	facility := c.facility
	c.mu.Unlock()
	if facility == "" {
		return question
	}

	for _, marker := range referenceMarkers {
		if marker.MatchString(lower) {
			return fmt.Sprintf("%s (riferito a %s)", question, facility)
		}
	}
	return question
}

// DialogContext renders the most recent turns for the prompt.
func (c *Conversation) DialogContext() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.history) == 0 {
		return ""
	}

	start := len(c.history) - dialogTurns
	if start < 0 {
		start = 0
	}

	var lines []string
	for _, turn := range c.history[start:] {
		lines = append(lines, fmt.Sprintf("Utente: %s", turn.User))
		lines = append(lines, fmt.Sprintf("Assistente: %s", turn.Assistant))
	}
	return strings.Join(lines, "\n")
}

// CurrentFacility returns the facility under discussion, or "".
func (c *Conversation) CurrentFacility() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.facility
}

// History returns a copy of the stored turns.
func (c *Conversation) History() []core.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.Turn, len(c.history))
	copy(out, c.history)
	return out
}

// IsFollowUp reports whether the question likely continues the current
// thread rather than opening a new one.
func (c *Conversation) IsFollowUp(question string) bool {
	lower := strings.ToLower(question)

	for _, p := range ambiguousPronouns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	for _, ind := range followUpIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return len(strings.Fields(question)) <= 3 && len(c.history) > 0
}

// Summary reports what the conversation currently holds.
func (c *Conversation) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Summary{
		Facility:  c.facility,
		Service:   c.service,
		City:      c.city,
		Turns:     len(c.history),
		UpdatedAt: c.updatedAt,
	}
}

// Clear drops all turns and context entities.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
	c.facility = ""
	c.service = ""
	c.city = ""
	c.updatedAt = time.Now()
}

// LastActive returns the time of the last mutation.
func (c *Conversation) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updatedAt
}
