// Package rank orders facilities by relevance to a question. Two
// backends implement the same contract: direct fuzzy scoring over
// facility fields, and a TF-IDF chunk index with cosine similarity.
package rank

import (
	"github.com/sandevgo/sanibot/internal/core"
)

// Placeholder strings returned when ranking produces nothing usable.
const (
	NoFacilities      = "Nessuna struttura disponibile nel database."
	NoRelevantMatch   = "Non ho trovato strutture pertinenti alla tua richiesta. Prova a riformulare la domanda."
	NoRelevantContext = "Non ho trovato informazioni pertinenti."
)

// DefaultLimit is the number of facilities considered per question.
const DefaultLimit = 3

// Minimum score for a candidate to appear in results.
const scoreFloor = 0.1

// Top score beyond which secondary results are suppressed.
const dominantScore = 0.8

// Ranker scores facilities against a question and assembles the
// excerpt strings fed to the prompt. Implementations are safe for
// concurrent use.
type Ranker interface {
	// Rank returns facilities ordered by non-increasing score, floored
	// and capped per the backend's rules. May be empty.
	Rank(question, intentName string, limit int) []core.ScoredFacility

	// Context returns ranked excerpt strings for prompt assembly.
	// Never nil: fallback placeholders come back as a single element.
	Context(question, intentName string) []string

	// Name identifies the backend for logs and runtime switching.
	Name() string
}

// Scorer measures similarity of two strings in [0, 1]. The fuzzy
// backend takes it as a strategy so scoring stays swappable.
type Scorer func(a, b string) float64
