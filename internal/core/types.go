package core

import "time"

const (
	SaniName          = "SaniBot"
	SaniUserAgent     = "SaniBot/0.1"
	SaniRepositoryURL = "https://github.com/sandevgo/sanibot"
	SaniVersion       = "0.1.0"

	// DefaultSessionID is used when a caller does not supply a session.
	DefaultSessionID = "default"

	// CentralinoNumber is the ULSS 9 switchboard suggested as a fallback
	// whenever the assistant cannot answer from its data.
	CentralinoNumber = "045 807 1111"
)

// Facility is a single healthcare facility from the dataset snapshot.
type Facility struct {
	Name        string            `json:"nome"`
	City        string            `json:"città"`
	Address     string            `json:"indirizzo"`
	Phone       string            `json:"telefono"`
	Hours       string            `json:"orari"`
	HoursDetail map[string]string `json:"orari_dettaglio,omitempty"`
	Services    []string          `json:"servizi,omitempty"`
	Access      *Accessibility    `json:"accessibilita,omitempty"`
	MapLink     string            `json:"link_mappa,omitempty"`
	WebPage     string            `json:"pagina_web,omitempty"`
}

// Accessibility flags for a facility.
type Accessibility struct {
	DisabledParking bool `json:"parcheggio_disabili"`
	Elevator        bool `json:"ascensore"`
	TactilePath     bool `json:"percorso_tattile"`
}

// FAQ is a curated question/answer pair. Tags are lowercase keywords that
// short-circuit matching before fuzzy comparison kicks in.
type FAQ struct {
	Question string   `json:"domanda"`
	Answer   string   `json:"risposta"`
	Tags     []string `json:"tags,omitempty"`
}

// Turn is one user/assistant exchange in a conversation.
type Turn struct {
	User      string    `json:"utente"`
	Assistant string    `json:"ai"`
	At        time.Time `json:"-"`
}

// Query is an inbound question with optional client-supplied history.
type Query struct {
	Question  string
	History   []Turn
	SessionID string
}

// Answer is the full pipeline result for a query.
type Answer struct {
	Text          string
	Facility      string
	Suggestions   []string
	Intent        string
	ResolvedQuery string
	RankedContext []string
	CacheHit      bool
	Elapsed       time.Duration
}

// ScoredFacility pairs a facility with its relevance score.
type ScoredFacility struct {
	Facility Facility
	Score    float64
}

// CachedAnswer is the payload stored in the response cache.
type CachedAnswer struct {
	Text     string `json:"risposta"`
	Facility string `json:"struttura,omitempty"`
}

// Suggestion is a follow-up question formatted for a UI.
type Suggestion struct {
	Text   string `json:"text"`
	Icon   string `json:"icon"`
	Action string `json:"action"`
}

// Interaction is one logged query for analytics. Question text is truncated
// by the recorder before it gets here.
type Interaction struct {
	ID        string
	SessionID string
	Question  string
	Intent    string
	Elapsed   time.Duration
	Success   bool
	At        time.Time
}

// CacheStats is a point-in-time view of response cache performance.
type CacheStats struct {
	Size          int    `json:"size"`
	Capacity      int    `json:"max_size"`
	Hits          int64  `json:"hits"`
	Misses        int64  `json:"misses"`
	Evictions     int64  `json:"evictions"`
	HitRate       string `json:"hit_rate"`
	TotalRequests int64  `json:"total_requests"`
}
