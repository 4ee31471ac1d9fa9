package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/pkg/log"
)

const (
	DefaultSessionTTL      = 30 * time.Minute
	defaultJanitorInterval = 5 * time.Minute
)

// Sessions keys conversations by session ID. Conversations are created
// on first use and evicted after sitting idle past the TTL.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Conversation
	maxTurns int
	ttl      time.Duration
}

func NewSessions(maxTurns int, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		sessions: make(map[string]*Conversation),
		maxTurns: maxTurns,
		ttl:      ttl,
	}
}

// Get returns the conversation for a session, creating it when absent.
// An empty ID maps to the shared default session.
func (s *Sessions) Get(sessionID string) *Conversation {
	if sessionID == "" {
		sessionID = core.DefaultSessionID
	}

	s.mu.RLock()
	conv, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return conv
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if conv, ok = s.sessions[sessionID]; ok {
		return conv
	}
	conv = NewConversation(s.maxTurns)
	s.sessions[sessionID] = conv
	return conv
}

// Remember appends a turn to the session's conversation.
func (s *Sessions) Remember(sessionID string, turn core.Turn) {
	s.Get(sessionID).AddTurn(turn.User, turn.Assistant)
}

// History returns a copy of the session's stored turns.
func (s *Sessions) History(sessionID string) []core.Turn {
	return s.Get(sessionID).History()
}

// Clear resets the session's conversation.
func (s *Sessions) Clear(sessionID string) {
	s.Get(sessionID).Clear()
}

// Len reports how many sessions are live.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// evictIdle removes conversations idle past the TTL and reports how
// many were dropped.
func (s *Sessions) evictIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, conv := range s.sessions {
		if now.Sub(conv.LastActive()) > s.ttl {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Janitor periodically sweeps idle sessions.
type Janitor struct {
	sessions *Sessions
	Interval time.Duration
}

func NewJanitor(sessions *Sessions) *Janitor {
	return &Janitor{
		sessions: sessions,
		Interval: defaultJanitorInterval,
	}
}

func (j *Janitor) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Dur("ttl", j.sessions.ttl).Msg("starting session janitor")

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := j.sessions.evictIdle(time.Now()); n > 0 {
				logger.Debug().Int("evicted", n).Msg("idle sessions dropped")
			}
		}
	}
}

func (j *Janitor) Shutdown(ctx context.Context) error {
	return nil
}
