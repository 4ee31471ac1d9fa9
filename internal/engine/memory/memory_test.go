package memory

import (
	"testing"
	"time"

	"github.com/sandevgo/sanibot/internal/core"
)

func TestConversation_AddTurnKeepsWindow(t *testing.T) {
	t.Parallel()
	c := NewConversation(2)
	c.AddTurn("u1", "a1")
	c.AddTurn("u2", "a2")
	c.AddTurn("u3", "a3")

	h := c.History()
	if len(h) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(h))
	}
	if h[0].User != "u2" || h[1].User != "u3" {
		t.Errorf("oldest turn not dropped: %+v", h)
	}
}

func TestConversation_Resolve(t *testing.T) {
	t.Parallel()

	withFacility := func() *Conversation {
		c := NewConversation(5)
		c.AddTurn("Dove posso fare fisioterapia?", "Ti consiglio l'Ospedale di Malcesine.")
		return c
	}

	tests := []struct {
		name     string
		conv     *Conversation
		question string
		expected string
	}{
		{
			name:     "place adverb resolved",
			conv:     withFacility(),
			question: "Che orari fa lì?",
			expected: "Che orari fa lì? (riferito a Ospedale di Malcesine)",
		},
		{
			name:     "demonstrative resolved",
			conv:     withFacility(),
			question: "Com'è questo centro?",
			expected: "Com'è questo centro? (riferito a Ospedale di Malcesine)",
		},
		{
			name:     "pronoun inside word is not a reference",
			conv:     withFacility(),
			question: "Quali servizi offre?",
			expected: "Quali servizi offre?",
		},
		{
			name:     "no facility in context",
			conv:     NewConversation(5),
			question: "Quanto costa quello?",
			expected: "Quanto costa quello?",
		},
		{
			name:     "plain question untouched",
			conv:     withFacility(),
			question: "Orari del CUP di Verona",
			expected: "Orari del CUP di Verona",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conv.Resolve(tt.question); got != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.question, got, tt.expected)
			}
		})
	}
}

func TestConversation_DialogContext(t *testing.T) {
	t.Parallel()
	c := NewConversation(5)
	if c.DialogContext() != "" {
		t.Error("empty conversation should render empty dialog")
	}

	c.AddTurn("u1", "a1")
	c.AddTurn("u2", "a2")
	c.AddTurn("u3", "a3")
	c.AddTurn("u4", "a4")

	expected := "Utente: u2\nAssistente: a2\n" +
		"Utente: u3\nAssistente: a3\n" +
		"Utente: u4\nAssistente: a4"
	if got := c.DialogContext(); got != expected {
		t.Errorf("DialogContext() =\n%s\nwant\n%s", got, expected)
	}
}

func TestConversation_SetHistory(t *testing.T) {
	t.Parallel()
	c := NewConversation(5)

	turns := make([]core.Turn, 0, 7)
	for i := 0; i < 6; i++ {
		turns = append(turns, core.Turn{User: "vecchia domanda", Assistant: "vecchia risposta"})
	}
	turns = append(turns, core.Turn{
		User:      "Dove faccio le analisi?",
		Assistant: "Al Centro Prelievi di Bovolone, reparto cardiologia.",
	})

	c.SetHistory(turns)

	if got := len(c.History()); got != 5 {
		t.Fatalf("expected trimmed history of 5, got %d", got)
	}

	sum := c.Summary()
	if sum.Facility != "Centro Prelievi di Bovolone" {
		t.Errorf("facility = %q", sum.Facility)
	}
	if sum.Service != "centro prelievi" {
		t.Errorf("service = %q", sum.Service)
	}
	if sum.City != "Bovolone" {
		t.Errorf("city = %q", sum.City)
	}
	if sum.Turns != 5 {
		t.Errorf("turns = %d", sum.Turns)
	}
}

func TestConversation_IsFollowUp(t *testing.T) {
	t.Parallel()
	c := NewConversation(5)
	c.AddTurn("u1", "a1")

	tests := []struct {
		question string
		expected bool
	}{
		{"E per i bambini?", true},
		{"Invece il sabato?", true},
		{"Orari weekend?", true}, // short question with history
		{"Dove si trova il pronto soccorso principale?", false},
	}

	for _, tt := range tests {
		if got := c.IsFollowUp(tt.question); got != tt.expected {
			t.Errorf("IsFollowUp(%q) = %v, want %v", tt.question, got, tt.expected)
		}
	}
}

func TestConversation_Clear(t *testing.T) {
	t.Parallel()
	c := NewConversation(5)
	c.AddTurn("domanda", "Ti consiglio l'Ospedale di Malcesine.")
	c.Clear()

	if len(c.History()) != 0 {
		t.Error("history not cleared")
	}
	if c.CurrentFacility() != "" {
		t.Error("facility not cleared")
	}
}

func TestSessions_GetCreatesAndShares(t *testing.T) {
	t.Parallel()
	s := NewSessions(5, time.Minute)

	a := s.Get("telegram-42")
	b := s.Get("telegram-42")
	if a != b {
		t.Error("same session ID should return the same conversation")
	}
	if s.Get("web-1") == a {
		t.Error("different session IDs should not share a conversation")
	}
	if s.Get("") != s.Get(core.DefaultSessionID) {
		t.Error("empty session ID should map to the default session")
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestSessions_MemoryInterface(t *testing.T) {
	t.Parallel()
	var m core.Memory = NewSessions(5, time.Minute)

	m.Remember("s1", core.Turn{User: "ciao", Assistant: "salve"})
	h := m.History("s1")
	if len(h) != 1 || h[0].User != "ciao" {
		t.Fatalf("unexpected history: %+v", h)
	}

	m.Clear("s1")
	if len(m.History("s1")) != 0 {
		t.Error("history not cleared through interface")
	}
}

func TestSessions_EvictIdle(t *testing.T) {
	t.Parallel()
	s := NewSessions(5, 10*time.Millisecond)
	s.Get("stale")

	time.Sleep(20 * time.Millisecond)
	s.Get("fresh")

	if n := s.evictIdle(time.Now()); n != 1 {
		t.Fatalf("evicted = %d, want 1", n)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}
