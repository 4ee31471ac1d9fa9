package analytics

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/sanibot/internal/core"
)

type stubStore struct {
	mu       sync.Mutex
	added    []core.Interaction
	countAll int64
	sessions int64
	addErr   error
}

var _ core.InteractionStore = (*stubStore)(nil)

func (s *stubStore) Add(_ context.Context, rec core.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, rec)
	return nil
}

func (s *stubStore) CountAll(context.Context) (int64, error)      { return s.countAll, nil }
func (s *stubStore) CountSessions(context.Context) (int64, error) { return s.sessions, nil }

func (s *stubStore) stored() []core.Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Interaction(nil), s.added...)
}

func TestService_Record_FlushesEveryTenth(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := &stubStore{}
	svc := NewService(store)

	for i := 0; i < 9; i++ {
		svc.Record(ctx, "s1", fmt.Sprintf("domanda %d", i), "generale", time.Second, true)
	}
	if n := len(store.stored()); n != 0 {
		t.Fatalf("stored = %d records before the tenth, want 0", n)
	}

	svc.Record(ctx, "s1", "domanda 9", "generale", time.Second, true)
	if n := len(store.stored()); n != 10 {
		t.Fatalf("stored = %d records after the tenth, want 10", n)
	}

	svc.Record(ctx, "s1", "domanda 10", "generale", time.Second, true)
	if n := len(store.stored()); n != 10 {
		t.Errorf("stored = %d, the eleventh record should stay buffered", n)
	}

	if err := svc.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if n := len(store.stored()); n != 11 {
		t.Errorf("stored = %d after explicit flush, want 11", n)
	}

	seen := make(map[string]bool)
	for _, rec := range store.stored() {
		if len(rec.ID) != 26 {
			t.Errorf("ID %q is not a ULID", rec.ID)
		}
		if seen[rec.ID] {
			t.Errorf("duplicate ID %q", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestService_Record_TruncatesQuestion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := &stubStore{}
	svc := NewService(store)

	long := strings.Repeat("perché ", 30)
	svc.Record(ctx, "s1", long, "generale", time.Second, true)

	if err := svc.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	got := store.stored()[0].Question
	if n := len([]rune(got)); n != 100 {
		t.Errorf("question stored with %d runes, want 100", n)
	}
	if !strings.HasPrefix(long, got) {
		t.Errorf("stored question %q is not a prefix of the original", got)
	}
}

func TestService_Stats_CurrentSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := &stubStore{countAll: 40, sessions: 7}
	svc := NewService(store)

	now := time.Date(2024, 3, 12, 10, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	svc.startedAt = now.Add(-90 * time.Second)

	svc.Record(ctx, "s1", "A che ora apre l'ospedale?", "orari", time.Second, true)
	svc.Record(ctx, "s1", "Quali servizi ci sono?", "orari", 2*time.Second, true)
	svc.Record(ctx, "s2", "Devo prenotare un esame", "prenotazione", 3*time.Second, false)

	got := svc.Stats(ctx)

	want := core.SessionUsage{
		TotalQueries:    3,
		AvgResponseTime: "2.00s",
		SuccessRate:     "66.7%",
		ErrorCount:      1,
		SessionDuration: "1m 30s",
		TopIntents: []core.IntentCount{
			{Intent: "orari", Count: 2},
			{Intent: "prenotazione", Count: 1},
		},
	}
	if !reflect.DeepEqual(got.CurrentSession, want) {
		t.Errorf("CurrentSession = %+v, want %+v", got.CurrentSession, want)
	}

	// Three records are still buffered, so they count on top of the store.
	if got.Historical.TotalQueriesAllTime != 43 {
		t.Errorf("TotalQueriesAllTime = %d, want 43", got.Historical.TotalQueriesAllTime)
	}
	if got.Historical.TotalSessions != 7 {
		t.Errorf("TotalSessions = %d, want 7", got.Historical.TotalSessions)
	}
}

func TestService_Stats_EmptySession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(&stubStore{})

	got := svc.Stats(ctx)

	if got.CurrentSession.TotalQueries != 0 {
		t.Errorf("TotalQueries = %d, want 0", got.CurrentSession.TotalQueries)
	}
	if got.CurrentSession.AvgResponseTime != "0.00s" {
		t.Errorf("AvgResponseTime = %q, want 0.00s", got.CurrentSession.AvgResponseTime)
	}
	if got.CurrentSession.SuccessRate != "100.0%" {
		t.Errorf("SuccessRate = %q, want 100.0%%", got.CurrentSession.SuccessRate)
	}
	if len(got.CurrentSession.TopIntents) != 0 {
		t.Errorf("TopIntents = %v, want none", got.CurrentSession.TopIntents)
	}
	if len(got.Insights.PeakHours) != 0 {
		t.Errorf("PeakHours = %v, want none", got.Insights.PeakHours)
	}
	wantTrend := map[string]string{"status": "Dati insufficienti"}
	if !reflect.DeepEqual(got.Insights.PerformanceTrend, wantTrend) {
		t.Errorf("PerformanceTrend = %v, want %v", got.Insights.PerformanceTrend, wantTrend)
	}
}

func TestService_Stats_Insights(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(&stubStore{})

	now := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.Record(ctx, "s1", "A che ora apre l'ospedale di Bussolengo?", "orari", time.Second, true)
	svc.Record(ctx, "s2", "A che ora apre l'ospedale di Villafranca?", "orari", time.Second, true)
	now = time.Date(2024, 3, 12, 15, 0, 0, 0, time.UTC)
	svc.Record(ctx, "s3", "Dove posso parcheggiare?", "generale", time.Second, true)

	got := svc.Stats(ctx)

	wantHours := []string{"09:00-10:00", "15:00-16:00"}
	if !reflect.DeepEqual(got.Insights.PeakHours, wantHours) {
		t.Errorf("PeakHours = %v, want %v", got.Insights.PeakHours, wantHours)
	}

	wantQuestions := []string{
		"a che ora apre l'ospedale di [CITTÀ]?",
		"dove posso parcheggiare?",
	}
	if !reflect.DeepEqual(got.Insights.CommonQuestions, wantQuestions) {
		t.Errorf("CommonQuestions = %v, want %v", got.Insights.CommonQuestions, wantQuestions)
	}

	wantTrend := map[string]string{
		"trend":       "stabile",
		"recent_avg":  "1.00s",
		"overall_avg": "1.00s",
	}
	if !reflect.DeepEqual(got.Insights.PerformanceTrend, wantTrend) {
		t.Errorf("PerformanceTrend = %v, want %v", got.Insights.PerformanceTrend, wantTrend)
	}
}

func TestService_Stats_PerformanceTrendImproves(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(&stubStore{})

	for i := 0; i < 2; i++ {
		svc.Record(ctx, "s1", "domanda lenta", "generale", 10*time.Second, true)
	}
	for i := 0; i < 10; i++ {
		svc.Record(ctx, "s1", "domanda veloce", "generale", time.Second, true)
	}

	got := svc.Stats(ctx).Insights.PerformanceTrend
	want := map[string]string{
		"trend":       "miglioramento",
		"recent_avg":  "1.00s",
		"overall_avg": "2.50s",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PerformanceTrend = %v, want %v", got, want)
	}
}

func TestService_Flush_ReportsStoreFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := &stubStore{addErr: errors.New("disk full")}
	svc := NewService(store)

	svc.Record(ctx, "s1", "domanda", "generale", time.Second, true)

	err := svc.Flush(ctx)
	if err == nil || !strings.Contains(err.Error(), "0 of 1 saved") {
		t.Errorf("Flush() error = %v, want the save tally", err)
	}
}

func TestSimplifyQuestion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"A che ora apre l'Ospedale di Bussolengo?", "a che ora apre l'ospedale di [CITTÀ]?"},
		{"Apre alle 7:00 o alle 8:30?", "apre alle [ORA] o alle [ORA]?"},
		{"Orari 8-14 a Verona", "orari [ORARIO] a [CITTÀ]"},
		{"Il centro di San Bonifacio", "il centro di [CITTÀ]"},
		{"  Quali servizi ci sono?  ", "quali servizi ci sono?"},
	}
	for _, tt := range tests {
		if got := simplifyQuestion(tt.in); got != tt.want {
			t.Errorf("simplifyQuestion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{42 * time.Second, "42s"},
		{5*time.Minute + 3*time.Second, "5m 3s"},
		{time.Hour + 2*time.Minute, "1h 2m"},
		{26 * time.Hour, "26h 0m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
