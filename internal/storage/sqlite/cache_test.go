package sqlite

import (
	"context"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/sandevgo/sanibot/internal/core"
)

func TestCacheRepo_SaveAndLoadEntries(t *testing.T) {
	ctx := context.Background()
	repo := NewCacheRepo(newTestDB(t))

	now := time.Now().UTC()
	entries := []core.CachedEntry{
		{
			Key:      "a1b2",
			Question: "a che ora apre l'ospedale di bussolengo?",
			Intent:   "orari",
			Payload: core.CachedAnswer{
				Text:     "Apre alle 7:00 dal lunedì al sabato.",
				Facility: "Ospedale di Bussolengo",
			},
			CreatedAt:   now.Add(-time.Hour),
			LastAccess:  now,
			AccessCount: 3,
		},
		{
			Key:      "c3d4",
			Question: "come prenoto una visita?",
			Intent:   "prenotazione",
			Payload: core.CachedAnswer{
				Text: "Chiamando il CUP al numero 800 123 456.",
			},
			CreatedAt:   now.Add(-2 * time.Hour),
			LastAccess:  now.Add(-time.Hour),
			AccessCount: 1,
		},
	}

	if err := repo.SaveEntries(ctx, entries); err != nil {
		t.Fatalf("SaveEntries() error = %v", err)
	}

	got, err := repo.LoadEntries(ctx)
	if err != nil {
		t.Fatalf("LoadEntries() error = %v", err)
	}
	sort.Slice(got, func(i, j int) bool { return got[i].Key < got[j].Key })
	if !reflect.DeepEqual(got, entries) {
		t.Errorf("LoadEntries() = %+v, want %+v", got, entries)
	}
}

func TestCacheRepo_SaveEntries_ReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := NewCacheRepo(newTestDB(t))

	now := time.Now().UTC()
	first := []core.CachedEntry{
		{Key: "k1", Question: "q1", Intent: "orari", Payload: core.CachedAnswer{Text: "r1"}, CreatedAt: now, LastAccess: now},
		{Key: "k2", Question: "q2", Intent: "servizi", Payload: core.CachedAnswer{Text: "r2"}, CreatedAt: now, LastAccess: now},
	}
	if err := repo.SaveEntries(ctx, first); err != nil {
		t.Fatalf("SaveEntries() error = %v", err)
	}

	second := []core.CachedEntry{
		{Key: "k3", Question: "q3", Intent: "generale", Payload: core.CachedAnswer{Text: "r3"}, CreatedAt: now, LastAccess: now},
	}
	if err := repo.SaveEntries(ctx, second); err != nil {
		t.Fatalf("SaveEntries() error = %v", err)
	}

	got, err := repo.LoadEntries(ctx)
	if err != nil {
		t.Fatalf("LoadEntries() error = %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Errorf("LoadEntries() = %+v, want only the second snapshot", got)
	}
}

func TestCacheRepo_LoadEntries_Empty(t *testing.T) {
	ctx := context.Background()
	repo := NewCacheRepo(newTestDB(t))

	got, err := repo.LoadEntries(ctx)
	if err != nil {
		t.Fatalf("LoadEntries() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("LoadEntries() = %+v, want no entries", got)
	}
}
