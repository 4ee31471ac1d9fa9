package state

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeEngine struct {
	active  string
	known   []string
	lastSet string
	err     error
}

func (f *fakeEngine) SetRanker(_ context.Context, name string) error {
	if f.err != nil {
		return f.err
	}
	f.lastSet = name
	f.active = name
	return nil
}

func (f *fakeEngine) ActiveRanker() string { return f.active }
func (f *fakeEngine) Rankers() []string    { return f.known }

func TestGlobalState_Delegates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	eng := &fakeEngine{active: "fuzzy", known: []string{"fuzzy", "tfidf"}}
	s := NewGlobalState(eng)

	if got := s.ActiveRanker(); got != "fuzzy" {
		t.Errorf("ActiveRanker = %q, want fuzzy", got)
	}
	if want := []string{"fuzzy", "tfidf"}; !reflect.DeepEqual(s.Rankers(), want) {
		t.Errorf("Rankers = %v, want %v", s.Rankers(), want)
	}

	if err := s.ChangeRanker(ctx, "tfidf"); err != nil {
		t.Fatalf("ChangeRanker(tfidf) = %v", err)
	}
	if eng.lastSet != "tfidf" {
		t.Errorf("engine saw %q, want tfidf", eng.lastSet)
	}

	eng.err = errors.New("unknown ranker")
	if err := s.ChangeRanker(ctx, "neurale"); err == nil {
		t.Error("ChangeRanker should pass the engine error through")
	}
}
