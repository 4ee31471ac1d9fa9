package telegram

import (
	"strings"
	"testing"

	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/internal/engine/intent"
)

func TestRenderAnswer(t *testing.T) {
	t.Parallel()

	t.Run("appends the suggestion block", func(t *testing.T) {
		t.Parallel()
		ans := core.Answer{
			Text:        "Apre alle 7:00.",
			Intent:      intent.Orari,
			Suggestions: []string{"Serve la prenotazione?", "Dove si trova?"},
		}

		got := renderAnswer(ans)

		if !strings.HasPrefix(got, "Apre alle 7:00.") {
			t.Errorf("answer text must come first:\n%s", got)
		}
		want := "💡 **Potresti chiedere:**\n• Serve la prenotazione?\n• Dove si trova?\n"
		if !strings.Contains(got, want) {
			t.Errorf("missing suggestion block:\n%s", got)
		}
	})

	t.Run("no suggestions means the bare answer", func(t *testing.T) {
		t.Parallel()
		ans := core.Answer{Text: "Mi dispiace.", Intent: intent.General}

		if got := renderAnswer(ans); got != "Mi dispiace." {
			t.Errorf("renderAnswer = %q", got)
		}
	})

	t.Run("emergencies replace suggestions with the 118 guidance", func(t *testing.T) {
		t.Parallel()
		ans := core.Answer{
			Text:        "Chiama subito il 118.",
			Intent:      intent.Emergenza,
			Suggestions: []string{"non mostrato"},
		}

		got := renderAnswer(ans)

		if !strings.Contains(got, "🚨 **Importante:**") {
			t.Errorf("missing emergency block:\n%s", got)
		}
		if !strings.Contains(got, "Chiama immediatamente il 118 per emergenze mediche") {
			t.Errorf("missing the fixed guidance:\n%s", got)
		}
		if strings.Contains(got, "non mostrato") {
			t.Errorf("generated suggestions must not appear on emergencies:\n%s", got)
		}
	})
}

func TestSplitHTML(t *testing.T) {
	t.Parallel()

	t.Run("short text stays whole", func(t *testing.T) {
		t.Parallel()
		got := splitHTML("ciao", 10)
		if len(got) != 1 || got[0] != "ciao" {
			t.Errorf("splitHTML = %v", got)
		}
	})

	t.Run("splits at a newline break point", func(t *testing.T) {
		t.Parallel()
		text := strings.Repeat("a", 50) + "\n" + strings.Repeat("b", 50)

		got := splitHTML(text, 60)

		if len(got) != 2 {
			t.Fatalf("got %d chunks, want 2", len(got))
		}
		if got[0] != strings.Repeat("a", 50) {
			t.Errorf("chunk 0 = %q", got[0])
		}
		if got[1] != strings.Repeat("b", 50) {
			t.Errorf("chunk 1 = %q", got[1])
		}
	})

	t.Run("hard cut without a newline", func(t *testing.T) {
		t.Parallel()
		text := strings.Repeat("x", 130)

		got := splitHTML(text, 100)

		if len(got) != 2 {
			t.Fatalf("got %d chunks, want 2", len(got))
		}
		if len(got[0]) != 100 || len(got[1]) != 30 {
			t.Errorf("chunk lengths = %d, %d", len(got[0]), len(got[1]))
		}
	})
}
