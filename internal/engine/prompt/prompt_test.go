package prompt

import (
	"context"
	"strings"
	"testing"

	"github.com/sandevgo/sanibot/internal/engine/intent"
)

func TestBuilder_Build_AssemblesSections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := NewBuilder(0)

	got := b.Build(ctx, "Testo struttura.", "", "Dove si trova il distretto?", intent.General)

	want := baseInstructions +
		"\n\n\n\nINFORMAZIONI STRUTTURE DISPONIBILI:\nTesto struttura.\n\n" +
		"DOMANDA UTENTE: Dove si trova il distretto?\n" +
		closingReminder
	if got != want {
		t.Errorf("assembled prompt mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestBuilder_Build_SectionOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := NewBuilder(0)

	got := b.Build(ctx, "Orari: 8:00-20:00.", "Utente: ciao\nSaniBot: Salve!", "A che ora apre?", intent.Orari)

	if !strings.HasPrefix(got, "Sei un assistente virtuale dell'ULSS 9 Scaligera") {
		t.Errorf("prompt does not open with the base instructions: %q", got[:60])
	}
	if !strings.HasSuffix(got, "LA TUA RISPOSTA:") {
		t.Errorf("prompt does not close with the answer cue")
	}

	markers := []string{
		"FOCUS: L'utente chiede informazioni sugli ORARI.",
		"Esempio di risposta per orari:",
		"INFORMAZIONI STRUTTURE DISPONIBILI:\nOrari: 8:00-20:00.\n",
		"CONVERSAZIONE PRECEDENTE:\nUtente: ciao\nSaniBot: Salve!\n",
		"DOMANDA UTENTE: A che ora apre?",
		"RICORDA: Rispondi in modo semplice, chiaro e gentile.",
	}
	last := -1
	for _, m := range markers {
		i := strings.Index(got, m)
		if i < 0 {
			t.Fatalf("prompt lacks %q", m)
		}
		if i <= last {
			t.Errorf("section %q appears out of order", m)
		}
		last = i
	}
}

func TestBuilder_Build_IntentFocus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		intentName  string
		focus       string
		wantExample bool
	}{
		{"orari", intent.Orari, "FOCUS: L'utente chiede informazioni sugli ORARI.", true},
		{"servizi", intent.Servizi, "FOCUS: L'utente chiede quali SERVIZI sono disponibili.", true},
		{"prenotazione", intent.Prenotazione, "FOCUS: L'utente vuole PRENOTARE una visita o esame.", true},
		{"posizione", intent.Posizione, "FOCUS: L'utente chiede DOVE si trova la struttura.", false},
		{"emergenza", intent.Emergenza, "FOCUS: Possibile situazione di EMERGENZA.", false},
		{"contatti", intent.Contatti, "FOCUS: L'utente cerca CONTATTI telefonici.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			got := NewBuilder(0).Build(ctx, "ctx", "", "domanda", tt.intentName)

			if !strings.Contains(got, tt.focus) {
				t.Errorf("prompt lacks focus block %q", tt.focus)
			}
			if hasExample := strings.Contains(got, "Esempio di risposta"); hasExample != tt.wantExample {
				t.Errorf("example block present = %v, want %v", hasExample, tt.wantExample)
			}
		})
	}
}

func TestBuilder_Build_UnknownIntentHasNoFocus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	got := NewBuilder(0).Build(ctx, "ctx", "", "domanda", "sconosciuto")

	if strings.Contains(got, "FOCUS:") {
		t.Errorf("unknown intent should not get a focus block")
	}
	if strings.Contains(got, "Esempio di risposta") {
		t.Errorf("unknown intent should not get example answers")
	}
}

func TestBuilder_Build_PinnedNumbers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := NewBuilder(0)

	booking := b.Build(ctx, "ctx", "", "Come prenoto?", intent.Prenotazione)
	if !strings.Contains(booking, "Fornisci il numero del CUP: 800 123 456") {
		t.Errorf("booking prompt lacks the CUP number")
	}

	emergency := b.Build(ctx, "ctx", "", "Aiuto!", intent.Emergenza)
	if !strings.Contains(emergency, "ricorda SUBITO di chiamare il 118") {
		t.Errorf("emergency prompt lacks the 118 instruction")
	}

	for _, p := range []string{booking, emergency} {
		if strings.Count(p, "045 807 1111") != 2 {
			t.Errorf("prompt should mention the centralino in the rules and in the closing reminder")
		}
	}
}

func TestBuilder_Build_TrimsContextToBudget(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := NewBuilder(10)

	longContext := strings.TrimSpace(strings.Repeat("Il centro prelievi di Villafranca effettua analisi del sangue. ", 40))
	got := b.Build(ctx, longContext, "", "Dove faccio le analisi?", intent.General)

	section := promptSection(t, got, "INFORMAZIONI STRUTTURE DISPONIBILI:\n", "\n\nDOMANDA UTENTE:")
	if section == longContext {
		t.Fatal("expected the context to be trimmed")
	}
	if !strings.HasPrefix(longContext, section) {
		t.Errorf("trimmed context is not a prefix of the original: %q", section)
	}
	if n := CountTokens(section); n > b.budget {
		t.Errorf("trimmed context holds %d tokens, budget is %d", n, b.budget)
	}
}

func TestNewBuilder_BudgetFallback(t *testing.T) {
	t.Parallel()

	if b := NewBuilder(0); b.budget != DefaultTokenBudget {
		t.Errorf("NewBuilder(0) budget = %d, want %d", b.budget, DefaultTokenBudget)
	}
	if b := NewBuilder(-3); b.budget != DefaultTokenBudget {
		t.Errorf("NewBuilder(-3) budget = %d, want %d", b.budget, DefaultTokenBudget)
	}
	if b := NewBuilder(250); b.budget != 250 {
		t.Errorf("NewBuilder(250) budget = %d, want 250", b.budget)
	}
}

func TestBuildFAQ(t *testing.T) {
	t.Parallel()

	got := BuildFAQ("Come prenoto una visita?", "Chiamando il CUP al numero 800 123 456.")
	want := "Riformula questa risposta in modo più conversazionale e amichevole, \n" +
		"mantenendo tutte le informazioni importanti ma usando un tono gentile e paziente:\n\n" +
		"Domanda utente: Come prenoto una visita?\n" +
		"Risposta da riformulare: Chiamando il CUP al numero 800 123 456.\n\n" +
		"Risposta riformulata (massimo 3 frasi, tono gentile):"
	if got != want {
		t.Errorf("BuildFAQ mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestBuildClarification(t *testing.T) {
	t.Parallel()

	got := BuildClarification("Utente: vorrei prenotare\nSaniBot: Certo, dove?")
	want := "Basandoti sul contesto, genera una domanda di chiarimento gentile e specifica.\n\n" +
		"Contesto: Utente: vorrei prenotare\nSaniBot: Certo, dove?\n\n" +
		"Genera una domanda di chiarimento breve e cortese (massimo 1-2 frasi):"
	if got != want {
		t.Errorf("BuildClarification mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestCountTokens(t *testing.T) {
	t.Parallel()

	if got := CountTokens(""); got != 0 {
		t.Errorf("CountTokens(\"\") = %d, want 0", got)
	}
	if got := CountTokens("ciao"); got < 1 {
		t.Errorf("CountTokens(\"ciao\") = %d, want at least 1", got)
	}

	short := CountTokens("prelievi del sangue")
	long := CountTokens(strings.Repeat("prelievi del sangue a digiuno ", 30))
	if long <= short {
		t.Errorf("repeated text counted %d tokens, single run %d", long, short)
	}
}

func promptSection(t *testing.T, prompt, start, end string) string {
	t.Helper()
	i := strings.Index(prompt, start)
	if i < 0 {
		t.Fatalf("prompt lacks %q", start)
	}
	rest := prompt[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		t.Fatalf("prompt lacks %q", end)
	}
	return rest[:j]
}
