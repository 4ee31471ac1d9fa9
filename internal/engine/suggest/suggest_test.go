package suggest

import (
	"reflect"
	"testing"

	"github.com/sandevgo/sanibot/internal/engine/intent"
)

func TestGenerate_FiltersRestatements(t *testing.T) {
	t.Parallel()

	got := Generate("Quali sono gli orari del pronto soccorso?", "", intent.Orari, 3)

	// The identical table entry is a restatement and gets dropped; the
	// visite-specialistiche entry sits exactly on the 0.6 overlap
	// boundary and survives.
	want := []string{
		"È aperto anche la domenica?",
		"A che ora apre il centro prelievi?",
		"Quali sono gli orari per le visite specialistiche?",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate = %v, want %v", got, want)
	}
}

func TestGenerate_ContextualKeywordFromAnswer(t *testing.T) {
	t.Parallel()

	got := Generate("Che struttura è?", "È l'Ospedale di Borgo Trento.", "sconosciuto", 3)

	want := []string{
		"Quali reparti ci sono in questo ospedale?",
		"C'è il pronto soccorso?",
		"Come arrivo all'ospedale?",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate = %v, want %v", got, want)
	}
}

func TestGenerate_SingleShotRules(t *testing.T) {
	t.Parallel()

	got := Generate("Come posso prenotare?", "Puoi prenotare chiamando il CUP.", "sconosciuto", 3)

	want := []string{
		"Qual è il numero per prenotare?",
		"Quali sono gli orari del CUP?",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate = %v, want %v", got, want)
	}
}

func TestGenerate_PrioritizesWhenOverflowing(t *testing.T) {
	t.Parallel()

	got := Generate(
		"Quali sono gli orari di apertura?",
		"Gli orari di apertura sono 8-20.",
		intent.General,
		3,
	)

	// Four candidates survive the restatement filter; the hours →
	// booking transition gets +2 and the phone entry +1 for reusing an
	// answer word, so those two move ahead.
	want := []string{
		"Come posso prenotare una visita?",
		"Qual è il numero di telefono?",
		"Quali servizi offre questa struttura?",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Generate = %v, want %v", got, want)
	}
}

func TestGenerate_NoSources(t *testing.T) {
	t.Parallel()

	if got := Generate("", "", "", 3); len(got) != 0 {
		t.Errorf("Generate with no sources = %v, want empty", got)
	}
}

func TestSimilar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{
			name: "identical questions",
			a:    "Quali sono gli orari del pronto soccorso?",
			b:    "Quali sono gli orari del pronto soccorso?",
			want: true,
		},
		{
			name: "overlap exactly at the boundary stays",
			a:    "Quali sono gli orari per le visite specialistiche?",
			b:    "Quali sono gli orari del pronto soccorso?",
			want: false,
		},
		{
			name: "unrelated questions",
			a:    "C'è parcheggio vicino?",
			b:    "Quanto costa il ticket?",
			want: false,
		},
		{
			name: "stopword-only question",
			a:    "è di per",
			b:    "Quali sono gli orari?",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := similar(tt.a, tt.b); got != tt.want {
				t.Errorf("similar(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEmergencyAndGreeting(t *testing.T) {
	t.Parallel()

	em := Emergency()
	if len(em) != 3 || em[0] != "Chiama immediatamente il 118 per emergenze mediche" {
		t.Errorf("Emergency() = %v", em)
	}

	gr := Greeting()
	if len(gr) != 5 || gr[0] != "Dove posso fare le analisi del sangue?" {
		t.Errorf("Greeting() = %v", gr)
	}

	// Returned slices are copies, not views over the tables.
	gr[0] = "manomessa"
	if Greeting()[0] != "Dove posso fare le analisi del sangue?" {
		t.Error("Greeting() must return a fresh copy")
	}
}

func TestFormatForUI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		icon string
	}{
		{"Quali sono gli orari del CUP?", "🕐"},
		{"Come prenoto una visita?", "📅"},
		{"Dove si trova esattamente?", "📍"},
		{"Qual è il numero di telefono?", "📞"},
		{"Quali documenti servono?", "📄"},
		{"Devo fare le analisi del sangue?", "💉"},
		{"Chi chiamo in caso di emergenza?", "🚨"},
		{"Quali servizi ci sono?", "🏥"},
		{"Ciao, come stai?", "❓"},
		// "orari" outranks "prenot" in the icon table.
		{"Quali sono gli orari per prenotare?", "🕐"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := FormatForUI([]string{tt.text})
			if len(got) != 1 {
				t.Fatalf("FormatForUI returned %d items, want 1", len(got))
			}
			if got[0].Icon != tt.icon {
				t.Errorf("icon = %q, want %q", got[0].Icon, tt.icon)
			}
			if got[0].Text != tt.text || got[0].Action != "ask" {
				t.Errorf("unexpected suggestion %+v", got[0])
			}
		})
	}
}
