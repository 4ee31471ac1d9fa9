// Package suggest proposes follow-up questions based on the question
// just asked, the answer given and the classified intent.
package suggest

import (
	"sort"
	"strings"

	"github.com/sandevgo/sanibot/internal/engine/intent"
)

// DefaultMax is how many suggestions a caller gets unless asked otherwise.
const DefaultMax = 3

// A candidate restating the question above this word overlap is dropped.
const similarityThreshold = 0.6

var byIntent = map[string][]string{
	intent.Orari: {
		"Quali sono gli orari del pronto soccorso?",
		"È aperto anche la domenica?",
		"A che ora apre il centro prelievi?",
		"Quali sono gli orari per le visite specialistiche?",
		"Fino a che ora posso fare le analisi del sangue?",
	},
	intent.Servizi: {
		"C'è il servizio di radiologia?",
		"Fanno anche la fisioterapia?",
		"Quali esami posso fare?",
		"C'è un reparto di cardiologia?",
		"Hanno il servizio di day hospital?",
	},
	intent.Prenotazione: {
		"Qual è il numero del CUP per prenotare?",
		"Posso prenotare online?",
		"Quanto tempo di attesa c'è per una visita?",
		"Cosa devo portare per la visita?",
		"Come posso disdire un appuntamento?",
	},
	intent.Contatti: {
		"Qual è il numero del centralino?",
		"Come posso contattare il CUP?",
		"C'è un numero per le urgenze?",
		"Hanno un indirizzo email?",
		"Qual è il numero del pronto soccorso?",
	},
	intent.Posizione: {
		"Come arrivo con i mezzi pubblici?",
		"C'è parcheggio vicino?",
		"Qual è l'indirizzo esatto?",
		"È vicino alla stazione?",
		"Ci sono parcheggi per disabili?",
	},
	intent.Analisi: {
		"Devo essere a digiuno per le analisi?",
		"Quando posso ritirare i risultati?",
		"Quali documenti servono per il prelievo?",
		"A che ora apre il centro prelievi?",
		"Posso vedere i risultati online?",
	},
	intent.Documenti: {
		"Serve l'impegnativa del medico?",
		"Devo portare la tessera sanitaria?",
		"Quali documenti servono per la prima visita?",
		"Serve il documento d'identità?",
		"L'impegnativa ha una scadenza?",
	},
	intent.Costi: {
		"Quanto costa il ticket?",
		"Ci sono esenzioni per reddito?",
		"Come posso pagare il ticket?",
		"Le visite private quanto costano?",
		"Posso avere l'esenzione per patologia?",
	},
	intent.Accessibilita: {
		"C'è l'ascensore per i disabili?",
		"Ci sono barriere architettoniche?",
		"C'è parcheggio riservato ai disabili?",
		"Posso entrare con la carrozzina?",
		"C'è assistenza per non vedenti?",
	},
	intent.Emergenza: {
		"Qual è il numero per le emergenze?",
		"Dove si trova il pronto soccorso più vicino?",
		"Quanto tempo di attesa al pronto soccorso?",
		"Cosa sono i codici colore?",
		"Quando devo andare al pronto soccorso?",
	},
	intent.General: {
		"Quali servizi offre questa struttura?",
		"Quali sono gli orari di apertura?",
		"Come posso prenotare una visita?",
		"Dove si trova esattamente?",
		"Qual è il numero di telefono?",
	},
}

// Keyword-triggered lists; the keyword may appear in either the answer
// or the question. Order is fixed so output stays deterministic.
var contextualOrder = []string{"ospedale", "prelievi", "visita", "anziani", "bambini"}

var contextual = map[string][]string{
	"ospedale": {
		"Quali reparti ci sono in questo ospedale?",
		"C'è il pronto soccorso?",
		"Come arrivo all'ospedale?",
	},
	"prelievi": {
		"A che ora devo venire per i prelievi?",
		"Devo essere a digiuno?",
		"Quanto tempo per i risultati?",
	},
	"visita": {
		"Come prenoto la visita?",
		"Quanto costa la visita?",
		"Cosa devo portare?",
	},
	"anziani": {
		"C'è assistenza per anziani?",
		"Ci sono servizi domiciliari?",
		"C'è la geriatria?",
	},
	"bambini": {
		"C'è la pediatria?",
		"Quali sono gli orari della pediatria?",
		"C'è il pronto soccorso pediatrico?",
	},
}

// Single-shot rules: the answer mentions a topic the question did not
// ask about directly.
var followUps = []struct {
	inAnswer      string
	notInQuestion string
	suggestion    string
}{
	{"pronto soccorso", "orari", "Quali sono i tempi di attesa medi al pronto soccorso?"},
	{"prenotare", "numero", "Qual è il numero per prenotare?"},
	{"ospedale", "parcheggio", "C'è parcheggio vicino all'ospedale?"},
	{"cup", "orari", "Quali sono gli orari del CUP?"},
}

var stopwords = map[string]struct{}{
	"il": {}, "la": {}, "i": {}, "le": {}, "un": {}, "una": {}, "di": {},
	"da": {}, "per": {}, "con": {}, "su": {}, "è": {}, "sono": {}, "a": {}, "e": {},
}

var emergency = []string{
	"Chiama immediatamente il 118 per emergenze mediche",
	"Dove si trova il pronto soccorso più vicino?",
	"Quali documenti servono al pronto soccorso?",
}

var greeting = []string{
	"Dove posso fare le analisi del sangue?",
	"Come prenoto una visita specialistica?",
	"Quali sono gli orari del centro prelievi?",
	"Dove si trova l'ospedale più vicino?",
	"Come posso contattare il CUP?",
}

// Generate builds up to max follow-up suggestions for a question and
// the answer it got. Candidates come from the intent table, the
// contextual keyword lists and the single-shot rules, in that order;
// restatements of the question are filtered out.
func Generate(question, answer, intentName string, max int) []string {
	if max <= 0 {
		max = DefaultMax
	}

	var out []string
	for _, s := range byIntent[intentName] {
		if !similar(s, question) {
			out = append(out, s)
		}
	}

	qLower := strings.ToLower(question)
	aLower := strings.ToLower(answer)

	for _, keyword := range contextualOrder {
		if !strings.Contains(aLower, keyword) && !strings.Contains(qLower, keyword) {
			continue
		}
		for _, s := range contextual[keyword] {
			if !similar(s, question) {
				out = append(out, s)
			}
		}
	}

	for _, rule := range followUps {
		if strings.Contains(aLower, rule.inAnswer) && !strings.Contains(qLower, rule.notInQuestion) {
			out = append(out, rule.suggestion)
		}
	}

	out = dedupe(out)
	if len(out) > max {
		prioritize(out, qLower, aLower)
		out = out[:max]
	}
	return out
}

// Emergency returns the fixed emergency guidance suggestions.
func Emergency() []string {
	return append([]string(nil), emergency...)
}

// Greeting returns the conversation-opener suggestions.
func Greeting() []string {
	return append([]string(nil), greeting...)
}

// similar reports whether two questions share most of their meaningful
// words. Overlap is measured against the smaller word set.
func similar(a, b string) bool {
	aw := meaningfulWords(a)
	bw := meaningfulWords(b)
	if len(aw) == 0 || len(bw) == 0 {
		return false
	}

	shared := 0
	for w := range aw {
		if _, ok := bw[w]; ok {
			shared++
		}
	}
	smaller := len(aw)
	if len(bw) < smaller {
		smaller = len(bw)
	}
	return float64(shared)/float64(smaller) > similarityThreshold
}

func meaningfulWords(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if _, stop := stopwords[w]; !stop {
			words[w] = struct{}{}
		}
	}
	return words
}

func dedupe(suggestions []string) []string {
	seen := make(map[string]struct{}, len(suggestions))
	out := suggestions[:0]
	for _, s := range suggestions {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// prioritize reorders suggestions best first, keeping the original
// order between equal scores.
func prioritize(suggestions []string, qLower, aLower string) {
	scores := make(map[string]int, len(suggestions))
	for _, s := range suggestions {
		scores[s] = relevance(s, qLower, aLower)
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return scores[suggestions[i]] > scores[suggestions[j]]
	})
}

// relevance favors natural topic transitions (how → where, where →
// hours, hours → booking) and suggestions that pick up a word the
// answer already used.
func relevance(suggestion, qLower, aLower string) int {
	sLower := strings.ToLower(suggestion)

	n := 0
	switch {
	case strings.Contains(qLower, "come") && strings.Contains(sLower, "dove"):
		n += 2
	case strings.Contains(qLower, "dove") && strings.Contains(sLower, "orari"):
		n += 2
	case strings.Contains(qLower, "orari") && strings.Contains(sLower, "prenotare"):
		n += 2
	}

	for _, w := range strings.Fields(sLower) {
		if strings.Contains(aLower, w) {
			n++
			break
		}
	}
	return n
}
