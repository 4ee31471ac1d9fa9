// Package intent classifies user questions into request categories that
// steer retrieval, prompt assembly and follow-up suggestions.
package intent

import (
	"strings"
)

const (
	General       = "generale"
	Orari         = "orari"
	Servizi       = "servizi"
	Prenotazione  = "prenotazione"
	Contatti      = "contatti"
	Posizione     = "posizione"
	Emergenza     = "emergenza"
	Documenti     = "documenti"
	Costi         = "costi"
	Analisi       = "analisi"
	Accessibilita = "accessibilita"
)

// DefaultThreshold is the minimum score for a non-general classification.
const DefaultThreshold = 0.3

// Score bonus when more than one keyword of the same intent matches.
const multiMatchBonus = 1.2

// priority fixes the tie-break order: when two intents score equal, the
// earlier one wins. Emergencies outrank everything else.
var priority = []string{
	Emergenza,
	Prenotazione,
	Orari,
	Servizi,
	Analisi,
	Accessibilita,
	Contatti,
	Posizione,
	Documenti,
	Costi,
}

var keywords = map[string][]string{
	Orari: {
		"orari", "orario", "aperto", "apre", "chiude", "chiuso",
		"apertura", "chiusura", "quando", "che ora", "a che ora",
		"domenica", "sabato", "festivi", "weekend",
	},
	Servizi: {
		"servizi", "servizio", "cosa offre", "disponibile", "fanno",
		"reparto", "reparti", "specialità", "ambulatorio",
		"esami", "visite", "prestazioni", "cosa posso fare",
	},
	Prenotazione: {
		"prenot", "prenotazione", "prenotare", "appuntamento",
		"cup", "come prenoto", "voglio prenotare", "devo prenotare",
		"fissare", "riservare", "numero verde",
	},
	Contatti: {
		"telefono", "numero", "chiamare", "contatto", "contatti",
		"tel", "cell", "email", "mail", "pec", "centralino",
	},
	Posizione: {
		"dove", "indirizzo", "via", "posizione", "ubicazione",
		"come arrivo", "come arrivare", "strada", "indicazioni",
		"mappa", "maps", "parcheggio", "autobus", "mezzi",
	},
	Emergenza: {
		"emergenza", "urgenza", "urgente", "pronto soccorso",
		"male", "dolore", "subito", "grave", "incidente",
		"codice rosso", "codice giallo", "118",
	},
	Documenti: {
		"documenti", "documento", "tessera", "carta identità",
		"impegnativa", "ricetta", "cosa porto", "cosa serve",
		"necessario", "bisogno", "requisiti",
	},
	Costi: {
		"costo", "costi", "prezzo", "quanto costa", "pagare",
		"ticket", "gratuito", "gratis", "esenzione", "esente",
		"tariffa", "pagamento",
	},
	Analisi: {
		"analisi", "sangue", "urine", "prelievi", "prelievo",
		"laboratorio", "esami del sangue", "ematici", "glicemia",
		"colesterolo", "referti", "risultati",
	},
	Accessibilita: {
		"disabili", "disabilità", "carrozzina", "sedia a rotelle",
		"ascensore", "barriere", "accessibile", "accompagnatore",
		"parcheggio disabili", "rampa",
	},
}

var weights = map[string]float64{
	Emergenza:     2.0,
	Prenotazione:  1.5,
	Orari:         1.3,
	Servizi:       1.2,
	Analisi:       1.2,
	Accessibilita: 1.1,
	Contatti:      1.0,
	Posizione:     1.0,
	Documenti:     1.0,
	Costi:         1.0,
}

var descriptions = map[string]string{
	Orari:         "Richiesta informazioni su orari di apertura",
	Servizi:       "Richiesta informazioni sui servizi disponibili",
	Prenotazione:  "Richiesta per prenotare visite o esami",
	Contatti:      "Richiesta numeri di telefono o contatti",
	Posizione:     "Richiesta indicazioni o posizione struttura",
	Emergenza:     "Possibile situazione di emergenza medica",
	Documenti:     "Richiesta informazioni sui documenti necessari",
	Costi:         "Richiesta informazioni su costi e ticket",
	Analisi:       "Richiesta informazioni su analisi e prelievi",
	Accessibilita: "Richiesta informazioni su accessibilità per disabili",
	General:       "Richiesta generica di informazioni",
}

var emergencyKeywords = []string{
	"emergenza", "urgente", "urgenza", "subito",
	"male forte", "dolore forte", "grave", "sangue",
	"non respiro", "infarto", "ictus", "incidente",
}

type Classifier struct {
	threshold float64
}

func NewClassifier() *Classifier {
	return &Classifier{threshold: DefaultThreshold}
}

// Classify returns the best-scoring intent, or General when nothing
// reaches the threshold. Keyword hits are normalized by the size of the
// intent's keyword set, then weighted.
func (c *Classifier) Classify(question string) string {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return General
	}

	best := General
	bestScore := 0.0
	for _, name := range priority {
		kws := keywords[name]
		matches := 0
		for _, kw := range kws {
			if strings.Contains(q, kw) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}

		score := float64(matches) / float64(len(kws))
		score *= weights[name]
		if matches > 1 {
			score *= multiMatchBonus
		}

		if score > bestScore {
			bestScore = score
			best = name
		}
	}

	if bestScore >= c.threshold {
		return best
	}
	return General
}

// Description returns a human-readable label for an intent.
func Description(name string) string {
	if d, ok := descriptions[name]; ok {
		return d
	}
	return "Richiesta non classificata"
}

// IsEmergency reports whether the question hints at a medical emergency,
// independent of the winning intent.
func IsEmergency(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range emergencyKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// serviceHints maps canonical service names to the wordings a question
// uses to ask for them. Listed order decides when wordings overlap.
var serviceHints = []struct {
	service  string
	keywords []string
}{
	{"pronto soccorso", []string{"pronto soccorso", "ps", "emergenza"}},
	{"radiologia", []string{"radiologia", "radiografia", "rx", "raggi", "tac", "risonanza"}},
	{"laboratorio", []string{"laboratorio", "analisi", "sangue", "urine", "prelievi"}},
	{"cardiologia", []string{"cardiologo", "cardiologia", "cuore", "elettrocardiogramma", "ecg"}},
	{"ortopedia", []string{"ortopedico", "ortopedia", "ossa", "frattura", "articolazioni"}},
	{"fisioterapia", []string{"fisioterapia", "riabilitazione", "recupero", "fisioterapista"}},
	{"farmacia", []string{"farmacia", "farmaci", "medicine", "ricetta"}},
	{"cup", []string{"cup", "prenotazioni", "prenotare"}},
}

// ServiceHint names the specific service a question asks about, or ""
// when none is recognizable.
func ServiceHint(question string) string {
	q := strings.ToLower(question)
	for _, h := range serviceHints {
		for _, kw := range h.keywords {
			if strings.Contains(q, kw) {
				return h.service
			}
		}
	}
	return ""
}
