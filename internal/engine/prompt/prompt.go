// Package prompt assembles the text sent to the language model: base
// assistant instructions, a per-intent focus block with example answers,
// the ranked facility context, the running conversation and the question.
package prompt

import (
	"context"
	"strings"

	"github.com/sandevgo/sanibot/internal/engine/intent"
	"github.com/sandevgo/sanibot/pkg/log"
)

// DefaultTokenBudget caps the facility-context section of a prompt.
const DefaultTokenBudget = 1800

const baseInstructions = `Sei un assistente virtuale dell'ULSS 9 Scaligera, gentile e paziente.
Il tuo compito è aiutare gli utenti, specialmente anziani, a trovare informazioni sui servizi sanitari.

REGOLE IMPORTANTI:
1. Usa un linguaggio SEMPLICE e CHIARO, evita termini medici complessi
2. Fornisci risposte BREVI ma COMPLETE (massimo 3-4 frasi)
3. Usa SOLO le informazioni fornite nelle strutture elencate
4. Se non hai l'informazione richiesta, suggerisci di chiamare il centralino ULSS9: 045 807 1111
5. Sii particolarmente paziente e gentile con gli anziani
6. Quando menzioni orari, sii molto preciso e chiaro
7. Per i numeri di telefono, ripetili in modo chiaro`

const closingReminder = `
RICORDA: Rispondi in modo semplice, chiaro e gentile. Massimo 3-4 frasi.
Se non hai l'informazione, suggerisci di chiamare il centralino: 045 807 1111.

LA TUA RISPOSTA:`

var intentInstructions = map[string]string{
	intent.Orari: `
FOCUS: L'utente chiede informazioni sugli ORARI.
- Specifica SEMPRE gli orari completi (giorni e ore)
- Se ci sono orari diversi per servizi specifici, menzionali
- Ricorda di specificare se alcuni servizi hanno orari particolari
- Usa formato chiaro: "Dal lunedì al venerdì dalle 8:00 alle 16:00"
`,
	intent.Servizi: `
FOCUS: L'utente chiede quali SERVIZI sono disponibili.
- Elenca i servizi principali disponibili
- Se chiede un servizio specifico, conferma se è disponibile o no
- Menziona brevemente come accedere ai servizi
`,
	intent.Prenotazione: `
FOCUS: L'utente vuole PRENOTARE una visita o esame.
- Spiega CHIARAMENTE come prenotare
- Fornisci il numero del CUP: 800 123 456
- Menziona gli orari del servizio prenotazioni
- Ricorda i documenti necessari (tessera sanitaria, impegnativa)
`,
	intent.Posizione: `
FOCUS: L'utente chiede DOVE si trova la struttura.
- Fornisci l'indirizzo completo
- Se disponibile, menziona il link alla mappa
- Dai indicazioni su parcheggio se rilevante
`,
	intent.Emergenza: `
FOCUS: Possibile situazione di EMERGENZA.
- Se è un'emergenza, ricorda SUBITO di chiamare il 118
- Fornisci info sul pronto soccorso più vicino
- Spiega brevemente i codici colore del pronto soccorso
`,
	intent.Contatti: `
FOCUS: L'utente cerca CONTATTI telefonici.
- Fornisci i numeri di telefono in modo chiaro
- Ripeti i numeri importanti
- Specifica gli orari in cui risponde il centralino
`,
}

var responseExamples = map[string]string{
	intent.Orari: `
Esempio di risposta per orari:
"L'Ospedale di Bussolengo è aperto dal lunedì al sabato dalle 7:00 alle 19:00, e la domenica dalle 7:00 alle 12:30. Il pronto soccorso invece è sempre aperto, 24 ore su 24. Posso aiutarla con altro?"
`,
	intent.Servizi: `
Esempio di risposta per servizi:
"L'Ospedale di Bussolengo offre molti servizi tra cui: Pronto Soccorso, Cardiologia, Laboratorio Analisi, Radiologia e Geriatria. Per prenotare una visita può chiamare il CUP al numero 800 123 456."
`,
	intent.Prenotazione: `
Esempio di risposta per prenotazioni:
"Per prenotare una visita può chiamare il CUP al numero verde 800 123 456, attivo dal lunedì al venerdì dalle 8:00 alle 18:00. Tenga pronta la tessera sanitaria e l'impegnativa del medico."
`,
}

// Builder assembles generation prompts. The facility-context section is
// trimmed to a token budget so the prompt fits the model window even when
// the ranker returns long chunks.
type Builder struct {
	budget int
}

// NewBuilder returns a Builder whose context section holds at most
// tokenBudget cl100k_base tokens. Non-positive budgets fall back to
// DefaultTokenBudget.
func NewBuilder(tokenBudget int) *Builder {
	if tokenBudget <= 0 {
		tokenBudget = DefaultTokenBudget
	}
	return &Builder{budget: tokenBudget}
}

// Build assembles the full prompt for a question. Intents without a focus
// block or examples contribute empty sections, dialog is included only
// when non-empty.
func (b *Builder) Build(ctx context.Context, contextText, dialog, question, intentName string) string {
	contextText = b.trimContext(ctx, contextText)

	parts := []string{
		baseInstructions,
		intentInstructions[intentName],
		responseExamples[intentName],
		"\nINFORMAZIONI STRUTTURE DISPONIBILI:\n" + contextText + "\n",
	}
	if dialog != "" {
		parts = append(parts, "CONVERSAZIONE PRECEDENTE:\n"+dialog+"\n")
	}
	parts = append(parts, "DOMANDA UTENTE: "+question, closingReminder)

	p := strings.Join(parts, "\n")
	log.FromCtx(ctx).Debug().
		Str("intent", intentName).
		Int("chars", len(p)).
		Msg("prompt built")
	return p
}

func (b *Builder) trimContext(ctx context.Context, text string) string {
	// A cl100k token spans at least one byte, so text this short cannot
	// exceed the budget.
	if len(text) <= b.budget {
		return text
	}
	tokens := tokenizer().Encode(text, nil, nil)
	if len(tokens) <= b.budget {
		return text
	}
	trimmed := strings.TrimSpace(tokenizer().Decode(tokens[:b.budget]))
	log.FromCtx(ctx).Debug().
		Int("tokens", len(tokens)).
		Int("budget", b.budget).
		Msg("facility context trimmed to token budget")
	return trimmed
}

// BuildFAQ wraps a canned FAQ answer in a rephrasing prompt so the model
// can return it in a warmer, conversational tone.
func BuildFAQ(question, faqAnswer string) string {
	return "Riformula questa risposta in modo più conversazionale e amichevole, \n" +
		"mantenendo tutte le informazioni importanti ma usando un tono gentile e paziente:\n\n" +
		"Domanda utente: " + question + "\n" +
		"Risposta da riformulare: " + faqAnswer + "\n\n" +
		"Risposta riformulata (massimo 3 frasi, tono gentile):"
}

// BuildClarification asks the model to produce a short follow-up question
// when the conversation so far is too vague to answer.
func BuildClarification(previousContext string) string {
	return "Basandoti sul contesto, genera una domanda di chiarimento gentile e specifica.\n\n" +
		"Contesto: " + previousContext + "\n\n" +
		"Genera una domanda di chiarimento breve e cortese (massimo 1-2 frasi):"
}
