package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/internal/engine/suggest"
)

// Asker answers user questions; the engine implements it.
type Asker interface {
	Ask(ctx context.Context, q core.Query) core.Answer
}

type statsSource interface {
	Stats(ctx context.Context) core.UsageStats
}

type Handler struct {
	engine    Asker
	analytics statsSource
}

type askRequest struct {
	Question  string      `json:"question"`
	History   []core.Turn `json:"history"`
	SessionID string      `json:"session_id"`
}

type askResponse struct {
	Risposta      string   `json:"risposta"`
	Struttura     string   `json:"struttura,omitempty"`
	Suggerimenti  []string `json:"suggerimenti"`
	Intent        string   `json:"intent"`
	TempoRisposta float64  `json:"tempo_risposta"`
	Cached        bool     `json:"cached"`
}

func (h *Handler) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo della richiesta non valido")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "La domanda non può essere vuota")
		return
	}

	// Clients without a session get one minted for them; the header lets
	// them carry it into the next request without touching the body.
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = r.Header.Get("X-Session-ID")
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	w.Header().Set("X-Session-ID", sessionID)

	ans := h.engine.Ask(r.Context(), core.Query{
		Question:  req.Question,
		History:   req.History,
		SessionID: sessionID,
	})

	suggestions := ans.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, askResponse{
		Risposta:      ans.Text,
		Struttura:     ans.Facility,
		Suggerimenti:  suggestions,
		Intent:        ans.Intent,
		TempoRisposta: ans.Elapsed.Seconds(),
		Cached:        ans.CacheHit,
	})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.analytics.Stats(r.Context()))
}

// suggestionsByIntent are the canned openers the frontend offers per
// intent before the user has asked anything.
var suggestionsByIntent = map[string][]string{
	"orari":        {"A che ora apre il pronto soccorso?", "Orari del centro prelievi?", "È aperto la domenica?"},
	"servizi":      {"Quali servizi offre?", "C'è la radiologia?", "Fanno fisioterapia?"},
	"prenotazione": {"Come prenoto una visita?", "Numero del CUP?", "Posso prenotare online?"},
	"posizione":    {"Dove si trova?", "Come ci arrivo?", "C'è parcheggio?"},
	"generale":     {"Orari di apertura?", "Come prenoto?", "Quali servizi ci sono?"},
}

func (h *Handler) suggestions(w http.ResponseWriter, r *http.Request) {
	list, ok := suggestionsByIntent[r.URL.Query().Get("intent")]
	if !ok {
		list = suggestionsByIntent["generale"]
	}
	if r.URL.Query().Get("format") == "ui" {
		writeJSON(w, http.StatusOK, map[string][]core.Suggestion{"suggestions": suggest.FormatForUI(list)})
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"suggestions": list})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": core.SaniName,
		"version": core.SaniVersion,
	})
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Benvenuto in " + core.SaniName + ", l'assistente delle strutture sanitarie dell'ULSS 9 Scaligera",
		"endpoints": map[string]string{
			"ask":         "/api/ask",
			"stats":       "/api/stats",
			"suggestions": "/api/suggestions",
			"health":      "/health",
		},
		"esempi": suggest.Greeting(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
