package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/san-kum/cardsearch/internal/config"
	"github.com/san-kum/cardsearch/internal/deck"
	"github.com/san-kum/cardsearch/internal/export"
	"github.com/san-kum/cardsearch/internal/metrics"
	"github.com/san-kum/cardsearch/internal/search"
)

const maxRequestBody = 1 << 20

// SimulateRequest is the JSON body for POST /api/simulate.
type SimulateRequest struct {
	Cards     string `json:"cards"`
	Target    *int   `json:"target"`
	Strict    bool   `json:"strict,omitempty"`    // fail on malformed tokens and duplicates
	Numbering string `json:"numbering,omitempty"` // "legacy" or "sequential"
}

// PresetInfo describes one built-in preset.
type PresetInfo struct {
	Name   string `json:"name"`
	Cards  string `json:"cards"`
	Target int    `json:"target"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Target == nil {
		writeError(w, http.StatusBadRequest, "target is required")
		return
	}

	policy := s.policy
	if req.Strict {
		policy = deck.Strict
	}
	numbering := s.numbering
	if req.Numbering != "" {
		n, err := search.ParseNumbering(req.Numbering)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		numbering = n
	}

	d, err := deck.ParseWith(req.Cards, policy)
	if err != nil {
		s.writeDeckError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.simulate(d, *req.Target, numbering))
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	names := config.ListPresets()
	out := make([]PresetInfo, 0, len(names))
	for _, name := range names {
		p := config.GetPreset(name)
		out = append(out, PresetInfo{Name: name, Cards: p.Cards, Target: p.Target})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	p := config.GetPreset(name)
	if p == nil {
		writeError(w, http.StatusNotFound, "unknown preset: "+name)
		return
	}

	d, err := deck.ParseWith(p.Cards, s.policy)
	if err != nil {
		s.writeDeckError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.simulate(d, p.Target, s.numbering))
}

func (s *Server) simulate(d deck.Deck, target int, n search.Numbering) export.Document {
	sim := metrics.Attach(search.New(search.WithNumbering(n)))
	return export.NewDocument(sim.Run(d, target))
}

func (s *Server) writeDeckError(w http.ResponseWriter, err error) {
	var verr *deck.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Error("parse deck", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Message: msg})
}
