package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pagewatch/pagewatch/internal/history"
)

// SitesHandler exposes the in-memory check history as JSON.
type SitesHandler struct {
	hist *history.Log
}

func NewSitesHandler(hist *history.Log) *SitesHandler {
	return &SitesHandler{hist: hist}
}

// List returns the current state and recent checks of every site.
func (h *SitesHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.hist.Snapshot()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sites": snap,
		"total": len(snap),
	})
}

// Detail returns the state and recent checks of a single site.
func (h *SitesHandler) Detail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	w.Header().Set("Content-Type", "application/json")

	site := h.hist.Get(name)
	if site == nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
		return
	}

	json.NewEncoder(w).Encode(site)
}
