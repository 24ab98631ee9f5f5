package api

import (
	"net/http"

	"github.com/forkcast-app/forkcast/internal/store"
	"github.com/forkcast-app/forkcast/internal/trending"
)

type AdminHandler struct {
	store    store.Store
	trending *trending.Tracker
}

func NewAdminHandler(s store.Store, t *trending.Tracker) *AdminHandler {
	return &AdminHandler{store: s, trending: t}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) Trending(w http.ResponseWriter, r *http.Request) {
	ids := []string{}
	if h.trending != nil {
		for id := range h.trending.IDs() {
			ids = append(ids, id)
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(ids),
		"ids":   ids,
	})
}
