package handlers

import (
	"net/http"

	"chatbot-backend/internal/service/stats"
)

// StatsHandler returns platform-wide counters plus per-user counters when
// userId is given. Store problems degrade to zeroed counters, matching the
// marketing pages that render these numbers.
func (h *Handlers) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		h.sendJSON(w, http.StatusOK, stats.Stats{})
		return
	}

	userID := r.URL.Query().Get("userId")
	h.sendJSON(w, http.StatusOK, h.stats.Get(userID))
}
