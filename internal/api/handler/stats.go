package handler

import (
	"net/http"

	"github.com/mcoot/tictacgo/internal/api/middleware"
	"github.com/mcoot/tictacgo/internal/api/response"
	"github.com/mcoot/tictacgo/internal/services/stats"
)

// StatsHandler handles the signed-in user's ledger entry
type StatsHandler struct {
	ledger *stats.Ledger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(ledger *stats.Ledger) *StatsHandler {
	return &StatsHandler{
		ledger: ledger,
	}
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := middleware.MustGetIdentity(r.Context())

	entry, err := h.ledger.Load(r.Context(), id)
	if isFatal(err) {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromEntry(id, entry, err))
}

// Reset handles DELETE /api/v1/stats
func (h *StatsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id := middleware.MustGetIdentity(r.Context())

	err := h.ledger.ResetAll(r.Context(), id)
	if isFatal(err) {
		WriteError(w, err)
		return
	}

	_, entry := h.ledger.Current()
	response.JSON(w, http.StatusOK, response.StatsFromEntry(id, entry, err))
}
