package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mc-parking-api/internal/domain"
)

type storeProbe interface {
	Scan(ctx context.Context, table string, filter domain.Filter) ([]domain.Item, error)
}

// HealthHandler handles health-check endpoints. "ping" answers from the
// process; "ready" also scans the zones table through the configured store.
type HealthHandler struct {
	store storeProbe
	table string
}

func NewHealthHandler(store storeProbe, table string) *HealthHandler {
	return &HealthHandler{store: store, table: table}
}

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "ping":
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "pong"})
	case "ready":
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if _, err := h.store.Scan(ctx, h.table, domain.Filter{"status": domain.ZoneActive}); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "ready"})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
