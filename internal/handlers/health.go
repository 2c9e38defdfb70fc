package handlers

import (
	"net/http"
	"time"

	applog "dsfs/internal/log"
	"dsfs/internal/store"
)

type healthResponse struct {
	Status   string       `json:"status"`
	Time     time.Time    `json:"time"`
	Feed     store.Status `json:"feed"`
	Students store.Status `json:"students"`
}

// Health is a simple readiness handler suitable for infrastructure probes.
// It also reports whether either collection store is mid-refresh.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)
	writeJSON(w, r, http.StatusOK, healthResponse{
		Status:   "ok",
		Time:     time.Now().UTC(),
		Feed:     h.feed.State().Status,
		Students: h.students.State().Status,
	})
}
