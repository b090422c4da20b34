package handler

import (
	"context"
	"net/http"

	"github.com/fps-platform/fps-backend/internal/api/http/response"
)

// Pinger reports storage reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health serves GET /health backed by a storage ping.
type Health struct {
	db Pinger
}

// NewHealth creates the health handler.
func NewHealth(db Pinger) *Health {
	return &Health{db: db}
}

func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		response.Error(w, http.StatusServiceUnavailable, "storage unreachable")
		return
	}
	response.OK(w, http.StatusOK, "ok", nil)
}
