package api

import (
	"context"
	"net/http"

	"skillmatch/internal/api/respond"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type healthStatus struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// Health reports whether the storage medium answers. Media without a
// connection, such as the in-memory one, are always reported ok.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	p, ok := h.svc.Medium().(pinger)
	if !ok {
		respond.Data(w, http.StatusOK, healthStatus{Status: "ok", Storage: "ok"})
		return
	}

	if err := p.Ping(ctx); err != nil {
		respond.JSON(w, http.StatusServiceUnavailable, respond.Envelope{
			Data:  healthStatus{Status: "degraded", Storage: "unreachable"},
			Error: err.Error(),
		})
		return
	}

	respond.Data(w, http.StatusOK, healthStatus{Status: "ok", Storage: "ok"})
}
