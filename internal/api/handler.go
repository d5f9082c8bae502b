// Package api exposes the persistence service and state hooks over HTTP
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"skillmatch/internal/persistence"
	"skillmatch/internal/state"
)

const maxBodyBytes = 1 << 20

// Headers describing the caller. The user id comes from the path.
const (
	RoleHeader    = "X-User-Role"
	CompanyHeader = "X-User-Company"
)

var errEmptyBody = errors.New("request body is empty")

type Handler struct {
	svc       *persistence.Service
	workspace *state.Workspace
	hookOpts  []state.Option
	timeout   time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func NewHandler(svc *persistence.Service, workspace *state.Workspace, timeout time.Duration, logger *zap.Logger, hookOpts ...state.Option) *Handler {
	return &Handler{
		svc:       svc,
		workspace: workspace,
		hookOpts:  hookOpts,
		timeout:   timeout,
		now:       time.Now,
		logger:    logger,
	}
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

func identity(r *http.Request, userID string) state.Identity {
	return state.Identity{
		UserID:  userID,
		Role:    r.Header.Get(RoleHeader),
		Company: r.Header.Get(CompanyHeader),
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		return nil, errEmptyBody
	}
	return data, nil
}
