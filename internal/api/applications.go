package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"skillmatch/internal/api/respond"
	"skillmatch/internal/models"
	"skillmatch/internal/state"
)

func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var app models.TrackedApplication
	if err := decodeJSON(w, r, &app); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if app.JobID == "" || app.ApplicantID == "" {
		respond.Error(w, http.StatusBadRequest, "jobId and applicantId are required")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if h.svc.GetJob(ctx, app.JobID) == nil {
		respond.Error(w, http.StatusNotFound, "job not found")
		return
	}

	now := h.now().UTC()
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = models.ApplicationPending
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = now
	}
	app.UpdatedAt = now

	apps := state.NewApplications(h.svc, h.logger)
	apps.Mount(ctx, state.Identity{UserID: app.ApplicantID, Role: models.RoleCandidate})

	if err := apps.SaveItem(ctx, app); err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to save application")
		return
	}

	h.logger.Info("application saved",
		zap.String("application_id", app.ID),
		zap.String("job_id", app.JobID),
	)
	respond.Data(w, http.StatusCreated, app)
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	applicationID := chi.URLParam(r, "applicationID")
	app := h.svc.GetApplication(ctx, applicationID)
	if app == nil {
		respond.Error(w, http.StatusNotFound, "application not found")
		return
	}

	tracked, err := app.Tracked()
	if err != nil {
		h.logger.Warn("failed to decode application analysis",
			zap.String("application_id", applicationID),
			zap.Error(err),
		)
	}

	respond.Data(w, http.StatusOK, tracked)
}

func (h *Handler) ApplicantApplications(w http.ResponseWriter, r *http.Request) {
	h.serveApplications(w, r, state.Identity{
		UserID: chi.URLParam(r, "applicantID"),
		Role:   models.RoleCandidate,
	})
}

func (h *Handler) RecruiterApplications(w http.ResponseWriter, r *http.Request) {
	h.serveApplications(w, r, state.Identity{
		UserID: chi.URLParam(r, "recruiterID"),
		Role:   models.RoleRecruiter,
	})
}

func (h *Handler) serveApplications(w http.ResponseWriter, r *http.Request, id state.Identity) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	apps := state.NewApplications(h.svc, h.logger)
	apps.Mount(ctx, id)

	respond.Data(w, http.StatusOK, apps.Items())
}
