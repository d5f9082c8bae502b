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

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var posting models.JobPosting
	if err := decodeJSON(w, r, &posting); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if posting.RecruiterID == "" || posting.Title == "" {
		respond.Error(w, http.StatusBadRequest, "recruiterId and title are required")
		return
	}
	if posting.Type != "" && !models.IsValidJobType(posting.Type) {
		respond.Error(w, http.StatusBadRequest, "unknown job type: "+posting.Type)
		return
	}

	now := h.now().UTC()
	if posting.ID == "" {
		posting.ID = uuid.NewString()
	}
	if posting.Status == "" {
		posting.Status = models.JobStatusDraft
	}
	if posting.CreatedAt.IsZero() {
		posting.CreatedAt = now
	}
	posting.UpdatedAt = now

	ctx, cancel := h.requestContext(r)
	defer cancel()

	jobs := state.NewJobs(h.svc, h.logger)
	jobs.Mount(ctx, state.Identity{UserID: posting.RecruiterID, Role: models.RoleRecruiter})

	if err := jobs.SaveItem(ctx, posting); err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to save job")
		return
	}

	h.logger.Info("job saved",
		zap.String("job_id", posting.ID),
		zap.String("recruiter_id", posting.RecruiterID),
	)
	respond.Data(w, http.StatusCreated, posting)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	jobID := chi.URLParam(r, "jobID")
	job := h.svc.GetJob(ctx, jobID)
	if job == nil {
		respond.Error(w, http.StatusNotFound, "job not found")
		return
	}

	posting, err := job.Posting()
	if err != nil {
		h.logger.Warn("failed to decode job fields", zap.String("job_id", jobID), zap.Error(err))
	}

	respond.Data(w, http.StatusOK, posting)
}

func (h *Handler) RecruiterJobs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	jobs := state.NewJobs(h.svc, h.logger)
	jobs.Mount(ctx, state.Identity{UserID: chi.URLParam(r, "recruiterID"), Role: models.RoleRecruiter})

	respond.Data(w, http.StatusOK, jobs.Items())
}
