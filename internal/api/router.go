package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"skillmatch/internal/api/middleware"
	"skillmatch/internal/api/respond"
)

// NewRouter wires every route. A nil counter disables rate limiting.
func NewRouter(h *Handler, counter middleware.Counter, rateLimit int, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(counter, rateLimit, logger))

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Delete("/", h.DeleteUser)
			r.Get("/exists", h.UserExists)

			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.PutProfile)

			r.Get("/billing", h.GetBilling)
			r.Put("/billing", h.PutBilling)

			r.Get("/filters", h.GetSearchFilters)
			r.Put("/filters", h.PutSearchFilters)

			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.PutSettings)
		})

		r.Post("/jobs", h.CreateJob)
		r.Get("/jobs/{jobID}", h.GetJob)
		r.Get("/recruiters/{recruiterID}/jobs", h.RecruiterJobs)
		r.Get("/recruiters/{recruiterID}/applications", h.RecruiterApplications)

		r.Post("/applications", h.CreateApplication)
		r.Get("/applications/{applicationID}", h.GetApplication)
		r.Get("/applicants/{applicantID}/applications", h.ApplicantApplications)

		r.Get("/workspace", h.WorkspaceSlots)
		r.Get("/workspace/{slot}", h.GetWorkspaceSlot)
		r.Put("/workspace/{slot}", h.PutWorkspaceSlot)
	})

	return r
}
