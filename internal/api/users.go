package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"skillmatch/internal/api/respond"
	"skillmatch/internal/models"
	"skillmatch/internal/state"
)

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	profile := h.svc.GetUserProfile(ctx, chi.URLParam(r, "userID"))
	if profile == nil {
		respond.Error(w, http.StatusNotFound, "profile not found")
		return
	}

	respond.Data(w, http.StatusOK, profile)
}

func (h *Handler) PutProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var profile models.UserProfile
	if err := decodeJSON(w, r, &profile); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	switch profile.Role {
	case "", models.RoleRecruiter, models.RoleCandidate, models.RoleAdmin:
	default:
		respond.Error(w, http.StatusBadRequest, "unknown role: "+profile.Role)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	now := h.now().UTC()
	profile.ID = userID
	if profile.CreatedAt.IsZero() {
		if existing := h.svc.GetUserProfile(ctx, userID); existing != nil {
			profile.CreatedAt = existing.CreatedAt
		} else {
			profile.CreatedAt = now
		}
	}
	profile.UpdatedAt = now

	if err := h.svc.SaveUserProfile(ctx, &profile); err != nil {
		h.logger.Error("failed to save profile", zap.String("user_id", userID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	respond.Data(w, http.StatusOK, profile)
}

func (h *Handler) UserExists(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	exists := h.svc.IsUserDataExists(ctx, chi.URLParam(r, "userID"))
	respond.Data(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	userID := chi.URLParam(r, "userID")
	h.svc.ClearUserData(ctx, userID)

	h.logger.Info("user data cleared", zap.String("user_id", userID))
	respond.Message(w, http.StatusOK, "user data cleared")
}

// Slots are served through a hook so an unsaved slot comes back as the
// identity's default.

func (h *Handler) GetBilling(w http.ResponseWriter, r *http.Request) {
	serveSlot(w, r, h, state.NewBilling(h.svc, h.logger, h.hookOpts...))
}

func (h *Handler) GetSearchFilters(w http.ResponseWriter, r *http.Request) {
	serveSlot(w, r, h, state.NewSearchFilters(h.svc, h.logger, h.hookOpts...))
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	serveSlot(w, r, h, state.NewSettings(h.svc, h.logger, h.hookOpts...))
}

func serveSlot[T any](w http.ResponseWriter, r *http.Request, h *Handler, hook *state.Persistent[T]) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	hook.Mount(ctx, identity(r, chi.URLParam(r, "userID")))

	value, _, _ := hook.State()
	respond.Data(w, http.StatusOK, value)
}

func (h *Handler) PutBilling(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var data models.BillingData
	if err := decodeJSON(w, r, &data); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	data.UserID = userID
	if err := h.svc.SaveBillingData(ctx, &data); err != nil {
		h.logger.Error("failed to save billing", zap.String("user_id", userID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to save billing data")
		return
	}

	respond.Data(w, http.StatusOK, data)
}

func (h *Handler) PutSearchFilters(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var filters models.SearchFilters
	if err := decodeJSON(w, r, &filters); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if filters.JobType != "" && !models.IsValidJobType(filters.JobType) {
		respond.Error(w, http.StatusBadRequest, "unknown job type: "+filters.JobType)
		return
	}
	if filters.SalaryRange.Max > 0 && filters.SalaryRange.Min > filters.SalaryRange.Max {
		respond.Error(w, http.StatusBadRequest, "salary minimum exceeds maximum")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	filters.UserID = userID
	filters.UpdatedAt = h.now().UTC()
	if err := h.svc.SaveSearchFilters(ctx, &filters); err != nil {
		h.logger.Error("failed to save search filters", zap.String("user_id", userID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to save search filters")
		return
	}

	respond.Data(w, http.StatusOK, filters)
}

func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var settings models.SettingsData
	if err := decodeJSON(w, r, &settings); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	settings.UserID = userID
	settings.UpdatedAt = h.now().UTC()
	if err := h.svc.SaveSettings(ctx, &settings); err != nil {
		h.logger.Error("failed to save settings", zap.String("user_id", userID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	respond.Data(w, http.StatusOK, settings)
}
