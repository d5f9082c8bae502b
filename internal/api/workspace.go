package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"skillmatch/internal/api/respond"
	"skillmatch/internal/state"
)

func (h *Handler) WorkspaceSlots(w http.ResponseWriter, r *http.Request) {
	respond.Data(w, http.StatusOK, h.workspace.Names())
}

func (h *Handler) GetWorkspaceSlot(w http.ResponseWriter, r *http.Request) {
	slot, ok := h.readySlot(w, r)
	if !ok {
		return
	}

	respond.Data(w, http.StatusOK, slot.Snapshot())
}

func (h *Handler) PutWorkspaceSlot(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	slot, ok := h.readySlot(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := slot.ReplaceJSON(ctx, data); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	respond.Data(w, http.StatusOK, slot.Snapshot())
}

func (h *Handler) readySlot(w http.ResponseWriter, r *http.Request) (state.WorkspaceSlot, bool) {
	name := chi.URLParam(r, "slot")
	slot, ok := h.workspace.Slot(name)
	if !ok {
		respond.Error(w, http.StatusNotFound, "unknown workspace slot: "+name)
		return nil, false
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := slot.Wait(ctx); err != nil {
		respond.Error(w, http.StatusServiceUnavailable, "workspace slot is still loading")
		return nil, false
	}

	return slot, true
}
