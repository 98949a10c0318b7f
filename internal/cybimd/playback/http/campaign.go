package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var c v1alpha1.Campaign
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		h.respondError(w, ErrInvalidRequest("invalid request body"))
		return
	}

	if err := h.campaigns.Create(r.Context(), &c); err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	items, err := h.campaigns.List(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, v1alpha1.CampaignList{Items: items})
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, ErrInvalidRequest("invalid campaign id"))
		return
	}

	c, err := h.campaigns.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, c)
}

func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, ErrInvalidRequest("invalid campaign id"))
		return
	}

	var update v1alpha1.CampaignUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.respondError(w, ErrInvalidRequest("invalid request body"))
		return
	}

	c, err := h.campaigns.Update(r.Context(), id, &update)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, c)
}

func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, ErrInvalidRequest("invalid campaign id"))
		return
	}

	if err := h.campaigns.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}
