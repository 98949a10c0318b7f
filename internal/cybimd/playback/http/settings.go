package http

import (
	"encoding/json"
	"net/http"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, s)
}

func (h *Handler) handleSetSettings(w http.ResponseWriter, r *http.Request) {
	var s v1alpha1.PlaybackSettings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		h.respondError(w, ErrInvalidRequest("invalid request body"))
		return
	}

	if err := h.settings.Set(r.Context(), s); err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, s)
}
