package http

import (
	"net/http"
)

// handleStartPlayer loads the stored campaigns and settings and starts
// a playback session. Starting while playing restarts the session with
// fresh content.
func (h *Handler) handleStartPlayer(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaigns.List(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.player.Start(campaigns, settings); err != nil {
		h.respondError(w, err)
		return
	}

	h.logger.Info().Int("campaigns", len(campaigns)).Msg("playback started")
	h.respondJSON(w, http.StatusOK, h.player.Status())
}

func (h *Handler) handleStopPlayer(w http.ResponseWriter, r *http.Request) {
	h.player.Stop()
	h.logger.Info().Msg("playback stopped")
	h.respondJSON(w, http.StatusOK, h.player.Status())
}

func (h *Handler) handlePlayerStatus(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.player.Status())
}
