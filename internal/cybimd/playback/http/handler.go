// Package http exposes the daemon's control API: campaign CRUD, device
// settings, player lifecycle, and the renderer/listener sockets.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
	"github.com/cybim/cybim-signage/internal/cybimd/campaign"
	werrors "github.com/cybim/cybim-signage/internal/cybimd/errors"
	"github.com/cybim/cybim-signage/internal/cybimd/playback"
	"github.com/cybim/cybim-signage/internal/cybimd/settings"
)

// Player is the slice of the playback engine the control API drives
type Player interface {
	Start(campaigns []v1alpha1.Campaign, settings v1alpha1.PlaybackSettings) error
	Stop()
	Status() v1alpha1.PlayerStatus
}

// Sockets serves the renderer and listener WebSocket endpoints
type Sockets interface {
	ServeRenderer(w http.ResponseWriter, r *http.Request)
	ServeEvents(w http.ResponseWriter, r *http.Request)
}

type Handler struct {
	player    Player
	campaigns campaign.Service
	settings  settings.Service
	sockets   Sockets
	wsLimit   func(http.Handler) http.Handler
	logger    zerolog.Logger
}

func NewHandler(player Player, campaigns campaign.Service, settings settings.Service, sockets Sockets, logger zerolog.Logger) *Handler {
	return &Handler{
		player:    player,
		campaigns: campaigns,
		settings:  settings,
		sockets:   sockets,
		logger:    logger.With().Str("component", "playback-http").Logger(),
	}
}

// WithSocketLimit installs rate-limiting middleware on the WebSocket
// connect routes. Connects are metered separately from API requests
// since each one pins a goroutine for the life of the socket.
func (h *Handler) WithSocketLimit(mw func(http.Handler) http.Handler) *Handler {
	h.wsLimit = mw
	return h
}

// Router returns a router pre-configured with all control endpoints
// mounted at the API root
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	// Campaign management
	r.Route("/campaigns", func(r chi.Router) {
		r.Post("/", h.handleCreateCampaign)
		r.Get("/", h.handleListCampaigns)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetCampaign)
			r.Put("/", h.handleUpdateCampaign)
			r.Delete("/", h.handleDeleteCampaign)
		})
	})

	// Device settings
	r.Get("/settings", h.handleGetSettings)
	r.Put("/settings", h.handleSetSettings)

	// Player lifecycle
	r.Post("/player/start", h.handleStartPlayer)
	r.Post("/player/stop", h.handleStopPlayer)
	r.Get("/player/status", h.handlePlayerStatus)

	// Renderer and listener sockets
	r.Group(func(r chi.Router) {
		if h.wsLimit != nil {
			r.Use(h.wsLimit)
		}
		r.Get("/renderer/ws", h.sockets.ServeRenderer)
		r.Get("/events/ws", h.sockets.ServeEvents)
	})

	return r
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.Error().Err(err).Msg("failed to encode response")
		}
	}
}

// respondError maps domain errors onto HTTP status codes
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case werrors.IsNotFound(err):
		code = http.StatusNotFound
		msg = err.Error()
	case werrors.IsInvalidInput(err):
		code = http.StatusBadRequest
		msg = err.Error()
	case werrors.IsConflict(err), werrors.IsVersionMismatch(err):
		code = http.StatusConflict
		msg = err.Error()
	default:
		var he HTTPError
		var ve *v1alpha1.Error
		if errors.As(err, &he) {
			code = he.StatusCode()
			msg = he.Error()
		} else if errors.As(err, &ve) {
			code = http.StatusBadRequest
			msg = err.Error()
		} else if errors.Is(err, playback.ErrNoEligibleContent) {
			code = http.StatusConflict
			msg = err.Error()
		}
	}

	h.respondJSON(w, code, map[string]string{"error": msg})
}
