// Package delivery connects the playback engine to its renderer and to
// host listeners over WebSocket. One renderer drives the screen; any
// number of listeners observe player events.
package delivery

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
	"github.com/cybim/cybim-signage/internal/cybimd/playback"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// ErrNoRenderer indicates no renderer is currently connected
var ErrNoRenderer = errors.New("no renderer connected")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// renderer and listeners live on the same device
		return true
	},
}

// conn is a middleman between a websocket connection and the hub
type conn struct {
	role   string
	ws     *websocket.Conn
	send   chan []byte
	hub    *Hub
	logger *slog.Logger
}

// Hub owns the renderer and listener connections. It implements both
// playback.Renderer, turning engine calls into render commands on the
// renderer socket, and playback.EventPublisher, broadcasting player
// events to listeners. At most one renderer is attached; a new one
// replaces the old.
type Hub struct {
	logger *slog.Logger

	mu        sync.RWMutex
	renderer  *conn
	listeners map[*conn]bool
	sink      playback.EventSink
}

// NewHub creates a hub with no connections attached
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:    logger,
		listeners: make(map[*conn]bool),
	}
}

// SetSink installs the receiver for renderer events. Must be called
// before the first renderer connects.
func (h *Hub) SetSink(sink playback.EventSink) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sink = sink
}

// ServeRenderer upgrades a renderer connection and pumps render events
// into the sink until the peer disconnects
func (h *Hub) ServeRenderer(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("renderer websocket upgrade failed", "error", err)
		return
	}

	c := &conn{
		role:   "renderer",
		ws:     ws,
		send:   make(chan []byte, 256),
		hub:    h,
		logger: h.logger,
	}

	h.mu.Lock()
	prev := h.renderer
	h.renderer = c
	if prev != nil {
		close(prev.send)
	}
	h.mu.Unlock()
	if prev != nil {
		h.logger.Info("renderer replaced by new connection")
	}
	h.logger.Info("renderer connected", "remoteAddr", r.RemoteAddr)

	go c.writePump()
	c.readRenderEvents()
}

// ServeEvents upgrades a listener connection and streams player events
// to it until the peer disconnects
func (h *Hub) ServeEvents(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("listener websocket upgrade failed", "error", err)
		return
	}

	c := &conn{
		role:   "listener",
		ws:     ws,
		send:   make(chan []byte, 256),
		hub:    h,
		logger: h.logger,
	}

	h.mu.Lock()
	h.listeners[c] = true
	count := len(h.listeners)
	h.mu.Unlock()
	h.logger.Info("listener connected", "remoteAddr", r.RemoteAddr, "listeners", count)

	go c.writePump()
	c.drainListener()
}

// Publish implements playback.EventPublisher. Listeners that cannot
// keep up are dropped rather than blocking the engine.
func (h *Hub) Publish(event v1alpha1.PlayerEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal player event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.listeners {
		select {
		case c.send <- data:
		default:
			close(c.send)
			delete(h.listeners, c)
			h.logger.Warn("dropped slow listener")
		}
	}
}

// ShowImage implements playback.Renderer
func (h *Hub) ShowImage(item v1alpha1.MediaItem, transition v1alpha1.Transition, transitionMs int) {
	h.sendCommand(v1alpha1.RenderCommand{
		Type:                 v1alpha1.RenderShowImage,
		Item:                 &item,
		Transition:           transition,
		TransitionDurationMs: transitionMs,
	})
}

// HideImage implements playback.Renderer
func (h *Hub) HideImage() {
	h.sendCommand(v1alpha1.RenderCommand{Type: v1alpha1.RenderHideImage})
}

// LoadVideo implements playback.Renderer
func (h *Hub) LoadVideo(id playback.BufferID, item v1alpha1.MediaItem) {
	h.sendCommand(v1alpha1.RenderCommand{
		Type:   v1alpha1.RenderLoadVideo,
		Buffer: id.String(),
		Item:   &item,
	})
}

// PlayVideo implements playback.Renderer
func (h *Hub) PlayVideo(id playback.BufferID) {
	h.sendCommand(v1alpha1.RenderCommand{Type: v1alpha1.RenderPlayVideo, Buffer: id.String()})
}

// SetMuted implements playback.Renderer. The error reports transport
// failure only; a renderer whose platform refuses to unmute keeps the
// buffer muted itself.
func (h *Hub) SetMuted(id playback.BufferID, muted bool) error {
	return h.sendCommandErr(v1alpha1.RenderCommand{
		Type:   v1alpha1.RenderSetMuted,
		Buffer: id.String(),
		Muted:  muted,
	})
}

// RestartVideo implements playback.Renderer
func (h *Hub) RestartVideo(id playback.BufferID) {
	h.sendCommand(v1alpha1.RenderCommand{Type: v1alpha1.RenderRestartVideo, Buffer: id.String()})
}

// ShowVideo implements playback.Renderer
func (h *Hub) ShowVideo(id playback.BufferID) {
	h.sendCommand(v1alpha1.RenderCommand{Type: v1alpha1.RenderShowVideo, Buffer: id.String()})
}

// HideVideo implements playback.Renderer
func (h *Hub) HideVideo(id playback.BufferID) {
	h.sendCommand(v1alpha1.RenderCommand{Type: v1alpha1.RenderHideVideo, Buffer: id.String()})
}

// ReleaseVideo implements playback.Renderer
func (h *Hub) ReleaseVideo(id playback.BufferID) {
	h.sendCommand(v1alpha1.RenderCommand{Type: v1alpha1.RenderReleaseVideo, Buffer: id.String()})
}

func (h *Hub) sendCommand(cmd v1alpha1.RenderCommand) {
	if err := h.sendCommandErr(cmd); err != nil {
		// commands to an absent renderer are dropped; the engine keeps
		// its own state and the renderer resyncs via a restart
		h.logger.Debug("render command dropped", "type", cmd.Type, "error", err)
	}
}

func (h *Hub) sendCommandErr(cmd v1alpha1.RenderCommand) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal render command: %w", err)
	}

	// the send stays under the read lock so it cannot race the close
	// in dropRenderer
	h.mu.RLock()
	defer h.mu.RUnlock()
	c := h.renderer
	if c == nil {
		return ErrNoRenderer
	}

	select {
	case c.send <- data:
		return nil
	default:
		return fmt.Errorf("renderer connection buffer full")
	}
}

func (h *Hub) dropRenderer(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.renderer == c {
		h.renderer = nil
		close(c.send)
		h.logger.Info("renderer disconnected")
	}
}

func (h *Hub) dropListener(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.listeners[c]; ok {
		delete(h.listeners, c)
		close(c.send)
		h.logger.Info("listener disconnected", "listeners", len(h.listeners))
	}
}

// readRenderEvents pumps events from the renderer into the sink
func (c *conn) readRenderEvents() {
	defer func() {
		c.hub.dropRenderer(c)
		if err := c.ws.Close(); err != nil {
			c.logger.Debug("error closing renderer connection", "error", err)
		}
	}()

	if err := c.setupRead(); err != nil {
		return
	}

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("renderer websocket read error", "error", err)
			}
			return
		}

		var event v1alpha1.RenderEvent
		if err := json.Unmarshal(message, &event); err != nil {
			c.logger.Error("invalid render event", "error", err)
			continue
		}
		c.hub.dispatch(event)
	}
}

// drainListener reads and discards listener messages so pings and the
// close handshake work
func (c *conn) drainListener() {
	defer func() {
		c.hub.dropListener(c)
		if err := c.ws.Close(); err != nil {
			c.logger.Debug("error closing listener connection", "error", err)
		}
	}()

	if err := c.setupRead(); err != nil {
		return
	}

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *conn) setupRead() error {
	c.ws.SetReadLimit(maxMessageSize)
	if err := c.ws.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error("failed to set read deadline", "error", err)
		return err
	}
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	return nil
}

// dispatch routes one render event into the engine
func (h *Hub) dispatch(event v1alpha1.RenderEvent) {
	h.mu.RLock()
	sink := h.sink
	h.mu.RUnlock()
	if sink == nil {
		h.logger.Warn("render event before sink installed", "type", event.Type)
		return
	}

	switch event.Type {
	case v1alpha1.RenderVideoReady, v1alpha1.RenderVideoEnded, v1alpha1.RenderVideoError:
		id, ok := playback.ParseBufferID(event.Buffer)
		if !ok {
			h.logger.Error("render event names unknown buffer",
				"type", event.Type,
				"buffer", event.Buffer,
			)
			return
		}
		switch event.Type {
		case v1alpha1.RenderVideoReady:
			sink.HandleVideoReady(id)
		case v1alpha1.RenderVideoEnded:
			sink.HandleVideoEnded(id)
		case v1alpha1.RenderVideoError:
			sink.HandleVideoError(id, errors.New(event.Error))
		}
	case v1alpha1.RenderTap:
		sink.HandleTap()
	case v1alpha1.RenderBack:
		sink.HandleBack()
	default:
		h.logger.Warn("unknown render event type", "type", event.Type)
	}
}

func (c *conn) write(mt int, payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(mt, payload)
}

func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.ws.Close(); err != nil {
			c.logger.Debug("error closing connection in writePump", "error", err)
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				if err := c.write(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug("failed to write close message", "error", err)
				}
				return
			}
			if err := c.write(websocket.TextMessage, message); err != nil {
				c.logger.Error("failed to write message", "role", c.role, "error", err)
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		}
	}
}
