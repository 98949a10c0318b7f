// Package playback implements the signage playback core: schedule
// evaluation, campaign sequencing, the dual-buffer video engine, and
// the exit gate.
package playback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

// Engine owns the two video buffers and the image output and decides
// what is visible at any instant. It renders the sequencer's current
// item, preloads the next video into the standby buffer so transitions
// have no decode latency, and advances on image timers and media-end
// events.
//
// All entry points serialize on one mutex; combined with the session
// counter this models the single cooperative event loop of the device.
// A callback from a stopped or superseded session finds either a
// mismatched session token or an idle slot and does nothing.
type Engine struct {
	renderer Renderer
	events   EventPublisher
	clock    clock.Clock
	logger   *slog.Logger

	mu         sync.Mutex
	state      v1alpha1.PlayerState
	session    uint64
	settings   v1alpha1.PlaybackSettings
	seq        *Sequencer
	active     BufferID
	slots      [2]slot
	imageTimer *clock.Timer
	gate       *exitGate
	startedAt  time.Time
}

// NewEngine creates a playback engine. The renderer and publisher are
// owned by the caller; the engine never closes them.
func NewEngine(renderer Renderer, events EventPublisher, clk clock.Clock, logger *slog.Logger) *Engine {
	return &Engine{
		renderer: renderer,
		events:   events,
		clock:    clk,
		logger:   logger.With("component", "playback-engine"),
		state:    v1alpha1.PlayerStopped,
		gate:     newExitGate(),
	}
}

// Start evaluates schedules against the injected clock and begins a
// new playback session over the eligible campaigns. It returns
// ErrNoEligibleContent without entering the playing state when nothing
// may play. A session already running is superseded.
//
// Eligibility is evaluated once here and the snapshot held for the
// whole session. A campaign whose window elapses mid-session keeps
// playing until the host restarts playback.
func (e *Engine) Start(campaigns []v1alpha1.Campaign, settings v1alpha1.PlaybackSettings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	eligible := FilterEligible(campaigns, e.clock.Now())
	if len(eligible) == 0 {
		e.logger.Info("no eligible campaigns", "offered", len(campaigns))
		return ErrNoEligibleContent
	}
	seq, err := NewSequencer(eligible)
	if err != nil {
		return err
	}

	if e.state == v1alpha1.PlayerPlaying {
		e.stopLocked(false)
	}

	e.session++
	e.seq = seq
	e.settings = settings
	e.state = v1alpha1.PlayerPlaying
	e.active = BufferA
	e.slots = [2]slot{}
	e.startedAt = e.clock.Now()
	e.gate.Reset()

	e.logger.Info("playback started",
		"eligible", len(eligible),
		"orientation", settings.Orientation,
	)
	e.publishLocked(v1alpha1.EventPlaybackStarted, "")
	e.playCurrentLocked()
	return nil
}

// Stop ends the current session. It cancels the image timer, hides
// and releases both buffers and the image surface, and clears the
// playback state. Safe to call from any state, including stopped.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked(true)
}

// Status returns a snapshot of the engine
func (e *Engine) Status() v1alpha1.PlayerStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	status := v1alpha1.PlayerStatus{State: e.state}
	if e.state != v1alpha1.PlayerPlaying || e.seq == nil {
		return status
	}
	campaign := e.seq.CurrentCampaign()
	item := e.seq.Current()
	cid, iid := campaign.ID, item.ID
	started := e.startedAt
	status.CampaignID = &cid
	status.CampaignName = campaign.Name
	status.ItemID = &iid
	status.ItemName = item.Name
	status.ItemKind = item.Kind
	status.ActiveBuffer = e.active.String()
	status.StartedAt = &started
	return status
}

// HandleVideoReady reports that a buffer finished loading. If it is
// the active buffer the video becomes visible and starts; a standby
// buffer is simply marked ready for the coming swap.
func (e *Engine) HandleVideoReady(id BufferID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != v1alpha1.PlayerPlaying {
		return
	}
	sl := &e.slots[id]
	if sl.session != e.session || sl.state != bufferLoading {
		return
	}
	sl.state = bufferReady
	if id == e.active {
		e.playReadyLocked(id)
	}
}

// HandleVideoEnded reports that the active buffer's video completed.
// A lone single-item looping campaign restarts in place; everything
// else advances the sequencer.
func (e *Engine) HandleVideoEnded(id BufferID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != v1alpha1.PlayerPlaying || id != e.active {
		return
	}
	sl := &e.slots[id]
	if sl.session != e.session || sl.state != bufferPlaying {
		return
	}
	if e.seq.SoloSingleItemLoop() {
		// restarting the buffer avoids a buffer swap for a no-op loop
		e.renderer.RestartVideo(id)
		return
	}
	e.advanceLocked()
}

// HandleVideoError reports a load or decode failure. The failing item
// is logged and skipped; a failure never stalls the rotation. An error
// on the standby buffer only frees the slot: the advance path rebinds
// the source and a repeat failure then takes this same skip path.
func (e *Engine) HandleVideoError(id BufferID, cause error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != v1alpha1.PlayerPlaying {
		return
	}
	sl := &e.slots[id]
	if sl.session != e.session || sl.state == bufferIdle {
		return
	}
	e.logger.Error("video failed, skipping",
		"buffer", id.String(),
		"source", sl.source,
		"error", cause,
	)
	if id != e.active {
		e.slots[id] = slot{}
		e.events.Publish(v1alpha1.PlayerEvent{
			Type:      v1alpha1.EventMediaError,
			Timestamp: e.clock.Now(),
			Error:     cause.Error(),
		})
		return
	}
	e.publishLocked(v1alpha1.EventMediaError, cause.Error())
	e.slots[id] = slot{}
	e.advanceLocked()
}

// HandleTap feeds the two-tap exit gesture
func (e *Engine) HandleTap() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != v1alpha1.PlayerPlaying {
		return
	}
	if e.gate.Tap(e.clock.Now()) {
		e.exitLocked()
	}
}

// HandleBack exits immediately on the designated back input
func (e *Engine) HandleBack() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != v1alpha1.PlayerPlaying {
		return
	}
	e.exitLocked()
}

func (e *Engine) exitLocked() {
	e.logger.Info("exit requested")
	e.events.Publish(v1alpha1.PlayerEvent{
		Type:      v1alpha1.EventExitRequested,
		Timestamp: e.clock.Now(),
	})
	e.stopLocked(true)
}

func (e *Engine) stopLocked(publish bool) {
	if e.state == v1alpha1.PlayerStopped {
		return
	}
	// invalidate timers and in-flight renderer events from this session
	e.session++
	e.cancelImageTimerLocked()
	e.renderer.HideImage()
	for _, id := range []BufferID{BufferA, BufferB} {
		e.renderer.HideVideo(id)
		e.renderer.ReleaseVideo(id)
	}
	e.slots = [2]slot{}
	e.seq = nil
	e.state = v1alpha1.PlayerStopped
	e.gate.Reset()
	e.logger.Info("playback stopped")
	if publish {
		e.events.Publish(v1alpha1.PlayerEvent{
			Type:      v1alpha1.EventPlaybackStopped,
			Timestamp: e.clock.Now(),
		})
	}
}

// playCurrentLocked renders the sequencer's current item and kicks off
// the preload of whatever follows it.
func (e *Engine) playCurrentLocked() {
	item := e.seq.Current()
	e.publishLocked(v1alpha1.EventNowPlaying, "")

	switch item.Kind {
	case v1alpha1.MediaKindImage:
		e.showImageLocked(item)
	default:
		e.showVideoLocked(item)
	}
	e.preloadNextLocked()
}

func (e *Engine) showImageLocked(item v1alpha1.MediaItem) {
	e.cancelImageTimerLocked()

	// the image output replaces whichever buffer was visible
	if e.slots[e.active].state != bufferIdle {
		e.renderer.HideVideo(e.active)
		e.renderer.ReleaseVideo(e.active)
		e.slots[e.active] = slot{}
	}
	e.renderer.ShowImage(item, e.settings.Transition, e.settings.TransitionDurationMs)

	seconds := e.settings.DefaultImageDuration
	if item.Duration != nil && *item.Duration > 0 {
		seconds = *item.Duration
	}
	token := e.session
	e.imageTimer = e.clock.AfterFunc(time.Duration(seconds)*time.Second, func() {
		e.imageExpired(token)
	})
}

func (e *Engine) showVideoLocked(item v1alpha1.MediaItem) {
	e.cancelImageTimerLocked()
	e.renderer.HideImage()

	// play from the buffer already holding the source when the preload
	// did its job; otherwise claim whichever buffer is not on screen
	target := e.active
	if e.slots[target].source != item.Content {
		other := otherBuffer(target)
		if e.slots[other].source == item.Content || e.slots[target].state == bufferPlaying {
			target = other
		}
	}

	prev := e.active
	e.active = target
	if prev != target && e.slots[prev].state != bufferIdle {
		e.renderer.HideVideo(prev)
		e.renderer.ReleaseVideo(prev)
		e.slots[prev] = slot{}
	}

	sl := &e.slots[target]
	switch {
	case sl.source == item.Content && sl.state == bufferReady:
		e.playReadyLocked(target)
	case sl.source == item.Content && sl.state == bufferLoading:
		// the ready event will start it
		sl.session = e.session
	default:
		e.slots[target] = slot{state: bufferLoading, source: item.Content, session: e.session}
		e.renderer.LoadVideo(target, item)
	}
}

// playReadyLocked makes a ready buffer the visible output and starts
// it. Playback begins muted; the unmute attempt right after can be
// refused by platform autoplay policy, in which case the video keeps
// playing silently.
func (e *Engine) playReadyLocked(id BufferID) {
	e.slots[id].state = bufferPlaying
	e.renderer.ShowVideo(id)
	e.renderer.PlayVideo(id)
	if err := e.renderer.SetMuted(id, false); err != nil {
		e.logger.Warn("unmute refused, playing muted",
			"buffer", id.String(),
			"error", err,
		)
	}
}

func (e *Engine) preloadNextLocked() {
	if e.seq.SoloSingleItemLoop() {
		return
	}
	next := e.seq.PeekNext()
	if next.Kind != v1alpha1.MediaKindVideo {
		// images need no preload; the platform caches them
		return
	}
	standby := otherBuffer(e.active)
	sl := &e.slots[standby]
	if sl.source == next.Content && sl.state != bufferIdle {
		sl.session = e.session
		return
	}
	e.slots[standby] = slot{state: bufferLoading, source: next.Content, session: e.session}
	e.renderer.LoadVideo(standby, next)
}

func (e *Engine) imageExpired(token uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if token != e.session || e.state != v1alpha1.PlayerPlaying {
		return
	}
	e.advanceLocked()
}

func (e *Engine) advanceLocked() {
	e.cancelImageTimerLocked()
	e.seq.Advance()
	e.playCurrentLocked()
}

func (e *Engine) cancelImageTimerLocked() {
	if e.imageTimer != nil {
		e.imageTimer.Stop()
		e.imageTimer = nil
	}
}

func (e *Engine) publishLocked(t v1alpha1.PlayerEventType, errText string) {
	ev := v1alpha1.PlayerEvent{
		Type:      t,
		Timestamp: e.clock.Now(),
		Error:     errText,
	}
	if e.seq != nil {
		cid := e.seq.CurrentCampaign().ID
		iid := e.seq.Current().ID
		ev.CampaignID = &cid
		ev.ItemID = &iid
	}
	e.events.Publish(ev)
}
