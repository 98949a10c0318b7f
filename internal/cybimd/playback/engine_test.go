package playback

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

// rendererCall records one Renderer invocation for assertions
type rendererCall struct {
	op     string
	buffer BufferID
	source string
}

// fakeRenderer records every call and lets tests refuse unmuting
type fakeRenderer struct {
	mu      sync.Mutex
	calls   []rendererCall
	muteErr error
}

func (r *fakeRenderer) record(op string, buffer BufferID, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, rendererCall{op: op, buffer: buffer, source: source})
}

func (r *fakeRenderer) ShowImage(item v1alpha1.MediaItem, _ v1alpha1.Transition, _ int) {
	r.record("ShowImage", BufferA, item.Content)
}
func (r *fakeRenderer) HideImage() { r.record("HideImage", BufferA, "") }

func (r *fakeRenderer) PlayVideo(id BufferID) { r.record("PlayVideo", id, "") }

func (r *fakeRenderer) RestartVideo(id BufferID) { r.record("RestartVideo", id, "") }

func (r *fakeRenderer) ShowVideo(id BufferID) { r.record("ShowVideo", id, "") }

func (r *fakeRenderer) HideVideo(id BufferID) { r.record("HideVideo", id, "") }

func (r *fakeRenderer) ReleaseVideo(id BufferID) { r.record("ReleaseVideo", id, "") }

func (r *fakeRenderer) LoadVideo(id BufferID, item v1alpha1.MediaItem) {
	r.record("LoadVideo", id, item.Content)
}

func (r *fakeRenderer) SetMuted(id BufferID, muted bool) error {
	r.record("SetMuted", id, "")
	if !muted {
		return r.muteErr
	}
	return nil
}

// ops returns the recorded operation names in order, filtered to ops
// the test cares about
func (r *fakeRenderer) ops(names ...string) []rendererCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	var out []rendererCall
	for _, c := range r.calls {
		if len(names) == 0 || keep[c.op] {
			out = append(out, c)
		}
	}
	return out
}

func (r *fakeRenderer) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []v1alpha1.PlayerEvent
}

func (p *recordingPublisher) Publish(event v1alpha1.PlayerEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []v1alpha1.PlayerEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]v1alpha1.PlayerEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestEngine(t *testing.T) (*Engine, *fakeRenderer, *recordingPublisher, *clock.Mock) {
	t.Helper()
	renderer := &fakeRenderer{}
	events := &recordingPublisher{}
	clk := clock.NewMock()
	clk.Set(mondayAt(12, 0))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(renderer, events, clk, logger), renderer, events, clk
}

func defaultSettings() v1alpha1.PlaybackSettings {
	s := v1alpha1.DefaultPlaybackSettings()
	s.DefaultImageDuration = 5
	return s
}

func TestStartNoEligibleContent(t *testing.T) {
	engine, renderer, _, _ := newTestEngine(t)

	err := engine.Start(nil, defaultSettings())
	assert.ErrorIs(t, err, ErrNoEligibleContent)
	assert.Equal(t, v1alpha1.PlayerStopped, engine.Status().State)

	// campaigns without media are just as ineligible
	err = engine.Start([]v1alpha1.Campaign{
		testCampaign("empty", v1alpha1.Schedule{}),
	}, defaultSettings())
	assert.ErrorIs(t, err, ErrNoEligibleContent)
	assert.Equal(t, v1alpha1.PlayerStopped, engine.Status().State)
	assert.Empty(t, renderer.ops("ShowImage", "ShowVideo", "PlayVideo"))
}

func TestImageThenVideoScenario(t *testing.T) {
	engine, renderer, _, clk := newTestEngine(t)

	five := 5
	img := imageItem("img", &five)
	vid := videoItem("vid")
	c := testCampaign("c", v1alpha1.Schedule{}, img, vid)
	c.Loop = true

	require.NoError(t, engine.Start([]v1alpha1.Campaign{c}, defaultSettings()))

	// image shows immediately and the next video preloads into standby
	shows := renderer.ops("ShowImage")
	require.Len(t, shows, 1)
	assert.Equal(t, img.Content, shows[0].source)
	loads := renderer.ops("LoadVideo")
	require.Len(t, loads, 1)
	assert.Equal(t, BufferB, loads[0].buffer)
	assert.Equal(t, vid.Content, loads[0].source)

	// nothing happens before the countdown expires
	clk.Add(4 * time.Second)
	assert.Equal(t, img.ID, *engine.Status().ItemID)

	// at 12:00:05 the image gives way to the preloaded video
	clk.Add(time.Second)
	assert.Equal(t, vid.ID, *engine.Status().ItemID)

	engine.HandleVideoReady(BufferB)
	assert.NotEmpty(t, renderer.ops("ShowVideo"))
	assert.NotEmpty(t, renderer.ops("PlayVideo"))

	// video completion wraps back to item 0, not a stall
	engine.HandleVideoEnded(BufferB)
	status := engine.Status()
	assert.Equal(t, v1alpha1.PlayerPlaying, status.State)
	assert.Equal(t, img.ID, *status.ItemID)
}

func TestBufferAlternation(t *testing.T) {
	engine, renderer, _, _ := newTestEngine(t)

	v1, v2, v3 := videoItem("v1"), videoItem("v2"), videoItem("v3")
	c := testCampaign("c", v1alpha1.Schedule{}, v1, v2, v3)

	require.NoError(t, engine.Start([]v1alpha1.Campaign{c}, defaultSettings()))

	// v1 plays from A while v2 preloads into B
	assert.Equal(t, "A", engine.Status().ActiveBuffer)
	engine.HandleVideoReady(BufferA)
	engine.HandleVideoReady(BufferB)

	engine.HandleVideoEnded(BufferA)
	assert.Equal(t, "B", engine.Status().ActiveBuffer)
	assert.Equal(t, v2.ID, *engine.Status().ItemID)

	engine.HandleVideoReady(BufferA) // v3 preload
	engine.HandleVideoEnded(BufferB)
	assert.Equal(t, "A", engine.Status().ActiveBuffer)
	assert.Equal(t, v3.ID, *engine.Status().ItemID)

	// every load landed in the buffer that was not on screen, and the
	// wrap-around preload of v1 continues the alternation
	loads := renderer.ops("LoadVideo")
	assert.Equal(t, []rendererCall{
		{op: "LoadVideo", buffer: BufferA, source: v1.Content},
		{op: "LoadVideo", buffer: BufferB, source: v2.Content},
		{op: "LoadVideo", buffer: BufferA, source: v3.Content},
		{op: "LoadVideo", buffer: BufferB, source: v1.Content},
	}, loads)
}

func TestSoloSingleItemLoopRestartsBuffer(t *testing.T) {
	engine, renderer, _, _ := newTestEngine(t)

	c := testCampaign("solo", v1alpha1.Schedule{}, videoItem("v"))
	c.Loop = true

	require.NoError(t, engine.Start([]v1alpha1.Campaign{c}, defaultSettings()))
	engine.HandleVideoReady(BufferA)
	renderer.reset()

	engine.HandleVideoEnded(BufferA)
	restarts := renderer.ops("RestartVideo")
	require.Len(t, restarts, 1)
	assert.Equal(t, BufferA, restarts[0].buffer)
	// no swap, no reload
	assert.Empty(t, renderer.ops("LoadVideo", "ReleaseVideo"))
	assert.Equal(t, "A", engine.Status().ActiveBuffer)
}

func TestVideoErrorAdvances(t *testing.T) {
	engine, _, events, _ := newTestEngine(t)

	bad := videoItem("bad")
	img := imageItem("img", nil)
	c := testCampaign("c", v1alpha1.Schedule{}, bad, img)

	require.NoError(t, engine.Start([]v1alpha1.Campaign{c}, defaultSettings()))
	engine.HandleVideoError(BufferA, errors.New("decode failed"))

	status := engine.Status()
	assert.Equal(t, v1alpha1.PlayerPlaying, status.State)
	assert.Equal(t, img.ID, *status.ItemID)
	assert.Contains(t, events.types(), v1alpha1.EventMediaError)
}

func TestAutoplayBlockedStaysMuted(t *testing.T) {
	engine, renderer, events, _ := newTestEngine(t)
	renderer.muteErr = errors.New("autoplay policy")

	c := testCampaign("c", v1alpha1.Schedule{}, videoItem("v1"), videoItem("v2"))

	require.NoError(t, engine.Start([]v1alpha1.Campaign{c}, defaultSettings()))
	engine.HandleVideoReady(BufferA)

	// still playing, not treated as a media failure
	assert.Equal(t, v1alpha1.PlayerPlaying, engine.Status().State)
	assert.NotEmpty(t, renderer.ops("PlayVideo"))
	assert.NotContains(t, events.types(), v1alpha1.EventMediaError)
}

func TestDoubleTapExit(t *testing.T) {
	c := testCampaign("c", v1alpha1.Schedule{}, imageItem("a", nil))

	t.Run("two taps within the window exit", func(t *testing.T) {
		engine, _, events, clk := newTestEngine(t)
		require.NoError(t, engine.Start([]v1alpha1.Campaign{c}, defaultSettings()))

		engine.HandleTap()
		clk.Add(900 * time.Millisecond)
		engine.HandleTap()

		assert.Equal(t, v1alpha1.PlayerStopped, engine.Status().State)
		assert.Contains(t, events.types(), v1alpha1.EventExitRequested)
		assert.Contains(t, events.types(), v1alpha1.EventPlaybackStopped)
	})

	t.Run("a lone tap does nothing", func(t *testing.T) {
		engine, _, events, clk := newTestEngine(t)
		require.NoError(t, engine.Start([]v1alpha1.Campaign{c}, defaultSettings()))

		engine.HandleTap()
		clk.Add(1100 * time.Millisecond)

		assert.Equal(t, v1alpha1.PlayerPlaying, engine.Status().State)
		assert.NotContains(t, events.types(), v1alpha1.EventExitRequested)
	})

	t.Run("the counter resets after the window", func(t *testing.T) {
		engine, _, _, clk := newTestEngine(t)
		require.NoError(t, engine.Start([]v1alpha1.Campaign{c}, defaultSettings()))

		engine.HandleTap()
		clk.Add(1100 * time.Millisecond)
		engine.HandleTap()

		assert.Equal(t, v1alpha1.PlayerPlaying, engine.Status().State)
	})
}

func TestBackKeyExitsImmediately(t *testing.T) {
	engine, renderer, events, _ := newTestEngine(t)

	c := testCampaign("c", v1alpha1.Schedule{}, videoItem("v"), imageItem("i", nil))
	require.NoError(t, engine.Start([]v1alpha1.Campaign{c}, defaultSettings()))
	engine.HandleVideoReady(BufferA)

	engine.HandleBack()

	assert.Equal(t, v1alpha1.PlayerStopped, engine.Status().State)
	assert.Contains(t, events.types(), v1alpha1.EventExitRequested)
	// both buffers released on the way out
	releases := renderer.ops("ReleaseVideo")
	assert.Len(t, releases, 2)
}

func TestStopIsIdempotent(t *testing.T) {
	engine, _, events, _ := newTestEngine(t)

	engine.Stop()
	engine.Stop()
	assert.Empty(t, events.types())

	c := testCampaign("c", v1alpha1.Schedule{}, imageItem("a", nil))
	require.NoError(t, engine.Start([]v1alpha1.Campaign{c}, defaultSettings()))
	engine.Stop()
	engine.Stop()

	stops := 0
	for _, tp := range events.types() {
		if tp == v1alpha1.EventPlaybackStopped {
			stops++
		}
	}
	assert.Equal(t, 1, stops)
}

func TestStaleCallbacksAreIgnored(t *testing.T) {
	engine, renderer, _, clk := newTestEngine(t)

	c := testCampaign("c", v1alpha1.Schedule{}, imageItem("a", nil), videoItem("v"))
	require.NoError(t, engine.Start([]v1alpha1.Campaign{c}, defaultSettings()))
	engine.Stop()
	renderer.reset()

	// the old session's image countdown fires into the void
	clk.Add(10 * time.Second)
	assert.Equal(t, v1alpha1.PlayerStopped, engine.Status().State)

	// renderer events for detached sources are no-ops too
	engine.HandleVideoReady(BufferB)
	engine.HandleVideoEnded(BufferB)
	engine.HandleTap()
	assert.Empty(t, renderer.ops())
}

func TestRestartSupersedesSession(t *testing.T) {
	engine, _, _, clk := newTestEngine(t)

	first := testCampaign("first", v1alpha1.Schedule{}, imageItem("a", nil))
	second := testCampaign("second", v1alpha1.Schedule{}, imageItem("b", nil), imageItem("c", nil))

	require.NoError(t, engine.Start([]v1alpha1.Campaign{first}, defaultSettings()))
	require.NoError(t, engine.Start([]v1alpha1.Campaign{second}, defaultSettings()))

	// only the new session's timer advances the new sequencer
	clk.Add(5 * time.Second)
	status := engine.Status()
	assert.Equal(t, v1alpha1.PlayerPlaying, status.State)
	assert.Equal(t, "second", status.CampaignName)
	assert.Equal(t, "c", status.ItemName)
}

func TestNoReFilteringMidPlayback(t *testing.T) {
	engine, _, _, clk := newTestEngine(t)

	// Y's window closes at 12:05 but the session snapshot keeps it
	x := testCampaign("X", v1alpha1.Schedule{}, videoItem("x1"))
	y := testCampaign("Y", v1alpha1.Schedule{
		Enabled: true, StartTime: "11:00", EndTime: "12:05",
	}, videoItem("y1"))

	require.NoError(t, engine.Start([]v1alpha1.Campaign{x, y}, defaultSettings()))
	assert.Equal(t, "X", engine.Status().CampaignName)
	engine.HandleVideoReady(BufferA)

	clk.Add(30 * time.Minute) // well past Y's end time

	engine.HandleVideoEnded(BufferA)
	assert.Equal(t, "Y", engine.Status().CampaignName)
}

func TestImageDurationFallsBackToDefault(t *testing.T) {
	engine, _, _, clk := newTestEngine(t)

	c := testCampaign("c", v1alpha1.Schedule{},
		imageItem("noDuration", nil), imageItem("other", nil))
	settings := defaultSettings()
	settings.DefaultImageDuration = 7

	require.NoError(t, engine.Start([]v1alpha1.Campaign{c}, settings))

	clk.Add(6 * time.Second)
	assert.Equal(t, "noDuration", engine.Status().ItemName)
	clk.Add(time.Second)
	assert.Equal(t, "other", engine.Status().ItemName)
}
