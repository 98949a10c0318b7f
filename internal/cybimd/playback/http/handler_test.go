package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
	werrors "github.com/cybim/cybim-signage/internal/cybimd/errors"
	"github.com/cybim/cybim-signage/internal/cybimd/playback"
)

type mockCampaignService struct {
	mock.Mock
}

func (m *mockCampaignService) Create(ctx context.Context, c *v1alpha1.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCampaignService) Get(ctx context.Context, id uuid.UUID) (*v1alpha1.Campaign, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*v1alpha1.Campaign), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCampaignService) List(ctx context.Context) ([]v1alpha1.Campaign, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]v1alpha1.Campaign), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCampaignService) Update(ctx context.Context, id uuid.UUID, update *v1alpha1.CampaignUpdate) (*v1alpha1.Campaign, error) {
	args := m.Called(ctx, id, update)
	if c := args.Get(0); c != nil {
		return c.(*v1alpha1.Campaign), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCampaignService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockSettingsService struct {
	mock.Mock
}

func (m *mockSettingsService) Get(ctx context.Context) (v1alpha1.PlaybackSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(v1alpha1.PlaybackSettings), args.Error(1)
}

func (m *mockSettingsService) Set(ctx context.Context, s v1alpha1.PlaybackSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type mockPlayer struct {
	mock.Mock
}

func (m *mockPlayer) Start(campaigns []v1alpha1.Campaign, settings v1alpha1.PlaybackSettings) error {
	args := m.Called(campaigns, settings)
	return args.Error(0)
}

func (m *mockPlayer) Stop() {
	m.Called()
}

func (m *mockPlayer) Status() v1alpha1.PlayerStatus {
	args := m.Called()
	return args.Get(0).(v1alpha1.PlayerStatus)
}

type noopSockets struct{}

func (noopSockets) ServeRenderer(w http.ResponseWriter, r *http.Request) {}
func (noopSockets) ServeEvents(w http.ResponseWriter, r *http.Request)  {}

type testEnv struct {
	handler   *Handler
	player    *mockPlayer
	campaigns *mockCampaignService
	settings  *mockSettingsService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		player:    &mockPlayer{},
		campaigns: &mockCampaignService{},
		settings:  &mockSettingsService{},
	}
	env.handler = NewHandler(env.player, env.campaigns, env.settings, noopSockets{}, zerolog.Nop())
	return env
}

func (env *testEnv) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	env.handler.Router().ServeHTTP(rec, req)
	return rec
}

func TestSocketLimitGatesConnects(t *testing.T) {
	env := newTestEnv()
	env.campaigns.On("List", mock.Anything).Return([]v1alpha1.Campaign{}, nil)

	var gated []string
	env.handler.WithSocketLimit(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gated = append(gated, r.URL.Path)
			w.WriteHeader(http.StatusTooManyRequests)
		})
	})

	rec := env.request(t, http.MethodGet, "/renderer/ws", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = env.request(t, http.MethodGet, "/events/ws", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// API routes are outside the socket group
	rec = env.request(t, http.MethodGet, "/campaigns", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{"/renderer/ws", "/events/ws"}, gated)
}

func TestCreateCampaign(t *testing.T) {
	env := newTestEnv()
	env.campaigns.On("Create", mock.Anything, mock.AnythingOfType("*v1alpha1.Campaign")).Return(nil)

	c := v1alpha1.Campaign{
		Name: "lobby",
		Items: []v1alpha1.MediaItem{
			{Name: "intro", Kind: v1alpha1.MediaKindVideo, Content: "/media/intro.mp4"},
		},
	}

	rec := env.request(t, http.MethodPost, "/campaigns/", c)
	assert.Equal(t, http.StatusCreated, rec.Code)
	env.campaigns.AssertExpectations(t)
}

func TestCreateCampaignInvalidBody(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/campaigns/", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	env.handler.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.campaigns.AssertNotCalled(t, "Create")
}

func TestGetCampaignNotFound(t *testing.T) {
	env := newTestEnv()
	id := uuid.New()
	env.campaigns.On("Get", mock.Anything, id).Return(nil, werrors.ErrNotFound)

	rec := env.request(t, http.MethodGet, "/campaigns/"+id.String()+"/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCampaignBadID(t *testing.T) {
	env := newTestEnv()

	rec := env.request(t, http.MethodGet, "/campaigns/not-a-uuid/", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.campaigns.AssertNotCalled(t, "Get")
}

func TestUpdateCampaignVersionConflict(t *testing.T) {
	env := newTestEnv()
	id := uuid.New()
	env.campaigns.On("Update", mock.Anything, id, mock.Anything).Return(nil, werrors.ErrVersionMismatch)

	name := "renamed"
	rec := env.request(t, http.MethodPut, "/campaigns/"+id.String()+"/", v1alpha1.CampaignUpdate{Name: &name})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListCampaigns(t *testing.T) {
	env := newTestEnv()
	env.campaigns.On("List", mock.Anything).Return([]v1alpha1.Campaign{
		{ID: uuid.New(), Name: "lobby"},
		{ID: uuid.New(), Name: "cafeteria"},
	}, nil)

	rec := env.request(t, http.MethodGet, "/campaigns/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list v1alpha1.CampaignList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list.Items, 2)
}

func TestDeleteCampaign(t *testing.T) {
	env := newTestEnv()
	id := uuid.New()
	env.campaigns.On("Delete", mock.Anything, id).Return(nil)

	rec := env.request(t, http.MethodDelete, "/campaigns/"+id.String()+"/", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetSettings(t *testing.T) {
	env := newTestEnv()
	env.settings.On("Get", mock.Anything).Return(v1alpha1.DefaultPlaybackSettings(), nil)

	rec := env.request(t, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var s v1alpha1.PlaybackSettings
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&s))
	assert.Equal(t, v1alpha1.OrientationLandscape, s.Orientation)
}

func TestSetSettingsInvalid(t *testing.T) {
	env := newTestEnv()
	badSettings := v1alpha1.PlaybackSettings{Orientation: "diagonal"}
	env.settings.On("Set", mock.Anything, badSettings).Return(&v1alpha1.Error{
		Code:    "InvalidSettings",
		Message: `unknown orientation "diagonal"`,
	})

	rec := env.request(t, http.MethodPut, "/settings", badSettings)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartPlayer(t *testing.T) {
	env := newTestEnv()
	campaigns := []v1alpha1.Campaign{{ID: uuid.New(), Name: "lobby"}}
	settings := v1alpha1.DefaultPlaybackSettings()
	env.campaigns.On("List", mock.Anything).Return(campaigns, nil)
	env.settings.On("Get", mock.Anything).Return(settings, nil)
	env.player.On("Start", campaigns, settings).Return(nil)
	env.player.On("Status").Return(v1alpha1.PlayerStatus{State: v1alpha1.PlayerPlaying})

	rec := env.request(t, http.MethodPost, "/player/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status v1alpha1.PlayerStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, v1alpha1.PlayerPlaying, status.State)
	env.player.AssertExpectations(t)
}

func TestStartPlayerNoEligibleContent(t *testing.T) {
	env := newTestEnv()
	env.campaigns.On("List", mock.Anything).Return([]v1alpha1.Campaign{}, nil)
	env.settings.On("Get", mock.Anything).Return(v1alpha1.DefaultPlaybackSettings(), nil)
	env.player.On("Start", mock.Anything, mock.Anything).Return(playback.ErrNoEligibleContent)

	rec := env.request(t, http.MethodPost, "/player/start", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStopPlayer(t *testing.T) {
	env := newTestEnv()
	env.player.On("Stop").Return()
	env.player.On("Status").Return(v1alpha1.PlayerStatus{State: v1alpha1.PlayerStopped})

	rec := env.request(t, http.MethodPost, "/player/stop", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env.player.AssertExpectations(t)
}

func TestPlayerStatus(t *testing.T) {
	env := newTestEnv()
	env.player.On("Status").Return(v1alpha1.PlayerStatus{State: v1alpha1.PlayerStopped})

	rec := env.request(t, http.MethodGet, "/player/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status v1alpha1.PlayerStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, v1alpha1.PlayerStopped, status.State)
}
