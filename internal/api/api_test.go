package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	mock_camera "github.com/orgball2608/joynme/internal/camera/mocks"
	"github.com/orgball2608/joynme/internal/compose"
	"github.com/orgball2608/joynme/internal/connect"
	mock_connect "github.com/orgball2608/joynme/internal/connect/mocks"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/internal/feed"
	"github.com/orgball2608/joynme/internal/notify/notifyimpl"
	"github.com/orgball2608/joynme/internal/profile"
	"github.com/orgball2608/joynme/pkg/config"
	"github.com/orgball2608/joynme/pkg/errors"
	"github.com/orgball2608/joynme/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type env struct {
	handler *Handler
	router  http.Handler
	connect *mock_connect.MockClient
	feed    *feed.Store
	alerts  *notifyimpl.NotifyImpl
}

func newEnv(t *testing.T) *env {
	ctrl := gomock.NewController(t)
	cfg := &config.Config{}
	cfg.RateLimit.Requests = 1
	cfg.RateLimit.Per = time.Hour
	cfg.RateLimit.Burst = 2

	store := feed.New()
	prof := profile.New(domain.Profile{})
	conn := mock_connect.NewMockClient(ctrl)
	alerts := notifyimpl.NewNotifier(logger.Nop(), nil)
	composer := compose.New(compose.Opts{
		Device:  mock_camera.NewMockDevice(ctrl),
		Feed:    store,
		Profile: prof,
		IDs:     feed.NewIDGenerator(),
		Logger:  logger.Nop(),
	})

	h := NewHandler(Opts{
		Config:   cfg,
		Logger:   logger.Nop(),
		Profile:  prof,
		Feed:     store,
		Likes:    feed.NewLikeOverlay(),
		Connect:  conn,
		Composer: composer,
		Alerts:   alerts,
	})
	return &env{handler: h, router: h.Router(), connect: conn, feed: store, alerts: alerts}
}

func (e *env) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "192.0.2.1:5555"
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPatchProfile(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPatch, "/profile", `{"handle":"@me","city":"Boston"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	p := decode[domain.Profile](t, e.do(t, http.MethodGet, "/profile", ""))
	require.NotNil(t, p.Handle)
	require.Equal(t, "@me", *p.Handle)
	require.Equal(t, "Boston", p.Location.City)

	rec = e.do(t, http.MethodPatch, "/profile", `{`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchProfileKeepsOtherFields(t *testing.T) {
	e := newEnv(t)
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPatch, "/profile", `{"city":"Boston"}`).Code)
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPatch, "/profile", `{"state":"NY"}`).Code)

	p := decode[domain.Profile](t, e.do(t, http.MethodPatch, "/profile", `{"handle":""}`))
	require.Nil(t, p.Handle)
	require.Equal(t, domain.Location{City: "Boston", State: "NY"}, p.Location)
}

func TestFeedLikes(t *testing.T) {
	e := newEnv(t)
	front := "front.jpg"
	require.NoError(t, e.feed.Prepend(domain.Post{ID: 1, Likes: 1999, Image: domain.PostImage{Front: &front, Back: "back.jpg"}}))
	require.NoError(t, e.feed.Prepend(domain.Post{ID: 2, Image: domain.PostImage{Back: "f.jpg"}, IsFriendPost: true, FriendNames: []string{"Alice", "Bob"}}))

	rec := e.do(t, http.MethodPost, "/feed/1/like", "")
	require.Equal(t, http.StatusOK, rec.Code)
	item := decode[feedItem](t, rec)
	require.True(t, item.Liked)
	require.Equal(t, "2,000", item.DisplayLikes)
	require.Equal(t, 1999, item.Likes)

	rec = e.do(t, http.MethodPost, "/feed/2/like", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, decode[feedItem](t, rec).Liked)

	require.Equal(t, http.StatusNotFound, e.do(t, http.MethodPost, "/feed/99/like", "").Code)

	items := decode[[]feedItem](t, e.do(t, http.MethodGet, "/feed", ""))
	require.Len(t, items, 2)
	require.Equal(t, int64(2), items[0].ID)

	friends := decode[[]friendConnection](t, e.do(t, http.MethodGet, "/friends", ""))
	require.Len(t, friends, 1)
	require.Equal(t, "Alice and Bob", friends[0].Names)
}

func TestConnectSubmitErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"in flight", errors.Kind(errors.ErrSubmitInFlight, "busy", nil), http.StatusConflict, errors.CodeSubmitInFlight},
		{"no picture", errors.Kind(errors.ErrPrecondition, "Please take a picture before submitting.", nil), http.StatusPreconditionFailed, errors.CodePrecondition},
		{"rejected", errors.Kind(errors.ErrVerificationRejected, "No faces detected", nil), http.StatusUnprocessableEntity, errors.CodeVerificationRejected},
		{"transport", errors.Kind(errors.ErrTransport, "An error occurred while verifying the friend.", nil), http.StatusBadGateway, errors.CodeTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.connect.EXPECT().Submit(gomock.Any()).Return(domain.Post{}, tt.err)

			rec := e.do(t, http.MethodPost, "/connect/submit", "")
			require.Equal(t, tt.status, rec.Code)
			body := decode[errorBody](t, rec)
			require.Equal(t, tt.code, body.Code)
			require.Equal(t, errors.GetMessage(tt.err), body.Message)
		})
	}
}

func TestConnectSubmitRateLimited(t *testing.T) {
	e := newEnv(t)
	e.connect.EXPECT().Submit(gomock.Any()).Return(domain.Post{ID: 7}, nil).Times(2)

	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/connect/submit", "").Code)
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/connect/submit", "").Code)

	rec := e.do(t, http.MethodPost, "/connect/submit", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, codeRateLimited, decode[errorBody](t, rec).Code)
}

func TestConnectCapture(t *testing.T) {
	e := newEnv(t)
	e.connect.EXPECT().Capture(gomock.Any()).Return(nil)
	e.connect.EXPECT().Snapshot().Return(connect.Snapshot{
		State: connect.HasImage,
		Image: &domain.CapturedImage{URI: "file:///c/x.jpg"},
	})

	rec := e.do(t, http.MethodPost, "/connect/capture", "")
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[connect.Snapshot](t, rec)
	require.Equal(t, connect.HasImage, snap.State)

	e.connect.EXPECT().Capture(gomock.Any()).Return(errors.Kind(errors.ErrPermissionDenied, "We need your permission to access the camera", nil))
	require.Equal(t, http.StatusForbidden, e.do(t, http.MethodPost, "/connect/capture", "").Code)
}

func TestCameraSubmitBeforeReady(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/camera/submit", "")
	require.Equal(t, http.StatusPreconditionFailed, rec.Code)

	rec = e.do(t, http.MethodPost, "/camera/swap", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.FacingFront, decode[compose.View](t, rec).Facing)
}

func TestStreamPushesEvents(t *testing.T) {
	e := newEnv(t)
	subscribed := make(chan struct{})
	e.connect.EXPECT().OnTransition(gomock.Any()).DoAndReturn(func(connect.TransitionFunc) func() {
		close(subscribed)
		return func() {}
	})

	srv := httptest.NewServer(e.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/feed/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	select {
	case <-subscribed:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not subscribe")
	}

	require.NoError(t, e.feed.Prepend(domain.Post{ID: 5, Image: domain.PostImage{Back: "b.jpg"}}))
	e.alerts.Notify(context.Background(), domain.Notification{Kind: domain.NotificationSuccess, Title: "Success"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var first, second event
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))

	require.Equal(t, "post", first.Type)
	require.Equal(t, int64(5), first.Post.ID)
	require.Equal(t, "notification", second.Type)
	require.Equal(t, "Success", second.Notification.Title)
}
