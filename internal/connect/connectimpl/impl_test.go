package connectimpl

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	mock_camera "github.com/orgball2608/joynme/internal/camera/mocks"
	"github.com/orgball2608/joynme/internal/connect"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/internal/feed"
	mock_notify "github.com/orgball2608/joynme/internal/notify/mocks"
	"github.com/orgball2608/joynme/internal/profile"
	mock_verifier "github.com/orgball2608/joynme/internal/verifier/mocks"
	"github.com/orgball2608/joynme/pkg/errors"
	"github.com/orgball2608/joynme/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	device   *mock_camera.MockDevice
	verifier *mock_verifier.MockClient
	notifier *mock_notify.MockClient
	feed     *feed.Store
	profile  *profile.Store
	flow     *ConnectImpl
	seen     []connect.Transition
	seenMu   sync.Mutex
}

func newFixture(t *testing.T, p domain.Profile) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		device:   mock_camera.NewMockDevice(ctrl),
		verifier: mock_verifier.NewMockClient(ctrl),
		notifier: mock_notify.NewMockClient(ctrl),
		feed:     feed.New(),
		profile:  profile.New(p),
	}
	clock := time.UnixMilli(1_700_000_000_000)
	f.flow = NewWorkflow(Deps{
		Device:   f.device,
		Verifier: f.verifier,
		Feed:     f.feed,
		Profile:  f.profile,
		IDs:      feed.NewIDGeneratorWithClock(func() time.Time { return clock }),
		Notifier: f.notifier,
		Logger:   logger.Nop(),
	})
	f.flow.OnTransition(func(tr connect.Transition) {
		f.seenMu.Lock()
		defer f.seenMu.Unlock()
		f.seen = append(f.seen, tr)
	})
	return f
}

func (f *fixture) transitions() []connect.Transition {
	f.seenMu.Lock()
	defer f.seenMu.Unlock()
	return append([]connect.Transition(nil), f.seen...)
}

// capture takes one picture with a granted camera.
func (f *fixture) capture(t *testing.T, uri string) {
	f.device.EXPECT().PermissionStatus(gomock.Any()).Return(domain.PermissionGranted, nil).MaxTimes(1)
	f.device.EXPECT().Ready().Return(true)
	f.device.EXPECT().Capture(gomock.Any(), domain.FacingFront).Return(domain.CapturedImage{URI: uri}, nil)
	require.NoError(t, f.flow.Capture(context.Background()))
	require.Equal(t, connect.HasImage, f.flow.Snapshot().State)
}

func strPtr(s string) *string { return &s }

func TestSubmitSuccessPrependsFriendPost(t *testing.T) {
	f := newFixture(t, domain.Profile{
		Handle:          strPtr("@me"),
		Location:        domain.Location{City: "Amsterdam", State: "MA"},
		ProfileImageRef: "https://img/me.png",
	})
	require.NoError(t, f.feed.Prepend(domain.Post{ID: 1, Image: domain.PostImage{Back: "old.jpg"}}))
	f.capture(t, "file:///c/front.jpg")

	f.verifier.EXPECT().
		Verify(gomock.Any(), domain.CapturedImage{URI: "file:///c/front.jpg"}).
		Return([]string{"alice", "bob"}, nil)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Do(func(_ context.Context, n domain.Notification) {
		require.Equal(t, domain.NotificationSuccess, n.Kind)
		require.Equal(t, "Success", n.Title)
		require.Equal(t, "Friend verified successfully!", n.Message)
		require.Equal(t, []string{"Alice", "Bob"}, n.FriendNames)
	})

	post, err := f.flow.Submit(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, f.feed.Len())
	head, ok := f.feed.Head()
	require.True(t, ok)
	require.Equal(t, post, head)
	require.True(t, head.IsFriendPost)
	require.Nil(t, head.Image.Front)
	require.Equal(t, "file:///c/front.jpg", head.Image.Back)
	require.Equal(t, []string{"Alice", "Bob"}, head.FriendNames)
	require.Equal(t, domain.PostUser{Handle: "@me", Profile: "https://img/me.png"}, head.User)
	require.Equal(t, domain.Location{City: "Amsterdam", State: "MA"}, head.Location)
	require.Zero(t, head.Likes)
	require.Zero(t, head.Dislikes)

	snap := f.flow.Snapshot()
	require.Equal(t, connect.Succeeded, snap.State)
	require.Equal(t, post.ID, snap.LastPostID)
	require.Nil(t, snap.Image)
}

func TestSubmitSuccessAppliesProfileFallbacks(t *testing.T) {
	f := newFixture(t, domain.Profile{})
	f.capture(t, "file:///c/x.jpg")
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return([]string{"émile"}, nil)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

	post, err := f.flow.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, "@placeholder", post.User.Handle)
	require.Equal(t, "https://via.placeholder.com/150", post.User.Profile)
	require.Equal(t, domain.Location{City: "Unknown City", State: "Unknown State"}, post.Location)
	require.Equal(t, []string{"Émile"}, post.FriendNames)
}

func TestSubmitWithoutPictureIsRejectedLocally(t *testing.T) {
	f := newFixture(t, domain.Profile{})
	f.notifier.EXPECT().Notify(gomock.Any(), domain.Notification{
		Kind:    domain.NotificationError,
		Title:   "No Picture",
		Message: "Please take a picture before submitting.",
	})

	_, err := f.flow.Submit(context.Background())
	require.True(t, errors.IsPrecondition(err))
	require.Equal(t, connect.Idle, f.flow.Snapshot().State)
	require.Zero(t, f.feed.Len())
	require.Empty(t, f.transitions())
}

func TestSubmitFailureKeepsImage(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		title   string
		message string
	}{
		{
			name:    "server reason",
			err:     errors.Kind(errors.ErrVerificationRejected, "No faces detected", nil),
			title:   "Verification Failed",
			message: "No faces detected",
		},
		{
			name:    "rejected without reason",
			err:     errors.Kind(errors.ErrVerificationRejected, "Could not verify the friend in the picture.", nil),
			title:   "Verification Failed",
			message: "Could not verify the friend in the picture.",
		},
		{
			name:    "transport",
			err:     errors.Kind(errors.ErrTransport, "An error occurred while verifying the friend.", stderrors.New("dial tcp")),
			title:   "Error",
			message: "An error occurred while verifying the friend.",
		},
		{
			name:    "uncoded error",
			err:     stderrors.New("boom"),
			title:   "Error",
			message: "An error occurred while verifying the friend.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, domain.Profile{})
			f.capture(t, "file:///c/x.jpg")

			f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			f.notifier.EXPECT().Notify(gomock.Any(), domain.Notification{
				Kind:    domain.NotificationError,
				Title:   tt.title,
				Message: tt.message,
			})

			_, err := f.flow.Submit(context.Background())
			require.Error(t, err)
			require.Zero(t, f.feed.Len())

			snap := f.flow.Snapshot()
			require.Equal(t, connect.HasImage, snap.State)
			require.NotNil(t, snap.Image)
			require.Equal(t, "file:///c/x.jpg", snap.Image.URI)
			require.Equal(t, tt.message, snap.LastError)

			require.Equal(t, []connect.Transition{
				{From: connect.Idle, To: connect.Capturing},
				{From: connect.Capturing, To: connect.HasImage},
				{From: connect.HasImage, To: connect.Submitting},
				{From: connect.Submitting, To: connect.Failed},
				{From: connect.Failed, To: connect.HasImage},
			}, f.transitions())
		})
	}
}

func TestSubmitAfterFailureRetriesOnce(t *testing.T) {
	f := newFixture(t, domain.Profile{})
	f.capture(t, "file:///c/x.jpg")

	gomock.InOrder(
		f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).
			Return(nil, errors.Kind(errors.ErrVerificationRejected, "No faces detected", nil)),
		f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return([]string{"carol"}, nil),
	)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(2)

	_, err := f.flow.Submit(context.Background())
	require.True(t, errors.IsVerificationRejected(err))

	post, err := f.flow.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Carol"}, post.FriendNames)
	require.Equal(t, 1, f.feed.Len())
}

func TestSubmitIsSingleFlight(t *testing.T) {
	f := newFixture(t, domain.Profile{})
	f.capture(t, "file:///c/x.jpg")

	started := make(chan struct{})
	release := make(chan struct{})
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.CapturedImage) ([]string, error) {
			close(started)
			<-release
			return []string{"dave"}, nil
		}).Times(1)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

	done := make(chan error, 1)
	go func() {
		_, err := f.flow.Submit(context.Background())
		done <- err
	}()
	<-started

	require.Equal(t, connect.Submitting, f.flow.Snapshot().State)
	_, err := f.flow.Submit(context.Background())
	require.True(t, errors.IsSubmitInFlight(err))
	require.True(t, errors.IsSubmitInFlight(f.flow.Retake()))
	require.True(t, errors.IsSubmitInFlight(f.flow.Capture(context.Background())))

	close(release)
	require.NoError(t, <-done)
	require.Equal(t, 1, f.feed.Len())
	require.Equal(t, connect.Succeeded, f.flow.Snapshot().State)
}

func TestCloseDiscardsLateResult(t *testing.T) {
	f := newFixture(t, domain.Profile{})
	f.capture(t, "file:///c/x.jpg")

	started := make(chan struct{})
	release := make(chan struct{})
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.CapturedImage) ([]string, error) {
			close(started)
			<-release
			return []string{"erin"}, nil
		})

	done := make(chan error, 1)
	go func() {
		_, err := f.flow.Submit(context.Background())
		done <- err
	}()
	<-started
	f.flow.Close()
	close(release)

	err := <-done
	require.True(t, errors.Is(err, errors.ErrClosed))
	require.Zero(t, f.feed.Len())
	require.Equal(t, connect.Submitting, f.flow.Snapshot().State)
}

func TestCaptureFailureKeepsPriorState(t *testing.T) {
	f := newFixture(t, domain.Profile{})
	f.capture(t, "file:///c/first.jpg")

	f.device.EXPECT().Ready().Return(true)
	f.device.EXPECT().Capture(gomock.Any(), domain.FacingFront).Return(domain.CapturedImage{}, stderrors.New("sensor"))
	f.device.EXPECT().PermissionStatus(gomock.Any()).Return(domain.PermissionGranted, nil)
	f.notifier.EXPECT().Notify(gomock.Any(), domain.Notification{
		Kind:    domain.NotificationError,
		Title:   "Error",
		Message: "Could not take picture. Please try again.",
	})

	err := f.flow.Capture(context.Background())
	require.True(t, errors.IsCaptureFailed(err))

	snap := f.flow.Snapshot()
	require.Equal(t, connect.HasImage, snap.State)
	require.Equal(t, "file:///c/first.jpg", snap.Image.URI)
}

func TestCaptureNotReadyIsNoop(t *testing.T) {
	f := newFixture(t, domain.Profile{})
	f.device.EXPECT().PermissionStatus(gomock.Any()).Return(domain.PermissionGranted, nil)
	f.device.EXPECT().Ready().Return(false)

	require.NoError(t, f.flow.Capture(context.Background()))
	require.Equal(t, connect.Idle, f.flow.Snapshot().State)
	require.Equal(t, []connect.Transition{
		{From: connect.Idle, To: connect.Capturing},
		{From: connect.Capturing, To: connect.Idle},
	}, f.transitions())
}

func TestCapturePermissionDenied(t *testing.T) {
	f := newFixture(t, domain.Profile{})
	f.device.EXPECT().PermissionStatus(gomock.Any()).Return(domain.PermissionUndetermined, nil)
	f.device.EXPECT().RequestPermission(gomock.Any()).Return(domain.PermissionDenied, nil)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Do(func(_ context.Context, n domain.Notification) {
		require.Equal(t, "Permission Required", n.Title)
	})

	err := f.flow.Capture(context.Background())
	require.True(t, errors.IsPermissionDenied(err))

	snap := f.flow.Snapshot()
	require.Equal(t, connect.Idle, snap.State)
	require.True(t, snap.Blocked)

	f.device.EXPECT().RequestPermission(gomock.Any()).Return(domain.PermissionGranted, nil)
	status, err := f.flow.RequestPermission(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.PermissionGranted, status)
	require.False(t, f.flow.Snapshot().Blocked)
}

func TestRetakeReturnsToIdle(t *testing.T) {
	f := newFixture(t, domain.Profile{})
	f.capture(t, "file:///c/x.jpg")

	require.NoError(t, f.flow.Retake())
	snap := f.flow.Snapshot()
	require.Equal(t, connect.Idle, snap.State)
	require.Nil(t, snap.Image)
}

func TestClosedWorkflowRejectsOperations(t *testing.T) {
	f := newFixture(t, domain.Profile{})
	f.flow.Close()

	require.True(t, errors.Is(f.flow.Capture(context.Background()), errors.ErrClosed))
	require.True(t, errors.Is(f.flow.Retake(), errors.ErrClosed))
	_, err := f.flow.Submit(context.Background())
	require.True(t, errors.Is(err, errors.ErrClosed))
}

func TestFeedListenerMayReadWorkflow(t *testing.T) {
	f := newFixture(t, domain.Profile{})
	f.capture(t, "file:///c/x.jpg")

	var seen connect.State
	f.feed.Subscribe(func(domain.Post) {
		seen = f.flow.Snapshot().State
	})
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return([]string{"frank"}, nil)
	f.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

	done := make(chan error, 1)
	go func() {
		_, err := f.flow.Submit(context.Background())
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("submit blocked on a feed listener")
	}
	require.Equal(t, connect.Succeeded, seen)
	require.Equal(t, 1, f.feed.Len())
}

func TestCaptureFailureNoticesRevokedPermission(t *testing.T) {
	f := newFixture(t, domain.Profile{})
	f.capture(t, "file:///c/first.jpg")

	f.device.EXPECT().Ready().Return(true)
	f.device.EXPECT().Capture(gomock.Any(), domain.FacingFront).Return(domain.CapturedImage{}, stderrors.New("camera unavailable"))
	f.device.EXPECT().PermissionStatus(gomock.Any()).Return(domain.PermissionDenied, nil)
	f.notifier.EXPECT().Notify(gomock.Any(), domain.Notification{
		Kind:    domain.NotificationError,
		Title:   "Permission Required",
		Message: "We need your permission to access the camera",
	}).Times(2)

	err := f.flow.Capture(context.Background())
	require.True(t, errors.IsPermissionDenied(err))

	snap := f.flow.Snapshot()
	require.True(t, snap.Blocked)
	require.Equal(t, connect.HasImage, snap.State)
	require.Equal(t, "file:///c/first.jpg", snap.Image.URI)

	// blocked until the user grants again; no device capture is attempted
	require.True(t, errors.IsPermissionDenied(f.flow.Capture(context.Background())))
}
