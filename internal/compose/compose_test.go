package compose

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	mock_camera "github.com/orgball2608/joynme/internal/camera/mocks"
	"github.com/orgball2608/joynme/internal/capture"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/internal/feed"
	"github.com/orgball2608/joynme/internal/profile"
	"github.com/orgball2608/joynme/pkg/errors"
	"github.com/orgball2608/joynme/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newComposer(t *testing.T) (*Composer, *mock_camera.MockDevice, *feed.Store) {
	ctrl := gomock.NewController(t)
	dev := mock_camera.NewMockDevice(ctrl)
	store := feed.New()
	now := time.UnixMilli(42)
	c := New(Opts{
		Device:  dev,
		Feed:    store,
		Profile: profile.New(domain.Profile{}),
		IDs:     feed.NewIDGeneratorWithClock(func() time.Time { return now }),
		Logger:  logger.Nop(),
	})
	return c, dev, store
}

func TestSubmitPublishesPair(t *testing.T) {
	c, dev, store := newComposer(t)
	dev.EXPECT().PermissionStatus(gomock.Any()).Return(domain.PermissionGranted, nil)
	dev.EXPECT().Ready().Return(true).Times(2)
	gomock.InOrder(
		dev.EXPECT().Capture(gomock.Any(), domain.FacingBack).Return(domain.CapturedImage{URI: "back.jpg"}, nil),
		dev.EXPECT().Capture(gomock.Any(), domain.FacingFront).Return(domain.CapturedImage{URI: "front.jpg"}, nil),
	)

	for i := 0; i < 2; i++ {
		ok, err := c.Capture(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.Equal(t, capture.Ready, c.View().State)

	post, err := c.Submit()
	require.NoError(t, err)
	require.False(t, post.IsFriendPost)
	require.Equal(t, "back.jpg", post.Image.Back)
	require.NotNil(t, post.Image.Front)
	require.Equal(t, "front.jpg", *post.Image.Front)
	require.Equal(t, "@placeholder", post.User.Handle)
	require.Equal(t, domain.Location{City: "Unknown City", State: "Unknown State"}, post.Location)
	require.Equal(t, int64(42), post.ID)
	require.Equal(t, 1, store.Len())

	view := c.View()
	require.Equal(t, capture.AwaitingFirstShot, view.State)
	require.Equal(t, domain.FacingBack, view.Facing)
	require.Empty(t, view.Pictures)
}

func TestSubmitBeforeReady(t *testing.T) {
	c, _, store := newComposer(t)

	_, err := c.Submit()
	require.True(t, errors.IsPrecondition(err))
	require.Zero(t, store.Len())
}

func TestCaptureNeedsPermission(t *testing.T) {
	c, dev, _ := newComposer(t)
	dev.EXPECT().PermissionStatus(gomock.Any()).Return(domain.PermissionBlocked, nil)

	ok, err := c.Capture(context.Background())
	require.False(t, ok)
	require.True(t, errors.IsPermissionDenied(err))
}

func TestCaptureFailureRechecksPermission(t *testing.T) {
	c, dev, _ := newComposer(t)
	gomock.InOrder(
		dev.EXPECT().PermissionStatus(gomock.Any()).Return(domain.PermissionGranted, nil),
		dev.EXPECT().PermissionStatus(gomock.Any()).Return(domain.PermissionDenied, nil),
	)
	dev.EXPECT().Ready().Return(true)
	dev.EXPECT().Capture(gomock.Any(), domain.FacingBack).Return(domain.CapturedImage{}, stderrors.New("revoked"))

	ok, err := c.Capture(context.Background())
	require.False(t, ok)
	require.True(t, errors.IsPermissionDenied(err))
	require.Equal(t, capture.AwaitingFirstShot, c.View().State)
}
