package fsdevice

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/orgball2608/joynme/internal/camera"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/pkg/logger"
	"github.com/stretchr/testify/require"
)

func newTestDevice(t *testing.T, answer domain.Permission) *Device {
	t.Helper()
	dir := t.TempDir()
	front := filepath.Join(dir, "front.jpg")
	back := filepath.Join(dir, "back.jpg")
	require.NoError(t, os.WriteFile(front, []byte("front-bytes"), 0o644))
	require.NoError(t, os.WriteFile(back, []byte("back-bytes"), 0o644))
	return NewDevice(front, back, filepath.Join(dir, "captures"), answer, logger.Nop())
}

func TestCaptureCopiesSourceFrame(t *testing.T) {
	d := newTestDevice(t, domain.PermissionGranted)
	require.False(t, d.Ready())
	require.NoError(t, d.Start())
	require.True(t, d.Ready())

	img, err := d.Capture(context.Background(), domain.FacingBack)
	require.NoError(t, err)

	rc, err := camera.Open(img.URI)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "back-bytes", string(data))
}

func TestCapturesGetDistinctURIs(t *testing.T) {
	d := newTestDevice(t, domain.PermissionGranted)
	require.NoError(t, d.Start())

	a, err := d.Capture(context.Background(), domain.FacingFront)
	require.NoError(t, err)
	b, err := d.Capture(context.Background(), domain.FacingFront)
	require.NoError(t, err)
	require.NotEqual(t, a.URI, b.URI)
}

func TestCaptureMissingSourceFails(t *testing.T) {
	d := NewDevice(filepath.Join(t.TempDir(), "nope.jpg"), "", t.TempDir(), domain.PermissionGranted, logger.Nop())
	require.NoError(t, d.Start())

	_, err := d.Capture(context.Background(), domain.FacingFront)
	require.Error(t, err)
	_, err = d.Capture(context.Background(), domain.FacingBack)
	require.Error(t, err)
}

func TestPermissionAnswer(t *testing.T) {
	d := newTestDevice(t, domain.PermissionBlocked)
	ctx := context.Background()

	status, err := d.PermissionStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.PermissionUndetermined, status)

	status, err = d.RequestPermission(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.PermissionBlocked, status)

	status, err = d.PermissionStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.PermissionBlocked, status)
}
