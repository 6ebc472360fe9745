package housekeeping

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orgball2608/joynme/internal/camera"
	"github.com/orgball2608/joynme/pkg/logger"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, mod time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
	return path
}

func TestSweepRemovesOldUnreferencedCaptures(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	old := now.Add(-48 * time.Hour)

	kept := writeFile(t, dir, "front_kept.jpg", old)
	held := writeFile(t, dir, "front_held.jpg", old)
	stale := writeFile(t, dir, "back_stale.jpg", old)
	fresh := writeFile(t, dir, "back_fresh.jpg", now)

	h := &Housekeeper{
		dir:              dir,
		captureRetention: 24 * time.Hour,
		logger:           logger.Nop(),
		now:              func() time.Time { return now },
		sources: []ImageSource{
			ImageSourceFunc(func() map[string]struct{} {
				return map[string]struct{}{camera.FileURI(kept): {}}
			}),
			ImageSourceFunc(func() map[string]struct{} {
				return map[string]struct{}{held: {}, "https://remote/x.jpg": {}}
			}),
		},
	}

	removed, err := h.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	require.FileExists(t, kept)
	require.FileExists(t, held)
	require.FileExists(t, fresh)
	require.NoFileExists(t, stale)
}

func TestSweepMissingDir(t *testing.T) {
	h := &Housekeeper{
		dir:    filepath.Join(t.TempDir(), "missing"),
		logger: logger.Nop(),
		now:    time.Now,
	}
	removed, err := h.Sweep(context.Background())
	require.NoError(t, err)
	require.Zero(t, removed)
}
