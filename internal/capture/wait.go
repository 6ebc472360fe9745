package capture

import (
	"context"
	stderrors "errors"

	"github.com/orgball2608/joynme/internal/camera"
	"github.com/orgball2608/joynme/pkg/logger"
	"github.com/orgball2608/joynme/pkg/retry"
)

var errNotReady = stderrors.New("camera not ready")

// WaitReady blocks until the device reports ready, backing off between polls.
func WaitReady(ctx context.Context, device camera.Device, log logger.Logger) error {
	return WaitReadyWithConfig(ctx, device, log, retry.PollConfig())
}

func WaitReadyWithConfig(ctx context.Context, device camera.Device, log logger.Logger, cfg retry.Config) error {
	return retry.Do(ctx, log, "CameraReady", func() error {
		if err := ctx.Err(); err != nil {
			return retry.Permanent(err)
		}
		if !device.Ready() {
			return errNotReady
		}
		return nil
	}, cfg)
}
