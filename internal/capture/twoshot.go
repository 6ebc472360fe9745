package capture

import (
	"context"
	"sync"

	"github.com/orgball2608/joynme/internal/camera"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/pkg/errors"
	"github.com/orgball2608/joynme/pkg/logger"
)

type TwoShotState string

const (
	AwaitingFirstShot  TwoShotState = "awaiting_first_shot"
	AwaitingSecondShot TwoShotState = "awaiting_second_shot"
	Ready              TwoShotState = "ready"
)

// TwoShot collects one front and one back picture. Every capture stores the
// picture under the active camera and flips to the other one.
type TwoShot struct {
	device camera.Device
	logger logger.Logger

	mu       sync.Mutex
	facing   domain.Facing
	pictures map[domain.Facing]domain.CapturedImage
	busy     bool
}

func NewTwoShot(device camera.Device, log logger.Logger) *TwoShot {
	return &TwoShot{
		device:   device,
		logger:   log.WithComponent("TwoShot"),
		facing:   domain.FacingBack,
		pictures: make(map[domain.Facing]domain.CapturedImage, 2),
	}
}

// Capture takes a picture with the active camera. It returns false without error
// when the camera is not ready or another capture is in flight.
func (c *TwoShot) Capture(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.busy || !c.device.Ready() {
		c.mu.Unlock()
		return false, nil
	}
	c.busy = true
	facing := c.facing
	c.mu.Unlock()

	img, err := c.device.Capture(ctx, facing)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.logger.Error("Error taking picture", "facing", facing, "error", err)
		return false, errors.Kind(errors.ErrCaptureFailed, captureFailedMessage, err)
	}
	c.pictures[facing] = img
	c.facing = facing.Other()
	return true, nil
}

// Swap switches the active camera without capturing. Ignored mid-capture.
func (c *TwoShot) Swap() domain.Facing {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.busy {
		c.facing = c.facing.Other()
	}
	return c.facing
}

func (c *TwoShot) Facing() domain.Facing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.facing
}

func (c *TwoShot) State() TwoShotState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Pictures returns the held pictures by camera.
func (c *TwoShot) Pictures() map[domain.Facing]domain.CapturedImage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[domain.Facing]domain.CapturedImage, len(c.pictures))
	for k, v := range c.pictures {
		out[k] = v
	}
	return out
}

// Take hands both pictures over and resets the controller. Only allowed in Ready.
func (c *TwoShot) Take() (front, back domain.CapturedImage, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stateLocked() != Ready || c.busy {
		return front, back, errors.Kind(errors.ErrPrecondition, "Take a front and a back picture first.", nil)
	}
	front, back = c.pictures[domain.FacingFront], c.pictures[domain.FacingBack]
	c.resetLocked()
	return front, back, nil
}

// Reset drops held pictures and goes back to the back camera.
func (c *TwoShot) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *TwoShot) resetLocked() {
	c.pictures = make(map[domain.Facing]domain.CapturedImage, 2)
	c.facing = domain.FacingBack
}

func (c *TwoShot) stateLocked() TwoShotState {
	switch len(c.pictures) {
	case 0:
		return AwaitingFirstShot
	case 1:
		return AwaitingSecondShot
	default:
		return Ready
	}
}
