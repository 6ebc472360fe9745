package capture

import (
	"context"
	"sync"

	"github.com/orgball2608/joynme/internal/camera"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/pkg/errors"
	"github.com/orgball2608/joynme/pkg/logger"
)

type SingleState string

const (
	NoPicture  SingleState = "no_picture"
	HasPicture SingleState = "has_picture"
)

const captureFailedMessage = "Could not take picture. Please try again."

// Single holds at most one picture taken with the front camera.
type Single struct {
	device camera.Device
	facing domain.Facing
	logger logger.Logger

	mu      sync.Mutex
	picture *domain.CapturedImage
	busy    bool
}

func NewSingle(device camera.Device, log logger.Logger) *Single {
	return &Single{
		device: device,
		facing: domain.FacingFront,
		logger: log.WithComponent("SingleShot"),
	}
}

// Capture takes a picture, replacing any held one. It returns false without error
// when the camera is not ready or another capture is in flight.
func (s *Single) Capture(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.busy || !s.device.Ready() {
		s.mu.Unlock()
		return false, nil
	}
	s.busy = true
	s.mu.Unlock()

	img, err := s.device.Capture(ctx, s.facing)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.logger.Error("Error taking picture", "error", err)
		return false, errors.Kind(errors.ErrCaptureFailed, captureFailedMessage, err)
	}
	s.picture = &img
	return true, nil
}

// Retake discards the held picture.
func (s *Single) Retake() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.picture = nil
}

func (s *Single) Picture() (domain.CapturedImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.picture == nil {
		return domain.CapturedImage{}, false
	}
	return *s.picture, true
}

func (s *Single) State() SingleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.picture == nil {
		return NoPicture
	}
	return HasPicture
}
