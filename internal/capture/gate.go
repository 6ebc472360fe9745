package capture

import (
	"context"
	"fmt"
	"sync"

	"github.com/orgball2608/joynme/internal/camera"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/pkg/errors"
	"github.com/orgball2608/joynme/pkg/logger"
)

const permissionMessage = "We need your permission to access the camera"

// Gate guards capture behind camera permission. An undetermined permission is
// requested once; concurrent callers wait on that single prompt.
type Gate struct {
	device camera.Device
	logger logger.Logger

	mu        sync.Mutex
	status    domain.Permission
	requested bool
	pending   chan struct{}
	lastErr   error
}

func NewGate(device camera.Device, log logger.Logger) *Gate {
	return &Gate{
		device: device,
		logger: log.WithComponent("PermissionGate"),
	}
}

// Ensure returns nil when capture is allowed and ErrPermissionDenied otherwise.
func (g *Gate) Ensure(ctx context.Context) error {
	status, err := g.resolve(ctx)
	if err != nil {
		return err
	}
	if status != domain.PermissionGranted {
		return errors.Kind(errors.ErrPermissionDenied, permissionMessage, nil)
	}
	return nil
}

// Request prompts again. It backs the explicit "grant permission" user action and
// is the only way out of a blocked state.
func (g *Gate) Request(ctx context.Context) (domain.Permission, error) {
	status, err := g.device.RequestPermission(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to request camera permission: %w", err)
	}
	g.mu.Lock()
	g.status = status
	g.requested = true
	g.mu.Unlock()
	g.logger.Info("Camera permission requested by user", "status", status)
	return status, nil
}

// Recheck reads the permission from the device again without prompting, so a grant
// revoked outside the app is noticed. It returns ErrPermissionDenied unless granted.
func (g *Gate) Recheck(ctx context.Context) error {
	status, err := g.device.PermissionStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to read camera permission: %w", err)
	}

	g.mu.Lock()
	previous := g.status
	g.status = status
	if status == domain.PermissionUndetermined {
		g.requested = false
	}
	g.mu.Unlock()

	if previous != status {
		g.logger.Warn("Camera permission changed", "from", previous, "to", status)
	}
	if status != domain.PermissionGranted {
		return errors.Kind(errors.ErrPermissionDenied, permissionMessage, nil)
	}
	return nil
}

// Status is the last known permission state.
func (g *Gate) Status() domain.Permission {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status == "" {
		return domain.PermissionUndetermined
	}
	return g.status
}

// Blocked reports whether capture is impossible without user action.
func (g *Gate) Blocked() bool {
	switch g.Status() {
	case domain.PermissionDenied, domain.PermissionBlocked:
		return true
	}
	return false
}

func (g *Gate) resolve(ctx context.Context) (domain.Permission, error) {
	g.mu.Lock()
	if g.status != "" && (g.status != domain.PermissionUndetermined || g.requested) {
		status := g.status
		g.mu.Unlock()
		return status, nil
	}
	if g.pending != nil {
		ch := g.pending
		g.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return "", ctx.Err()
		}
		g.mu.Lock()
		defer g.mu.Unlock()
		return g.status, g.lastErr
	}
	ch := make(chan struct{})
	g.pending = ch
	g.mu.Unlock()

	status, requested, err := g.ask(ctx)

	g.mu.Lock()
	if err == nil {
		g.status = status
		g.requested = g.requested || requested
	}
	g.lastErr = err
	g.pending = nil
	close(ch)
	g.mu.Unlock()

	return status, err
}

func (g *Gate) ask(ctx context.Context) (domain.Permission, bool, error) {
	status, err := g.device.PermissionStatus(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to read camera permission: %w", err)
	}
	if status != domain.PermissionUndetermined {
		return status, false, nil
	}

	g.mu.Lock()
	already := g.requested
	g.mu.Unlock()
	if already {
		return status, false, nil
	}

	g.logger.Info("Camera permission undetermined, requesting")
	status, err = g.device.RequestPermission(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to request camera permission: %w", err)
	}
	return status, true, nil
}
