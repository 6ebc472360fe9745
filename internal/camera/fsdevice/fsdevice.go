// Package fsdevice is a camera backed by the filesystem: each capture copies the
// configured source frame into the capture directory.
package fsdevice

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/orgball2608/joynme/internal/camera"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/pkg/config"
	"github.com/orgball2608/joynme/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

type Device struct {
	sources    map[domain.Facing]string
	captureDir string
	answer     domain.Permission
	logger     logger.Logger

	mu         sync.Mutex
	permission domain.Permission
	ready      atomic.Bool
}

var _ camera.Device = (*Device)(nil)

func New(opts Opts) *Device {
	d := NewDevice(
		opts.Config.Camera.FrontSource,
		opts.Config.Camera.BackSource,
		opts.Config.Camera.CaptureDir,
		domain.ParsePermission(opts.Config.Camera.Permission),
		opts.Logger,
	)

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return d.Start()
		},
		OnStop: func(context.Context) error {
			d.ready.Store(false)
			return nil
		},
	})

	return d
}

// NewDevice builds a device that answers permission prompts with answer.
func NewDevice(front, back, captureDir string, answer domain.Permission, log logger.Logger) *Device {
	return &Device{
		sources: map[domain.Facing]string{
			domain.FacingFront: front,
			domain.FacingBack:  back,
		},
		captureDir: captureDir,
		answer:     answer,
		logger:     log.WithComponent("FSCamera"),
		permission: domain.PermissionUndetermined,
	}
}

// Start prepares the capture directory and flips the readiness signal.
func (d *Device) Start() error {
	if err := os.MkdirAll(d.captureDir, 0o755); err != nil {
		return fmt.Errorf("failed to create capture directory: %w", err)
	}
	d.ready.Store(true)
	d.logger.Info("Camera ready", "capture_dir", d.captureDir)
	return nil
}

func (d *Device) PermissionStatus(_ context.Context) (domain.Permission, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.permission, nil
}

func (d *Device) RequestPermission(_ context.Context) (domain.Permission, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.answer == domain.PermissionUndetermined {
		d.permission = domain.PermissionGranted
	} else {
		d.permission = d.answer
	}
	d.logger.Info("Camera permission requested", "result", d.permission)
	return d.permission, nil
}

func (d *Device) Ready() bool {
	return d.ready.Load()
}

func (d *Device) Capture(ctx context.Context, facing domain.Facing) (domain.CapturedImage, error) {
	if err := ctx.Err(); err != nil {
		return domain.CapturedImage{}, err
	}

	src, ok := d.sources[facing]
	if !ok || src == "" {
		return domain.CapturedImage{}, fmt.Errorf("no source frame for %s camera", facing)
	}

	in, err := os.Open(src)
	if err != nil {
		return domain.CapturedImage{}, fmt.Errorf("failed to read %s frame: %w", facing, err)
	}
	defer in.Close()

	dst := filepath.Join(d.captureDir, fmt.Sprintf("%s_%s.jpg", facing, uuid.NewString()))
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return domain.CapturedImage{}, fmt.Errorf("failed to create capture file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return domain.CapturedImage{}, fmt.Errorf("failed to write capture: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return domain.CapturedImage{}, fmt.Errorf("failed to write capture: %w", err)
	}

	abs, err := filepath.Abs(dst)
	if err != nil {
		abs = dst
	}
	d.logger.Debug("Captured picture", "facing", facing, "path", abs)
	return domain.CapturedImage{URI: camera.FileURI(abs)}, nil
}
