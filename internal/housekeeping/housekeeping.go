package housekeeping

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/joynme/internal/camera"
	"github.com/orgball2608/joynme/pkg/config"
	"github.com/orgball2608/joynme/pkg/logger"
	"go.uber.org/fx"
)

const jobTimeout = 5 * time.Minute

// ImageSource lists image uris that are still in use and must survive a sweep.
type ImageSource interface {
	ImageURIs() map[string]struct{}
}

// ImageSourceFunc adapts a function to ImageSource.
type ImageSourceFunc func() map[string]struct{}

func (f ImageSourceFunc) ImageURIs() map[string]struct{} { return f() }

// Pruner drops old journal records.
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

type Opts struct {
	fx.In

	LC      fx.Lifecycle
	Config  *config.Config
	Logger  logger.Logger
	Sources []ImageSource `group:"image_sources"`
	Pruner  Pruner        `optional:"true"`
}

type Housekeeper struct {
	dir              string
	captureRetention time.Duration
	journalRetention time.Duration
	sources          []ImageSource
	pruner           Pruner
	logger           logger.Logger
	now              func() time.Time
}

func New(opts Opts) (*Housekeeper, error) {
	h := &Housekeeper{
		dir:              opts.Config.Camera.CaptureDir,
		captureRetention: opts.Config.Housekeeping.CaptureRetention,
		journalRetention: opts.Config.Housekeeping.JournalRetention,
		sources:          opts.Sources,
		pruner:           opts.Pruner,
		logger:           opts.Logger.WithComponent("Housekeeping"),
		now:              time.Now,
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create housekeeping scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := h.Schedule(ctx, scheduler, opts.Config.Housekeeping.SweepInterval); err != nil {
				return err
			}
			scheduler.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			if err := scheduler.Shutdown(); err != nil {
				h.logger.Error("Failed to shut down housekeeping scheduler", "error", err)
			}
			return nil
		},
	})
	return h, nil
}

// Schedule registers the capture sweep and, with a journal, the daily prune.
func (h *Housekeeper) Schedule(ctx context.Context, scheduler gocron.Scheduler, interval time.Duration) error {
	_, err := scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}
			sweepCtx, cancel := context.WithTimeout(ctx, jobTimeout)
			defer cancel()
			if _, err := h.Sweep(sweepCtx); err != nil {
				h.logger.Error("Capture sweep failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule capture sweep: %w", err)
	}

	if h.pruner == nil {
		return nil
	}

	// Run at 3:00 AM every day
	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}
			pruneCtx, cancel := context.WithTimeout(ctx, jobTimeout)
			defer cancel()
			rows, err := h.pruner.Prune(pruneCtx, h.journalRetention)
			if err != nil {
				h.logger.Error("Failed to prune journal", "error", err)
				return
			}
			h.logger.Info("Journal pruned", "rows_deleted", rows)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule journal prune: %w", err)
	}
	return nil
}

// Sweep removes capture files that no post or held picture refers to and that are
// older than the retention. It returns the number of files removed.
func (h *Housekeeper) Sweep(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read capture dir: %w", err)
	}

	keep := h.referenced()
	cutoff := h.now().Add(-h.captureRetention)
	removed := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if entry.IsDir() {
			continue
		}
		path, err := filepath.Abs(filepath.Join(h.dir, entry.Name()))
		if err != nil {
			continue
		}
		if _, ok := keep[path]; ok {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			h.logger.Warn("Failed to remove capture", "path", path, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		h.logger.Info("Capture sweep done", "removed", removed)
	}
	return removed, nil
}

func (h *Housekeeper) referenced() map[string]struct{} {
	keep := make(map[string]struct{})
	for _, src := range h.sources {
		for uri := range src.ImageURIs() {
			path, err := camera.Path(uri)
			if err != nil {
				continue
			}
			if abs, err := filepath.Abs(path); err == nil {
				keep[abs] = struct{}{}
			}
		}
	}
	return keep
}
