package app

import (
	"context"
	"net/http"

	"github.com/orgball2608/joynme/internal/api"
	"github.com/orgball2608/joynme/internal/camera"
	"github.com/orgball2608/joynme/internal/camera/fsdevice"
	"github.com/orgball2608/joynme/internal/capture"
	"github.com/orgball2608/joynme/internal/compose"
	"github.com/orgball2608/joynme/internal/connect"
	"github.com/orgball2608/joynme/internal/connect/connectimpl"
	"github.com/orgball2608/joynme/internal/feed"
	"github.com/orgball2608/joynme/internal/housekeeping"
	"github.com/orgball2608/joynme/internal/journal"
	"github.com/orgball2608/joynme/internal/notify"
	"github.com/orgball2608/joynme/internal/notify/notifyimpl"
	"github.com/orgball2608/joynme/internal/profile"
	"github.com/orgball2608/joynme/internal/repositories/post"
	"github.com/orgball2608/joynme/internal/telegram"
	"github.com/orgball2608/joynme/internal/telegram/telegramimpl"
	"github.com/orgball2608/joynme/internal/verifier"
	"github.com/orgball2608/joynme/internal/verifier/verifierimpl"
	"github.com/orgball2608/joynme/pkg/config"
	"github.com/orgball2608/joynme/pkg/logger"
	"github.com/orgball2608/joynme/pkg/pgx"
	"go.uber.org/fx"
)

// Module wires the application. Telegram announcements and the Postgres journal
// are only wired when configured.
func Module(cfg *config.Config) fx.Option {
	opts := []fx.Option{
		fx.Provide(
			config.New,
			logger.FxOption,
		),
		fx.Provide(
			profile.NewFromConfig,
			feed.New,
			feed.NewIDGenerator,
			feed.NewLikeOverlay,
			compose.New,
			connectimpl.New,
			notifyimpl.New,
			fx.Annotate(
				fsdevice.New,
				fx.As(new(camera.Device)),
			),
			fx.Annotate(
				verifierimpl.New,
				fx.As(new(verifier.Client)),
			),
			func(c *connectimpl.ConnectImpl) connect.Client { return c },
			func(n *notifyimpl.NotifyImpl) notify.Client { return n },
			func(n *notifyimpl.NotifyImpl) api.Alerts { return n },
		),
		imageSources,
		fx.Provide(
			housekeeping.New,
			api.New,
		),
		fx.Invoke(waitForCamera),
		fx.Invoke(run),
	}

	if cfg.TelegramEnabled() {
		opts = append(opts, fx.Provide(
			fx.Annotate(
				telegramimpl.New,
				fx.As(new(telegram.Client)),
			),
		))
	}

	if cfg.JournalEnabled() {
		opts = append(opts,
			fx.Provide(pgx.New),
			post.Module,
			fx.Provide(
				journal.New,
				func(j *journal.Journal) housekeeping.Pruner { return j },
			),
			fx.Invoke(func(*journal.Journal) {}),
		)
	}

	return fx.Options(opts...)
}

var imageSources = fx.Provide(
	fx.Annotate(
		func(s *feed.Store) housekeeping.ImageSource { return s },
		fx.ResultTags(`group:"image_sources"`),
	),
	fx.Annotate(
		func(c *connectimpl.ConnectImpl) housekeeping.ImageSource { return c },
		fx.ResultTags(`group:"image_sources"`),
	),
	fx.Annotate(
		func(c *compose.Composer) housekeeping.ImageSource { return c },
		fx.ResultTags(`group:"image_sources"`),
	),
)

func waitForCamera(lc fx.Lifecycle, device camera.Device, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := capture.WaitReady(ctx, device, log); err != nil {
				log.Warn("Camera not ready yet, captures will be ignored until it is", "error", err)
				return nil
			}
			log.Info("Camera ready")
			return nil
		},
	})
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, _ *http.Server, _ *housekeeping.Housekeeper) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("joynme started",
				"env", cfg.App.Env,
				"verifier", cfg.Verifier.BaseURL,
				"telegram", cfg.TelegramEnabled(),
				"journal", cfg.JournalEnabled(),
			)
			return nil
		},
	})
}
