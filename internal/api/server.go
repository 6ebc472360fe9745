package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/orgball2608/joynme/internal/compose"
	"github.com/orgball2608/joynme/internal/connect"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/internal/feed"
	"github.com/orgball2608/joynme/internal/profile"
	"github.com/orgball2608/joynme/internal/ratelimit"
	"github.com/orgball2608/joynme/pkg/config"
	"github.com/orgball2608/joynme/pkg/logger"
	"go.uber.org/fx"
)

// Alerts is the notification history the presentation layer polls or streams.
type Alerts interface {
	Recent() []domain.Notification
	Subscribe(l func(n domain.Notification)) func()
}

type Opts struct {
	fx.In

	LC       fx.Lifecycle
	Config   *config.Config
	Logger   logger.Logger
	Profile  *profile.Store
	Feed     *feed.Store
	Likes    *feed.LikeOverlay
	Connect  connect.Client
	Composer *compose.Composer
	Alerts   Alerts
}

type Handler struct {
	profile  *profile.Store
	feed     *feed.Store
	likes    *feed.LikeOverlay
	connect  connect.Client
	composer *compose.Composer
	alerts   Alerts
	limiter  ratelimit.Limiter
	logger   logger.Logger
}

func NewHandler(opts Opts) *Handler {
	rl := opts.Config.RateLimit
	return &Handler{
		profile:  opts.Profile,
		feed:     opts.Feed,
		likes:    opts.Likes,
		connect:  opts.Connect,
		composer: opts.Composer,
		alerts:   opts.Alerts,
		limiter:  ratelimit.NewInMemoryLimiter(rl.Requests, rl.Per, rl.Burst),
		logger:   opts.Logger.WithComponent("API"),
	}
}

// New starts the local API server with the application lifecycle.
func New(opts Opts) *http.Server {
	h := NewHandler(opts)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
			}
			h.logger.Info("API listening", "addr", ln.Addr().String())
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					h.logger.Error("API server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			h.logger.Info("Shutting down API")
			return srv.Shutdown(ctx)
		},
	})
	return srv
}
