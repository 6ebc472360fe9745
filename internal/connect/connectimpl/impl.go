package connectimpl

import (
	"context"
	"sync"

	"github.com/orgball2608/joynme/internal/camera"
	"github.com/orgball2608/joynme/internal/capture"
	"github.com/orgball2608/joynme/internal/connect"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/internal/feed"
	"github.com/orgball2608/joynme/internal/notify"
	"github.com/orgball2608/joynme/internal/profile"
	"github.com/orgball2608/joynme/internal/verifier"
	"github.com/orgball2608/joynme/pkg/errors"
	"github.com/orgball2608/joynme/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	LC       fx.Lifecycle
	Device   camera.Device
	Verifier verifier.Client
	Feed     *feed.Store
	Profile  *profile.Store
	IDs      *feed.IDGenerator
	Notifier notify.Client
	Logger   logger.Logger
}

type ConnectImpl struct {
	gate     *capture.Gate
	single   *capture.Single
	verifier verifier.Client
	feed     *feed.Store
	profile  *profile.Store
	ids      *feed.IDGenerator
	notifier notify.Client
	logger   logger.Logger

	mu         sync.Mutex
	state      connect.State
	closed     bool
	lastErr    error
	lastPostID int64
	pending    []connect.Transition
	listeners  map[int]connect.TransitionFunc
	nextID     int
}

var _ connect.Client = (*ConnectImpl)(nil)

func New(opts Opts) *ConnectImpl {
	c := NewWorkflow(Deps{
		Device:   opts.Device,
		Verifier: opts.Verifier,
		Feed:     opts.Feed,
		Profile:  opts.Profile,
		IDs:      opts.IDs,
		Notifier: opts.Notifier,
		Logger:   opts.Logger,
	})
	opts.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			c.Close()
			return nil
		},
	})
	return c
}

// Deps are the collaborators of a workflow built outside fx.
type Deps struct {
	Device   camera.Device
	Verifier verifier.Client
	Feed     *feed.Store
	Profile  *profile.Store
	IDs      *feed.IDGenerator
	Notifier notify.Client
	Logger   logger.Logger
}

func NewWorkflow(d Deps) *ConnectImpl {
	log := d.Logger.WithComponent("ConnectFriend")
	return &ConnectImpl{
		gate:      capture.NewGate(d.Device, d.Logger),
		single:    capture.NewSingle(d.Device, d.Logger),
		verifier:  d.Verifier,
		feed:      d.Feed,
		profile:   d.Profile,
		ids:       d.IDs,
		notifier:  d.Notifier,
		logger:    log,
		state:     connect.Idle,
		listeners: make(map[int]connect.TransitionFunc),
	}
}

func (c *ConnectImpl) RequestPermission(ctx context.Context) (domain.Permission, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return "", errClosed()
	}
	return c.gate.Request(ctx)
}

func (c *ConnectImpl) Snapshot() connect.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := connect.Snapshot{
		State:      c.state,
		Permission: c.gate.Status(),
		Blocked:    c.gate.Blocked(),
		LastPostID: c.lastPostID,
	}
	if img, ok := c.single.Picture(); ok {
		snap.Image = &img
	}
	if c.lastErr != nil {
		snap.LastError = errors.GetMessage(c.lastErr)
	}
	return snap
}

// OnTransition registers fn and returns a function that removes it. Listeners run
// after the transition is applied, outside the workflow lock.
func (c *ConnectImpl) OnTransition(fn connect.TransitionFunc) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Close tears the workflow down. Results of an upload still in flight are dropped.
func (c *ConnectImpl) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.logger.Info("Friend connection workflow closed", "state", c.state)
}

// transition must be called with c.mu held; listeners fire on unlock.
func (c *ConnectImpl) transition(to connect.State) {
	if c.state == to {
		return
	}
	c.pending = append(c.pending, connect.Transition{From: c.state, To: to})
	c.state = to
}

// unlock releases c.mu and then delivers queued transitions.
func (c *ConnectImpl) unlock() {
	pending := c.pending
	c.pending = nil
	listeners := make([]connect.TransitionFunc, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, t := range pending {
		c.logger.Debug("State transition", "from", t.From, "to", t.To)
		for _, l := range listeners {
			l(t)
		}
	}
}

// ImageURIs reports the held picture so housekeeping keeps it.
func (c *ConnectImpl) ImageURIs() map[string]struct{} {
	out := make(map[string]struct{}, 1)
	if img, ok := c.single.Picture(); ok {
		out[img.URI] = struct{}{}
	}
	return out
}
