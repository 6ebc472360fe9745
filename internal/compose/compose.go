package compose

import (
	"context"
	"fmt"

	"github.com/orgball2608/joynme/internal/camera"
	"github.com/orgball2608/joynme/internal/capture"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/internal/feed"
	"github.com/orgball2608/joynme/internal/profile"
	"github.com/orgball2608/joynme/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Device  camera.Device
	Feed    *feed.Store
	Profile *profile.Store
	IDs     *feed.IDGenerator
	Logger  logger.Logger
}

// Composer builds a regular post from a back and a front picture.
type Composer struct {
	gate    *capture.Gate
	shots   *capture.TwoShot
	feed    *feed.Store
	profile *profile.Store
	ids     *feed.IDGenerator
	logger  logger.Logger
}

// View is the composer state shown by the camera screen.
type View struct {
	State    capture.TwoShotState                   `json:"state"`
	Facing   domain.Facing                          `json:"facing"`
	Pictures map[domain.Facing]domain.CapturedImage `json:"pictures"`
}

func New(opts Opts) *Composer {
	return &Composer{
		gate:    capture.NewGate(opts.Device, opts.Logger),
		shots:   capture.NewTwoShot(opts.Device, opts.Logger),
		feed:    opts.Feed,
		profile: opts.Profile,
		ids:     opts.IDs,
		logger:  opts.Logger.WithComponent("Composer"),
	}
}

func (c *Composer) Capture(ctx context.Context) (bool, error) {
	if err := c.gate.Ensure(ctx); err != nil {
		return false, err
	}
	taken, err := c.shots.Capture(ctx)
	if err != nil {
		if perr := c.gate.Recheck(ctx); perr != nil {
			c.logger.Warn("Camera permission lost", "error", perr)
			return false, perr
		}
		return false, err
	}
	return taken, nil
}

func (c *Composer) Swap() domain.Facing {
	return c.shots.Swap()
}

func (c *Composer) View() View {
	return View{
		State:    c.shots.State(),
		Facing:   c.shots.Facing(),
		Pictures: c.shots.Pictures(),
	}
}

// Submit publishes the held pair and resets the camera to the back side.
func (c *Composer) Submit() (domain.Post, error) {
	front, back, err := c.shots.Take()
	if err != nil {
		return domain.Post{}, err
	}

	user, loc := c.profile.Snapshot().Stamp()
	frontURI := front.URI
	post := domain.Post{
		ID:       c.ids.Next(),
		User:     user,
		Location: loc,
		Image: domain.PostImage{
			Front: &frontURI,
			Back:  back.URI,
		},
	}
	if err := c.feed.Prepend(post); err != nil {
		return domain.Post{}, fmt.Errorf("failed to publish post: %w", err)
	}
	c.logger.Info("Post published", "post_id", post.ID)
	return post, nil
}

// ImageURIs reports held pictures so housekeeping keeps them.
func (c *Composer) ImageURIs() map[string]struct{} {
	pics := c.shots.Pictures()
	out := make(map[string]struct{}, len(pics))
	for _, p := range pics {
		out[p.URI] = struct{}{}
	}
	return out
}
