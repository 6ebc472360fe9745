package connectimpl

import (
	"context"

	"github.com/orgball2608/joynme/internal/connect"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/pkg/errors"
	"github.com/orgball2608/joynme/pkg/formatter"
)

const (
	titleSuccess      = "Success"
	titleNoPicture    = "No Picture"
	titleRejected     = "Verification Failed"
	titleError        = "Error"
	titlePermission   = "Permission Required"
	successMessage    = "Friend verified successfully!"
	noPictureMessage  = "Please take a picture before submitting."
	transportMessage  = "An error occurred while verifying the friend."
	submitBusyMessage = "A friend connection is already being verified."
	closedMessage     = "The friend connection screen was closed."
)

// Capture takes a new picture with the front camera, replacing any held one.
func (c *ConnectImpl) Capture(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errClosed()
	}
	switch c.state {
	case connect.Submitting:
		c.mu.Unlock()
		return errors.Kind(errors.ErrSubmitInFlight, submitBusyMessage, nil)
	case connect.Capturing:
		c.mu.Unlock()
		c.logger.Debug("Capture already in flight, dropping request")
		return nil
	}
	c.mu.Unlock()

	if err := c.gate.Ensure(ctx); err != nil {
		if errors.IsPermissionDenied(err) {
			c.notify(ctx, domain.NotificationError, titlePermission, errors.GetMessage(err))
		}
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errClosed()
	}
	if c.state == connect.Capturing || c.state == connect.Submitting {
		c.mu.Unlock()
		c.logger.Debug("Workflow became busy while waiting for permission", "state", c.state)
		return nil
	}
	prior := c.state
	c.transition(connect.Capturing)
	c.unlock()

	taken, err := c.single.Capture(ctx)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Info("Discarding capture result of closed workflow")
		return errClosed()
	}
	if err != nil {
		c.lastErr = err
		c.transition(prior)
		c.unlock()

		if perr := c.gate.Recheck(ctx); errors.IsPermissionDenied(perr) {
			c.mu.Lock()
			c.lastErr = perr
			c.mu.Unlock()
			c.notify(ctx, domain.NotificationError, titlePermission, errors.GetMessage(perr))
			return perr
		}
		c.notify(ctx, domain.NotificationError, titleError, errors.GetMessage(err))
		return err
	}
	if !taken {
		c.transition(prior)
		c.unlock()
		return nil
	}
	c.lastErr = nil
	c.transition(connect.HasImage)
	c.unlock()
	return nil
}

// Retake discards the held picture and goes back to Idle.
func (c *ConnectImpl) Retake() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errClosed()
	}
	switch c.state {
	case connect.Submitting:
		c.mu.Unlock()
		return errors.Kind(errors.ErrSubmitInFlight, submitBusyMessage, nil)
	case connect.Capturing:
		c.mu.Unlock()
		return nil
	}
	c.single.Retake()
	c.lastErr = nil
	c.transition(connect.Idle)
	c.unlock()
	return nil
}

// Submit uploads the held picture for verification. At most one upload is in
// flight; it is never retried automatically.
func (c *ConnectImpl) Submit(ctx context.Context) (domain.Post, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.Post{}, errClosed()
	}
	if c.state == connect.Submitting {
		c.mu.Unlock()
		c.logger.Warn("Submit ignored, verification already in flight")
		return domain.Post{}, errors.Kind(errors.ErrSubmitInFlight, submitBusyMessage, nil)
	}
	image, ok := c.single.Picture()
	if c.state != connect.HasImage || !ok {
		c.mu.Unlock()
		c.notify(ctx, domain.NotificationError, titleNoPicture, noPictureMessage)
		return domain.Post{}, errors.Kind(errors.ErrPrecondition, noPictureMessage, nil)
	}
	c.lastErr = nil
	c.transition(connect.Submitting)
	c.unlock()

	c.logger.Info("Submitting picture for verification", "uri", image.URI)
	names, err := c.verifier.Verify(ctx, image)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Info("Discarding verification result of closed workflow", "error", err)
		return domain.Post{}, errClosed()
	}
	if err != nil {
		return domain.Post{}, c.fail(ctx, err)
	}

	post := c.friendPost(image, names)
	if err := post.Validate(); err != nil {
		return domain.Post{}, c.fail(ctx, errors.Kind(errors.ErrTransport, transportMessage, err))
	}
	c.single.Retake()
	c.lastPostID = post.ID
	c.transition(connect.Succeeded)
	c.unlock()

	// Feed listeners run outside the workflow lock and may call back into it.
	if err := c.feed.Prepend(post); err != nil {
		c.logger.Error("Failed to add friend post to feed", "post_id", post.ID, "error", err)
		return domain.Post{}, errors.Kind(errors.ErrTransport, transportMessage, err)
	}

	c.logger.Info("Friend connection added to feed", "post_id", post.ID, "friends", post.FriendNames)
	c.notifier.Notify(ctx, domain.Notification{
		Kind:        domain.NotificationSuccess,
		Title:       titleSuccess,
		Message:     successMessage,
		FriendNames: post.FriendNames,
		ImageURI:    image.URI,
	})
	return post, nil
}

// fail is called with c.mu held and releases it.
func (c *ConnectImpl) fail(ctx context.Context, err error) error {
	if errors.GetCode(err) == "" {
		err = errors.Kind(errors.ErrTransport, transportMessage, err)
	}
	c.lastErr = err
	c.transition(connect.Failed)
	c.transition(connect.HasImage)
	c.unlock()

	c.logger.Warn("Friend verification failed", "error", err)
	title := titleError
	if errors.IsVerificationRejected(err) {
		title = titleRejected
	}
	c.notify(ctx, domain.NotificationError, title, errors.GetMessage(err))
	return err
}

func (c *ConnectImpl) friendPost(image domain.CapturedImage, ids []string) domain.Post {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, formatter.CapitalizeFirst(id))
	}
	user, loc := c.profile.Snapshot().Stamp()
	return domain.Post{
		ID:           c.ids.Next(),
		User:         user,
		Location:     loc,
		Image:        domain.PostImage{Back: image.URI},
		IsFriendPost: true,
		FriendNames:  names,
	}
}

func (c *ConnectImpl) notify(ctx context.Context, kind domain.NotificationKind, title, message string) {
	c.notifier.Notify(ctx, domain.Notification{
		Kind:    kind,
		Title:   title,
		Message: message,
	})
}

func errClosed() error {
	return errors.Kind(errors.ErrClosed, closedMessage, nil)
}
