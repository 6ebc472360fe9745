package verifier

import (
	"context"

	"github.com/orgball2608/joynme/internal/domain"
)

// Client submits a photo to the face-recognition service. A nil error means the
// service matched at least one identity; the returned tokens are opaque ids.
//
// Errors carry one of pkg/errors ErrVerificationRejected (the service answered
// with a refusal) or ErrTransport (no usable answer).
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock.go
type Client interface {
	Verify(ctx context.Context, image domain.CapturedImage) ([]string, error)
}
