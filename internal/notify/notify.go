package notify

import (
	"context"

	"github.com/orgball2608/joynme/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=notify.go -destination=mocks/mock.go
type Client interface {
	// Notify shows n to the user. It never fails: delivery problems are logged.
	Notify(ctx context.Context, n domain.Notification)
}
