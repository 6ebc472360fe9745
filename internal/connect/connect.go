package connect

import (
	"context"

	"github.com/orgball2608/joynme/internal/domain"
)

type State string

const (
	Idle       State = "idle"
	Capturing  State = "capturing"
	HasImage   State = "has_image"
	Submitting State = "submitting"
	Succeeded  State = "succeeded"
	Failed     State = "failed"
)

type Transition struct {
	From State `json:"from"`
	To   State `json:"to"`
}

type TransitionFunc func(t Transition)

// Snapshot is what the presentation layer renders.
type Snapshot struct {
	State      State                 `json:"state"`
	Image      *domain.CapturedImage `json:"image,omitempty"`
	Permission domain.Permission     `json:"permission"`
	Blocked    bool                  `json:"blocked"`
	LastError  string                `json:"lastError,omitempty"`
	LastPostID int64                 `json:"lastPostId,omitempty"`
}

//go:generate go run go.uber.org/mock/mockgen -source=connect.go -destination=mocks/mock.go

// Client drives one friend connection: capture a photo, verify it remotely and
// put a friend post at the head of the feed.
type Client interface {
	Capture(ctx context.Context) error
	Retake() error
	Submit(ctx context.Context) (domain.Post, error)
	RequestPermission(ctx context.Context) (domain.Permission, error)
	Snapshot() Snapshot
	OnTransition(fn TransitionFunc) func()
	Close()
}
