package post

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/joynme/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("post already journaled")
)

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// Create journals a post published to the feed
	Create(ctx context.Context, post domain.Post) error

	// GetLatest returns the most recent posts, newest first, limited by count
	GetLatest(ctx context.Context, count int) ([]domain.Post, error)

	// Exists checks if a post with the given id is journaled
	Exists(ctx context.Context, id int64) (bool, error)

	// CleanupOldRecords deletes records older than the given age
	CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error)
}
