package journal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/internal/feed"
	"github.com/orgball2608/joynme/internal/migrations"
	"github.com/orgball2608/joynme/internal/repositories/post"
	"github.com/orgball2608/joynme/pkg/config"
	"github.com/orgball2608/joynme/pkg/logger"
	"go.uber.org/fx"
)

const (
	queueSize    = 64
	restoreLimit = 50
	writeTimeout = 5 * time.Second
)

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Repo   post.Repository
	Feed   *feed.Store
	Logger logger.Logger
}

// Journal mirrors feed posts into Postgres and restores them on startup.
type Journal struct {
	repo   post.Repository
	feed   *feed.Store
	logger logger.Logger

	queue       chan domain.Post
	unsubscribe func()
	wg          sync.WaitGroup
	closeOnce   sync.Once
	mu          sync.RWMutex
	closed      bool
}

func New(opts Opts) *Journal {
	j := NewJournal(opts.Repo, opts.Feed, opts.Logger)
	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			results, err := migrations.Up(ctx, opts.Config.GetDSN())
			if err != nil {
				return err
			}
			j.logger.Info("Journal schema ready", "applied", len(results))
			if err := j.Restore(ctx); err != nil {
				j.logger.Error("Failed to restore feed from journal", "error", err)
			}
			j.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			j.Stop()
			return nil
		},
	})
	return j
}

func NewJournal(repo post.Repository, store *feed.Store, log logger.Logger) *Journal {
	return &Journal{
		repo:   repo,
		feed:   store,
		logger: log.WithComponent("Journal"),
		queue:  make(chan domain.Post, queueSize),
	}
}

// Restore loads the latest journaled posts into an empty feed, oldest first so the
// newest ends up at the head.
func (j *Journal) Restore(ctx context.Context) error {
	if j.feed.Len() > 0 {
		return nil
	}
	posts, err := j.repo.GetLatest(ctx, restoreLimit)
	if err != nil {
		return err
	}
	for i := len(posts) - 1; i >= 0; i-- {
		if err := j.feed.Prepend(posts[i]); err != nil {
			j.logger.Warn("Skipping invalid journaled post", "post_id", posts[i].ID, "error", err)
		}
	}
	j.logger.Info("Feed restored from journal", "posts", len(posts))
	return nil
}

// Start subscribes to the feed and writes new posts in the background.
func (j *Journal) Start() {
	j.unsubscribe = j.feed.Subscribe(j.enqueue)
	j.wg.Add(1)
	go j.run()
}

// Stop drains queued posts and waits for the writer to finish.
func (j *Journal) Stop() {
	j.closeOnce.Do(func() {
		if j.unsubscribe != nil {
			j.unsubscribe()
		}
		j.mu.Lock()
		j.closed = true
		close(j.queue)
		j.mu.Unlock()
		j.wg.Wait()
	})
}

func (j *Journal) enqueue(p domain.Post) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return
	}
	select {
	case j.queue <- p:
	default:
		j.logger.Warn("Journal queue full, dropping post", "post_id", p.ID)
	}
}

func (j *Journal) run() {
	defer j.wg.Done()
	for p := range j.queue {
		j.write(p)
	}
}

func (j *Journal) write(p domain.Post) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	exists, err := j.repo.Exists(ctx, p.ID)
	if err != nil {
		j.logger.Error("Failed to look up journaled post", "post_id", p.ID, "error", err)
		return
	}
	if exists {
		j.logger.Debug("Post already journaled", "post_id", p.ID)
		return
	}

	err = j.repo.Create(ctx, p)
	switch {
	case err == nil:
		j.logger.Debug("Post journaled", "post_id", p.ID)
	case errors.Is(err, post.ErrAlreadyExists):
		j.logger.Debug("Post already journaled", "post_id", p.ID)
	default:
		j.logger.Error("Failed to journal post", "post_id", p.ID, "error", err)
	}
}

// Prune deletes journal entries older than olderThan.
func (j *Journal) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	return j.repo.CleanupOldRecords(ctx, olderThan)
}
