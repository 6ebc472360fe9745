package post

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/joynme/internal/domain"
	"github.com/orgball2608/joynme/internal/repositories"
	"github.com/orgball2608/joynme/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

const table = "posts"

var columns = []string{
	"id", "handle", "profile", "city", "state", "front_uri", "back_uri",
	"likes", "dislikes", "is_friend_post", "friend_names",
}

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PostJournalRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// Create adds a new journal entry
func (p *Pgx) Create(ctx context.Context, post domain.Post) error {
	names := post.FriendNames
	if names == nil {
		names = []string{}
	}
	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns(append(columns, "created_at")...).
		Values(
			post.ID, post.User.Handle, post.User.Profile, post.Location.City, post.Location.State,
			post.Image.Front, post.Image.Back, post.Likes, post.Dislikes, post.IsFriendPost, names,
			time.Now(),
		).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetLatest returns the most recent posts, limited by count
func (p *Pgx) GetLatest(ctx context.Context, count int) ([]domain.Post, error) {
	query, args, err := repositories.SqBuilder.
		Select(columns...).
		From(table).
		OrderBy("id DESC").
		Limit(uint64(count)).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID, &post.User.Handle, &post.User.Profile, &post.Location.City, &post.Location.State,
			&post.Image.Front, &post.Image.Back, &post.Likes, &post.Dislikes, &post.IsFriendPost, &post.FriendNames,
		); err != nil {
			return nil, err
		}
		if len(post.FriendNames) == 0 {
			post.FriendNames = nil
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// Exists checks if a post with the given id is journaled
func (p *Pgx) Exists(ctx context.Context, id int64) (bool, error) {
	query, args, err := repositories.SqBuilder.
		Select("1").
		From(table).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, repositories.ErrBadQuery
	}

	var one int
	err = p.pg.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// CleanupOldRecords deletes records older than the given age
func (p *Pgx) CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoffTime := time.Now().Add(-olderThan)

	query, args, err := repositories.SqBuilder.
		Delete(table).
		Where(sq.Lt{"created_at": cutoffTime}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	p.logger.Debug("Journal cleanup done", "deleted", result.RowsAffected(), "cutoff", cutoffTime)
	return result.RowsAffected(), nil
}
