package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upPostsJournal, downPostsJournal)
}

func upPostsJournal(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE posts (
		id             BIGINT PRIMARY KEY,
		handle         VARCHAR NOT NULL,
		profile        VARCHAR NOT NULL,
		city           VARCHAR NOT NULL,
		state          VARCHAR NOT NULL,
		front_uri      VARCHAR,
		back_uri       VARCHAR NOT NULL,
		likes          INTEGER NOT NULL DEFAULT 0 CHECK (likes >= 0),
		dislikes       INTEGER NOT NULL DEFAULT 0 CHECK (dislikes >= 0),
		is_friend_post BOOLEAN NOT NULL DEFAULT FALSE,
		friend_names   TEXT[] NOT NULL DEFAULT '{}',
		created_at     TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);
	CREATE INDEX posts_created_at_idx ON posts (created_at);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downPostsJournal(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE posts;
	`)
	if err != nil {
		return err
	}
	return nil
}
