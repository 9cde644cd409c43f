//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/e-gun/TweetTopicModeler/internal/gen"
	"github.com/e-gun/TweetTopicModeler/internal/lnch"
	"github.com/e-gun/TweetTopicModeler/internal/str"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/google/uuid"
)

var Msg = lnch.NewMessageMakerWithDefaults()

const (
	INSERTCHUNK = 500
)

// Archive - somewhere to keep every post ever fetched; the CSV only ever holds the latest run
type Archive interface {
	Store(ctx context.Context, handle string, pp []str.Post) (int, error)
	Count(ctx context.Context, handle string) (int64, error)
	CountByHandle(ctx context.Context) (map[string]int64, error)
	RunID() string
	Close() error
}

// Open - a postgres DSN gets a pgxpool; anything else is taken to be the path of a sqlite file
func Open(ctx context.Context, dsn string) (Archive, error) {
	run := uuid.NewString()
	if IsPostgresDSN(dsn) {
		return OpenPostgres(ctx, dsn, run)
	}
	return OpenSQLite(ctx, dsn, run)
}

func IsPostgresDSN(dsn string) bool {
	l := strings.ToLower(dsn)
	return strings.HasPrefix(l, "postgres://") || strings.HasPrefix(l, "postgresql://")
}

// StoreAndReport - Store and then tell the operator what the archive now holds
func StoreAndReport(ctx context.Context, a Archive, handle string, pp []str.Post) error {
	const (
		MSG  = "archived %d posts by '%s' (run C3%sC0); the archive now holds %d of them"
		MSG2 = "\t%s: %d"
	)
	start := time.Now()
	n, err := a.Store(ctx, handle, pp)
	if err != nil {
		return err
	}
	tot, err := a.Count(ctx, handle)
	if err != nil {
		return err
	}
	Msg.NOTE(fmt.Sprintf(MSG, n, handle, a.RunID(), tot))

	if byh, err := a.CountByHandle(ctx); err == nil {
		for _, h := range gen.SortedKeys(byh) {
			Msg.FYI(fmt.Sprintf(MSG2, h, byh[h]))
		}
	}
	Msg.Timer("D1", "archive updated", start, start)
	return nil
}

func archiveErr(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", vv.ErrArchive, what, err)
}

// the two backends share one schema; both dialects accept this upsert
const (
	SCHEMA = `
	CREATE TABLE IF NOT EXISTS posts (
		id          TEXT PRIMARY KEY,
		handle      TEXT NOT NULL,
		created_at  TIMESTAMP NOT NULL,
		text        TEXT NOT NULL,
		run_id      TEXT NOT NULL,
		archived_at TIMESTAMP NOT NULL
	)`
	INDEX    = `CREATE INDEX IF NOT EXISTS idx_posts_handle ON posts(handle)`
	COUNTQ   = `SELECT COUNT(*) FROM posts WHERE handle = $1`
	COUNTALL = `SELECT handle, COUNT(*) FROM posts GROUP BY handle`
	UPSERT   = `
	INSERT INTO posts (id, handle, created_at, text, run_id, archived_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		handle = excluded.handle,
		created_at = excluded.created_at,
		text = excluded.text,
		run_id = excluded.run_id,
		archived_at = excluded.archived_at`
)
