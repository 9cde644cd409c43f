//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"database/sql"
	"regexp"
	"time"

	"github.com/e-gun/TweetTopicModeler/internal/gen"
	"github.com/e-gun/TweetTopicModeler/internal/str"
	_ "modernc.org/sqlite"
)

// timestamps go in as text so that they sort and compare the same way on every platform
const (
	SQLITETIME = time.RFC3339
)

// the shared statements use postgres "$n" placeholders; every one of them is positional and in order
var (
	dollarN   = regexp.MustCompile(`\$\d+`)
	sqlUpsert = qmarks(UPSERT)
	sqlCount  = qmarks(COUNTQ)
)

func qmarks(q string) string {
	return dollarN.ReplaceAllString(q, "?")
}

// SQLiteArchive - the archive in a single local file
type SQLiteArchive struct {
	conn *sql.DB
	run  string
}

func OpenSQLite(ctx context.Context, path string, run string) (*SQLiteArchive, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, archiveErr("could not open '"+path+"'", err)
	}
	// sqlite allows a single writer
	conn.SetMaxOpenConns(1)

	for _, q := range []string{SCHEMA, INDEX} {
		if _, err = conn.ExecContext(ctx, q); err != nil {
			_ = conn.Close()
			return nil, archiveErr("could not initialize the schema in '"+path+"'", err)
		}
	}
	return &SQLiteArchive{conn: conn, run: run}, nil
}

// Store - upsert every post inside one transaction per chunk
func (a *SQLiteArchive) Store(ctx context.Context, handle string, pp []str.Post) (int, error) {
	now := time.Now().UTC().Format(SQLITETIME)
	written := 0

	for _, chunk := range gen.ChunkSlice(pp, INSERTCHUNK) {
		if len(chunk) == 0 {
			continue
		}
		tx, err := a.conn.BeginTx(ctx, nil)
		if err != nil {
			return written, archiveErr("could not begin a transaction", err)
		}
		stmt, err := tx.PrepareContext(ctx, sqlUpsert)
		if err != nil {
			_ = tx.Rollback()
			return written, archiveErr("could not prepare the upsert", err)
		}
		for _, p := range chunk {
			if _, err = stmt.ExecContext(ctx, p.ID, handle, p.CreatedAt.UTC().Format(SQLITETIME), p.Text, a.run, now); err != nil {
				_ = stmt.Close()
				_ = tx.Rollback()
				return written, archiveErr("could not store post "+p.ID, err)
			}
		}
		_ = stmt.Close()
		if err = tx.Commit(); err != nil {
			return written, archiveErr("could not commit", err)
		}
		written += len(chunk)
	}
	return written, nil
}

func (a *SQLiteArchive) Count(ctx context.Context, handle string) (int64, error) {
	var n int64
	if err := a.conn.QueryRowContext(ctx, sqlCount, handle).Scan(&n); err != nil {
		return 0, archiveErr("could not count posts", err)
	}
	return n, nil
}

func (a *SQLiteArchive) CountByHandle(ctx context.Context) (map[string]int64, error) {
	rows, err := a.conn.QueryContext(ctx, COUNTALL)
	if err != nil {
		return nil, archiveErr("could not count posts", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var h string
		var n int64
		if err = rows.Scan(&h, &n); err != nil {
			return nil, archiveErr("could not count posts", err)
		}
		counts[h] = n
	}
	if err = rows.Err(); err != nil {
		return nil, archiveErr("could not count posts", err)
	}
	return counts, nil
}

// Posts - everything held for a handle, newest first
func (a *SQLiteArchive) Posts(ctx context.Context, handle string) ([]str.Post, error) {
	const (
		Q = `SELECT id, created_at, text FROM posts WHERE handle = ? ORDER BY created_at DESC, id DESC`
	)
	rows, err := a.conn.QueryContext(ctx, Q, handle)
	if err != nil {
		return nil, archiveErr("could not read posts", err)
	}
	defer rows.Close()

	var pp []str.Post
	for rows.Next() {
		var p str.Post
		var when string
		if err = rows.Scan(&p.ID, &when, &p.Text); err != nil {
			return nil, archiveErr("could not read posts", err)
		}
		if p.CreatedAt, err = time.Parse(SQLITETIME, when); err != nil {
			return nil, archiveErr("bad timestamp for post "+p.ID, err)
		}
		pp = append(pp, p)
	}
	return pp, rows.Err()
}

func (a *SQLiteArchive) RunID() string { return a.run }

func (a *SQLiteArchive) Close() error {
	return a.conn.Close()
}
