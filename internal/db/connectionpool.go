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
	"github.com/e-gun/TweetTopicModeler/internal/str"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGArchive - the archive in PostgreSQL
type PGArchive struct {
	pool *pgxpool.Pool
	run  string
}

// OpenPostgres - build the pgxpool and make sure the table exists
func OpenPostgres(ctx context.Context, dsn string, run string) (*PGArchive, error) {
	// one run writes sequentially: a small pool is plenty

	const (
		FAIL1   = "could not parse the archive DSN"
		FAIL2   = "could not connect to PostgreSQL"
		ERRRUN  = `dial error`
		FAILRUN = `'%s': the PostgreSQL server cannot be found; check that it is running`
		ERRSRV  = `server error`
		FAILSRV = `'%s': there is configuration problem; see the following response from PostgreSQL:`
	)

	config, e := pgxpool.ParseConfig(dsn)
	if e != nil {
		return nil, archiveErr(FAIL1, e)
	}
	config.MaxConns = 4

	thepool, e := pgxpool.NewWithConfig(ctx, config)
	if e == nil {
		e = thepool.Ping(ctx)
	}
	if e != nil {
		if strings.Contains(e.Error(), ERRRUN) {
			Msg.CRIT(fmt.Sprintf(FAILRUN, ERRRUN))
		}
		if strings.Contains(e.Error(), ERRSRV) {
			Msg.CRIT(fmt.Sprintf(FAILSRV, ERRSRV))
			parts := strings.Split(e.Error(), ERRSRV)
			Msg.CRIT(parts[len(parts)-1])
		}
		if thepool != nil {
			thepool.Close()
		}
		return nil, archiveErr(FAIL2, e)
	}

	for _, q := range []string{SCHEMA, INDEX} {
		if _, e = thepool.Exec(ctx, q); e != nil {
			thepool.Close()
			return nil, archiveErr("could not initialize the schema", e)
		}
	}

	return &PGArchive{pool: thepool, run: run}, nil
}

// Store - upsert every post; returns the number written
func (a *PGArchive) Store(ctx context.Context, handle string, pp []str.Post) (int, error) {
	now := time.Now().UTC()
	written := 0
	for _, chunk := range gen.ChunkSlice(pp, INSERTCHUNK) {
		if len(chunk) == 0 {
			continue
		}
		b := &pgx.Batch{}
		for _, p := range chunk {
			b.Queue(UPSERT, p.ID, handle, p.CreatedAt.UTC(), p.Text, a.run, now)
		}
		if err := a.pool.SendBatch(ctx, b).Close(); err != nil {
			return written, archiveErr("could not store posts", err)
		}
		written += len(chunk)
	}
	return written, nil
}

func (a *PGArchive) Count(ctx context.Context, handle string) (int64, error) {
	var n int64
	if err := a.pool.QueryRow(ctx, COUNTQ, handle).Scan(&n); err != nil {
		return 0, archiveErr("could not count posts", err)
	}
	return n, nil
}

func (a *PGArchive) CountByHandle(ctx context.Context) (map[string]int64, error) {
	rows, err := a.pool.Query(ctx, COUNTALL)
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

func (a *PGArchive) RunID() string { return a.run }

func (a *PGArchive) Close() error {
	a.pool.Close()
	return nil
}
