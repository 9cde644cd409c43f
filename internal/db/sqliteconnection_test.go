//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/e-gun/TweetTopicModeler/internal/str"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) Archive {
	t.Helper()
	a, err := Open(context.Background(), filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func posts(ids ...string) []str.Post {
	var pp []str.Post
	for i, id := range ids {
		pp = append(pp, str.Post{ID: id, CreatedAt: time.Date(2020, 1, 1+i, 0, 0, 0, 0, time.UTC), Text: "text " + id})
	}
	return pp
}

func TestOpenPicksBackend(t *testing.T) {
	assert.True(t, IsPostgresDSN("postgres://u:p@localhost/db"))
	assert.True(t, IsPostgresDSN("PostgreSQL://u:p@localhost/db"))
	assert.False(t, IsPostgresDSN("archive.db"))

	a := openTemp(t)
	_, ok := a.(*SQLiteArchive)
	assert.True(t, ok)
	_, err := uuid.Parse(a.RunID())
	assert.NoError(t, err)
}

func TestStoreUpsertsAndCounts(t *testing.T) {
	ctx := context.Background()
	a := openTemp(t)

	n, err := a.Store(ctx, "nasa", posts("3", "2", "1"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// overlapping second fetch
	edited := posts("4", "3")
	edited[1].Text = "edited"
	_, err = a.Store(ctx, "nasa", edited)
	require.NoError(t, err)
	_, err = a.Store(ctx, "esa", posts("10"))
	require.NoError(t, err)

	c, err := a.Count(ctx, "nasa")
	require.NoError(t, err)
	assert.Equal(t, int64(4), c)

	all, err := a.CountByHandle(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"nasa": 4, "esa": 1}, all)

	back, err := a.(*SQLiteArchive).Posts(ctx, "nasa")
	require.NoError(t, err)
	require.Len(t, back, 4)
	for _, p := range back {
		if p.ID == "3" {
			assert.Equal(t, "edited", p.Text)
		}
	}
	assert.True(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Equal(back[3].CreatedAt))
}

func TestStoreNothing(t *testing.T) {
	a := openTemp(t)
	n, err := a.Store(context.Background(), "nasa", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStoreAndReport(t *testing.T) {
	a := openTemp(t)
	require.NoError(t, StoreAndReport(context.Background(), a, "nasa", posts("1", "2")))
	c, err := a.Count(context.Background(), "nasa")
	require.NoError(t, err)
	assert.Equal(t, int64(2), c)
}

func TestBadPostgresDSN(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "postgres://%zz", "run")
	require.Error(t, err)
	assert.ErrorIs(t, err, vv.ErrArchive)
	assert.Equal(t, vv.EXITARCHIVE, vv.ExitCode(err))
}
