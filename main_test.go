//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/e-gun/TweetTopicModeler/internal/db"
	"github.com/e-gun/TweetTopicModeler/internal/lnch"
	"github.com/e-gun/TweetTopicModeler/internal/str"
	"github.com/e-gun/TweetTopicModeler/internal/tab"
	"github.com/e-gun/TweetTopicModeler/internal/twt"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/e-gun/TweetTopicModeler/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corpus = []string{
	"RT @nasa: Rocket launch [video] https://t.co/x1 orbit rocket satellite orbit",
	"Election ballot senate vote ballot election &amp; more",
	"rocket orbit satellite launch crew",
	"Senate vote election campaign ballot!!",
}

func posts(n int) []str.Post {
	t0 := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	pp := make([]str.Post, n)
	for i := range pp {
		pp[i] = str.Post{
			ID:        fmt.Sprintf("%d", 5000-i),
			CreatedAt: t0.Add(-time.Duration(i) * time.Hour),
			Text:      corpus[i%len(corpus)],
		}
	}
	return pp
}

// onepage - a timeline that hands over everything it has on the first request
type onepage struct {
	calls int
	pp    []str.Post
}

func (o *onepage) UserTimeline(ctx context.Context, handle string, count int, maxID int64) ([]str.Post, error) {
	o.calls++
	if o.calls > 1 {
		return nil, nil
	}
	return o.pp, nil
}

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, k := range vv.CredentialEnvVars {
		for _, name := range []string{k, strings.ToUpper(k)} {
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}
	}
}

func testConfig(t *testing.T) *str.CurrentConfiguration {
	t.Helper()
	dir := t.TempDir()
	cfg := lnch.BuildDefaultConfig()
	cfg.User = "someone"
	cfg.DataDir = dir
	cfg.HTMLDir = filepath.Join(dir, "html")
	cfg.LdaTopics = 2
	cfg.LdaIter = 5
	cfg.LdaMDS = "pcoa"
	cfg.Serve = false
	cfg.Browser = false
	return cfg
}

// testStages - everything offline; the site is written to disk instead of served
func testStages(t *testing.T, cfg *str.CurrentConfiguration, src twt.TimelineSource, out *bytes.Buffer) (stages, *[]string) {
	var written []string
	st := stages{
		DotEnv:   filepath.Join(t.TempDir(), "missing.env"),
		StopDir:  "",
		Timeline: func(creds str.Credentials) twt.TimelineSource { return src },
		Present: func(ctx context.Context, s *web.Site) error {
			var err error
			written, err = web.WriteHTMLFiles(cfg.HTMLDir, s)
			return err
		},
		Out: out,
	}
	return st, &written
}

func TestMissingCredentialsStopBeforeAnyRequest(t *testing.T) {
	clearCredentialEnv(t)
	cfg := testConfig(t)
	cfg.Load = true

	src := &onepage{pp: posts(40)}
	var out bytes.Buffer
	st, _ := testStages(t, cfg, src, &out)

	err := runpipeline(context.Background(), cfg, st)
	require.Error(t, err)
	assert.Equal(t, vv.EXITCONFIG, vv.ExitCode(err))
	assert.Zero(t, src.calls)
	assert.NoFileExists(t, tab.FileName(cfg.DataDir, cfg.User))
}

func TestPipelineFromFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, tab.WritePosts(tab.FileName(cfg.DataDir, cfg.User), posts(32)))

	var out bytes.Buffer
	st, written := testStages(t, cfg, nil, &out)
	require.NoError(t, runpipeline(context.Background(), cfg, st))

	assert.Contains(t, out.String(), "Topic 0:")
	assert.Contains(t, out.String(), "Topic 1:")
	assert.Len(t, *written, 4)
	for _, fn := range *written {
		assert.FileExists(t, fn)
	}
}

func TestPipelineWithoutFile(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer
	st, _ := testStages(t, cfg, nil, &out)

	err := runpipeline(context.Background(), cfg, st)
	require.Error(t, err)
	assert.Equal(t, vv.EXITDATA, vv.ExitCode(err))
}

func TestPipelineTooFewDocuments(t *testing.T) {
	cfg := testConfig(t)
	cfg.WordCloud = false
	require.NoError(t, tab.WritePosts(tab.FileName(cfg.DataDir, cfg.User), posts(2)))

	var out bytes.Buffer
	st, _ := testStages(t, cfg, nil, &out)

	err := runpipeline(context.Background(), cfg, st)
	require.Error(t, err)
	assert.Equal(t, vv.EXITDATA, vv.ExitCode(err))
}

func TestPipelineFetchesAndArchives(t *testing.T) {
	clearCredentialEnv(t)
	for _, k := range vv.CredentialEnvVars {
		t.Setenv(k, "value-for-"+k)
	}

	cfg := testConfig(t)
	cfg.Load = true
	cfg.Tweets = 1000
	cfg.Archive = filepath.Join(cfg.DataDir, "archive.db")

	src := &onepage{pp: posts(40)}
	var out bytes.Buffer
	st, _ := testStages(t, cfg, src, &out)
	require.NoError(t, runpipeline(context.Background(), cfg, st))

	// the first page was short of 1000 and the second came back empty
	assert.Equal(t, 2, src.calls)

	pp, err := tab.ReadPosts(tab.FileName(cfg.DataDir, cfg.User))
	require.NoError(t, err)
	assert.Len(t, pp, 40)

	arch, err := db.Open(context.Background(), cfg.Archive)
	require.NoError(t, err)
	defer arch.Close()
	n, err := arch.Count(context.Background(), cfg.User)
	require.NoError(t, err)
	assert.EqualValues(t, 40, n)
}

func TestCommandLineErrors(t *testing.T) {
	noconf := filepath.Join(t.TempDir(), "none.json")

	for _, args := range [][]string{
		{"--topics", "many"},
		{"--mds", "umap"},
		{"--load", "maybe"},
		{"--processes", "0"},
		{"stray"},
	} {
		cmd := newRootCommand(lnch.BuildDefaultConfig())
		cmd.SetArgs(append(args, "--config", noconf))
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		err := cmd.Execute()
		require.Error(t, err, args)
		if args[0] != "stray" {
			assert.Equal(t, vv.EXITUSAGE, vv.ExitCode(err), args)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	cmd := newRootCommand(lnch.BuildDefaultConfig())
	cmd.SetArgs([]string{"--version"})
	assert.NoError(t, cmd.Execute())
}

func TestWriteConfigFlag(t *testing.T) {
	p := filepath.Join(t.TempDir(), vv.CONFIGBASIC)

	cmd := newRootCommand(lnch.BuildDefaultConfig())
	cmd.SetArgs([]string{"--config", p, "--writeconfig", "--topics", "4", "--processes", "1"})
	require.NoError(t, cmd.Execute())

	back := lnch.BuildDefaultConfig()
	found, err := lnch.ReadConfigFile(p, back)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4, back.LdaTopics)
	assert.Equal(t, 1, back.LdaProcs)
	assert.Equal(t, vv.DEFAULTHANDLE, back.User)

	// and the file feeds the next launch
	again := lnch.BuildDefaultConfig()
	cmd = newRootCommand(again)
	cmd.SetArgs([]string{"--config", p, "--writeconfig"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, 4, again.LdaTopics)
}
