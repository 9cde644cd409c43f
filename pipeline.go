//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/e-gun/TweetTopicModeler/internal/db"
	"github.com/e-gun/TweetTopicModeler/internal/lnch"
	"github.com/e-gun/TweetTopicModeler/internal/metrics"
	"github.com/e-gun/TweetTopicModeler/internal/str"
	"github.com/e-gun/TweetTopicModeler/internal/tab"
	"github.com/e-gun/TweetTopicModeler/internal/twt"
	"github.com/e-gun/TweetTopicModeler/internal/vec"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/e-gun/TweetTopicModeler/web"
)

// stages - the parts of the run that touch the outside world
type stages struct {
	DotEnv   string
	StopDir  string
	Timeline func(creds str.Credentials) twt.TimelineSource
	Present  func(ctx context.Context, s *web.Site) error
	Out      io.Writer
}

func defaultstages(cfg *str.CurrentConfiguration, stopdir string) stages {
	return stages{
		DotEnv:  vv.DOTENVFILE,
		StopDir: stopdir,
		Timeline: func(creds str.Credentials) twt.TimelineSource {
			return twt.NewClient(creds, twt.WithExtendedText(cfg.ExtendedText), twt.WithWaitOnRateLimit(vv.WAITONRATELIMIT))
		},
		Present: func(ctx context.Context, s *web.Site) error {
			return present(ctx, cfg, s)
		},
		Out: os.Stdout,
	}
}

// runpipeline - [a] fetch (optional) [b] word cloud (optional) [c] topic model [d] show the results
func runpipeline(ctx context.Context, cfg *str.CurrentConfiguration, st stages) error {
	const (
		AVAIL = "Analysis will be available at %s"
		DONE  = "Done."
	)

	start := time.Now()
	previous := time.Now()

	fn := tab.FileName(cfg.DataDir, cfg.User)

	// [a] fetch

	if cfg.Load {
		creds, err := lnch.LoadCredentials(st.DotEnv)
		if err != nil {
			lnch.Msg.MAND(vv.NOCREDENTIALS)
			return err
		}
		lnch.EchoCredentials(creds)

		var pp []str.Post
		pp, fn, err = twt.NewFetcher(st.Timeline(creds)).FetchToFile(ctx, cfg.User, cfg.Tweets, cfg.DataDir)
		if err != nil {
			return err
		}
		lnch.Msg.Timer("A1", fmt.Sprintf("fetched %d posts", len(pp)), start, previous)
		previous = time.Now()

		if cfg.Archive != "" {
			arch, err := db.Open(ctx, cfg.Archive)
			if err != nil {
				return err
			}
			defer arch.Close()
			if err = db.StoreAndReport(ctx, arch, cfg.User, pp); err != nil {
				return err
			}
			metrics.RegisterArchive(arch)
			lnch.Msg.Timer("A2", "archived the posts", start, previous)
			previous = time.Now()
		}
	}

	// the analysis always works from the file: a fetch only refreshes it

	posts, err := tab.ReadPosts(fn)
	if err != nil {
		return err
	}
	texts := tab.Texts(posts)
	lnch.Msg.Timer("A3", fmt.Sprintf("read %d posts from '%s'", len(posts), fn), start, previous)
	previous = time.Now()

	a := &web.Analysis{Handle: cfg.User, Posts: len(posts)}

	// [b] word cloud

	if cfg.WordCloud {
		a.Cloud, err = vec.WordFrequencies(vec.CloudText(texts), vec.ReadStopConfig(st.StopDir, vec.STOPSWORDCLOUD), vv.WCMAXWORDS)
		if err != nil {
			return err
		}
		lnch.Msg.Timer("A4", fmt.Sprintf("weighed %d words for the word cloud", len(a.Cloud)), start, previous)
		previous = time.Now()
	}

	if cfg.Serve {
		lnch.Msg.MAND(fmt.Sprintf(AVAIL, fmt.Sprintf("http://%s:%d", cfg.HostIP, cfg.HostPort)))
	}

	// [c] topic model

	tm, err := vec.BuildTopicModel(texts, vec.ModelOptionsFromConfig(cfg, vec.ReadStopConfig(st.StopDir, vec.STOPSVECTORISER)))
	if err != nil {
		return err
	}

	if err = vec.DisplayTopics(st.Out, tm, tm.Terms, cfg.LdaTopWords); err != nil {
		return fmt.Errorf("%w: %w", vv.ErrRender, err)
	}

	vo := vec.DefaultVisOptions()
	vo.MDS = cfg.LdaMDS
	vo.Seed = int64(cfg.LdaSeed)
	if a.Vis, err = vec.PrepareVis(tm, vo); err != nil {
		return err
	}
	lnch.Msg.Timer("A5", "built the topic model", start, previous)

	// [d] show

	site, err := web.NewSite(cfg, a)
	if err != nil {
		return err
	}
	if err = st.Present(ctx, site); err != nil {
		return err
	}

	lnch.Msg.MAND(DONE)
	return nil
}

// present - serve the pages until interrupted, or write them out and stop
func present(ctx context.Context, cfg *str.CurrentConfiguration, s *web.Site) error {
	if cfg.Serve {
		return web.StartEchoServer(ctx, s)
	}

	written, err := web.WriteHTMLFiles(cfg.HTMLDir, s)
	if err != nil {
		return err
	}
	if cfg.Browser && len(written) > 0 {
		web.OpenFile(written[0])
	}
	return nil
}
