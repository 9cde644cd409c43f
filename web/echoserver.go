//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/e-gun/TweetTopicModeler/internal/lnch"
	"github.com/e-gun/TweetTopicModeler/internal/metrics"
	"github.com/e-gun/TweetTopicModeler/internal/str"
	"github.com/e-gun/TweetTopicModeler/internal/vec"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/browser"
)

var Msg = lnch.NewMessageMakerWithDefaults()

const (
	PAGEINDEX = "index.html"
	PAGELDA   = "lda.html"
	PAGECLOUD = "wordcloud.html"
	PAGEJSON  = "lda.json"
)

// Analysis - everything the pipeline produced that can be looked at
type Analysis struct {
	Handle string
	Posts  int
	Vis    *vec.VisData
	Cloud  []vec.WordWeight
}

// Site - the rendered pages of one Analysis
type Site struct {
	cfg   *str.CurrentConfiguration
	a     *Analysis
	pages map[string][]byte
}

// NewSite - render every page once; the routes only ever hand out bytes
func NewSite(cfg *str.CurrentConfiguration, a *Analysis) (*Site, error) {
	start := time.Now()
	s := &Site{cfg: cfg, a: a, pages: make(map[string][]byte)}

	var err error
	if s.pages[PAGEINDEX], err = RenderIndex(a, start); err != nil {
		return nil, err
	}

	if a.Vis != nil {
		if s.pages[PAGELDA], err = RenderLDA(a.Vis, a.Handle); err != nil {
			return nil, err
		}
	}

	if len(a.Cloud) > 0 {
		if s.pages[PAGECLOUD], err = RenderWordCloud(a.Cloud, a.Handle); err != nil {
			return nil, err
		}
	}

	Msg.Timer("W1", "rendered the pages", start, start)
	return s, nil
}

// Echo - an echo.Echo with the middleware and routes for this Site
func (s *Site) Echo() *echo.Echo {
	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "${remote_ip}\t${custom}\t${status}\t${bytes_out}\t${uri}\n"
	)

	// ctf - a CustomTagFunc return a short user agent
	ctf := func(c echo.Context, buf *bytes.Buffer) (int, error) {
		ua := strings.Split(c.Request().UserAgent(), " ")
		last := ua[len(ua)-1]
		return buf.WriteString(last)
	}

	//
	// SETUP
	//

	e := echo.New()

	switch s.cfg.EchoLog {
	case 3:
		e.Use(middleware.Logger())
	case 2:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT, CustomTagFunc: ctf}))
	case 1:
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	default:
		// do nothing
	}

	e.Use(middleware.Recover())

	//
	// ROUTES
	//

	// [a] frontpage ("rt-frontpage.go")

	e.GET("/", s.RtFrontpage)
	e.GET("/"+PAGEINDEX, s.RtFrontpage)

	// [b] topics ("rt-lda.go")

	e.GET("/lda", s.RtLDA)
	e.GET("/"+PAGELDA, s.RtLDA)
	e.GET("/lda/json", s.RtLDAJSON)
	e.GET("/"+PAGEJSON, s.RtLDAJSON)

	// [c] word cloud ("rt-wordcloud.go")

	e.GET("/wordcloud", s.RtWordCloud)
	e.GET("/"+PAGECLOUD, s.RtWordCloud)

	// [d] metrics

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	e.HideBanner = true
	e.HidePort = true
	e.Debug = false
	return e
}

// URL - where the Site can be found once it is being served
func (s *Site) URL() string {
	return fmt.Sprintf("http://%s:%d", s.cfg.HostIP, s.cfg.HostPort)
}

// StartEchoServer - serve the Site until ctx is cancelled
func StartEchoServer(ctx context.Context, s *Site) error {
	const (
		SHUTDOWNWAIT = 5 * time.Second
		POLLEVERY    = 20 * time.Millisecond
		POLLTIMES    = 100
		SERVING      = "serving the analysis at C3%sC0 (C6ctrl-c to quitC0)"
	)

	e := s.Echo()
	addr := fmt.Sprintf("%s:%d", s.cfg.HostIP, s.cfg.HostPort)

	errc := make(chan error, 1)
	go func() {
		errc <- e.Start(addr)
	}()

	// the browser should not go looking before anyone is listening
	for i := 0; i < POLLTIMES && e.ListenerAddr() == nil; i++ {
		time.Sleep(POLLEVERY)
	}

	Msg.NOTE(fmt.Sprintf(SERVING, s.URL()))
	if s.cfg.Browser {
		OpenBrowser(s.URL())
	}

	select {
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), SHUTDOWNWAIT)
		defer cancel()
		if err := e.Shutdown(sctx); err != nil {
			return fmt.Errorf("%w: shutdown: %w", vv.ErrRender, err)
		}
		return nil
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%w: could not serve on %s: %w", vv.ErrRender, addr, err)
	}
}

// WriteHTMLFiles - save the pages instead of serving them; returns the paths written
func WriteHTMLFiles(dir string, s *Site) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %w", vv.ErrRender, err)
	}

	files := make(map[string][]byte, len(s.pages)+1)
	for n, p := range s.pages {
		files[n] = p
	}

	if s.a.Vis != nil {
		js, err := json.Marshal(s.a.Vis)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", vv.ErrRender, err)
		}
		files[PAGEJSON] = js
	}

	var written []string
	for _, n := range []string{PAGEINDEX, PAGELDA, PAGEJSON, PAGECLOUD} {
		p, ok := files[n]
		if !ok {
			continue
		}
		fn := filepath.Join(dir, n)
		if err := os.WriteFile(fn, p, vv.WRITEPERMS); err != nil {
			return written, fmt.Errorf("%w: %w", vv.ErrRender, err)
		}
		Msg.FYI(fmt.Sprintf("wrote %s", fn))
		written = append(written, fn)
	}
	return written, nil
}

// OpenBrowser - failure to open a browser is not worth stopping for
func OpenBrowser(url string) {
	quietbrowser()
	if err := browser.OpenURL(url); err != nil {
		Msg.WARN(fmt.Sprintf("could not open a browser: visit %s yourself", url))
	}
}

// OpenFile - as OpenBrowser, but for a page on disk
func OpenFile(fn string) {
	quietbrowser()
	if err := browser.OpenFile(fn); err != nil {
		Msg.WARN(fmt.Sprintf("could not open a browser: open %s yourself", fn))
	}
}

func quietbrowser() {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}
