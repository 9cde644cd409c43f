//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/e-gun/TweetTopicModeler/internal/lnch"
	"github.com/e-gun/TweetTopicModeler/internal/vec"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVis() *vec.VisData {
	return &vec.VisData{
		MDS: []vec.TopicCoord{
			{X: 0.1, Y: 0.2, Topic: 1, Cluster: 1, Freq: 60},
			{X: -0.1, Y: 0, Topic: 2, Cluster: 1, Freq: 40},
		},
		TopicInfo: []vec.TermInfo{
			{Term: "wall", Category: vec.CATDEFAULT, Freq: 9, Total: 9, LogProb: 2, LogLift: 2},
			{Term: "taxes", Category: vec.CATDEFAULT, Freq: 7, Total: 7, LogProb: 1, LogLift: 1},
			{Term: "wall", Category: "Topic1", Freq: 8, Total: 9, LogProb: -0.5, LogLift: 0.4},
			{Term: "taxes", Category: "Topic1", Freq: 1, Total: 7, LogProb: -2.5, LogLift: -0.9},
			{Term: "taxes", Category: "Topic2", Freq: 6, Total: 7, LogProb: -0.4, LogLift: 0.5},
			{Term: "wall", Category: "Topic2", Freq: 1, Total: 9, LogProb: -2.6, LogLift: -1.1},
		},
		TokenTable: []vec.TokenEntry{
			{Term: "taxes", Topic: 1, Freq: 1.0 / 7},
			{Term: "taxes", Topic: 2, Freq: 6.0 / 7},
			{Term: "wall", Topic: 1, Freq: 8.0 / 9},
			{Term: "wall", Topic: 2, Freq: 1.0 / 9},
		},
		R:          2,
		LambdaStep: 0.01,
		TopicOrder: []int{2, 1},
		MDSMethod:  vec.MDSPCOA,
	}
}

func testCloud() []vec.WordWeight {
	return []vec.WordWeight{
		{Word: "wall", Count: 10, Weight: 1},
		{Word: "border", Count: 5, Weight: 0.5},
	}
}

func testSite(t *testing.T, a *Analysis) *Site {
	t.Helper()
	cfg := lnch.BuildDefaultConfig()
	cfg.Browser = false
	s, err := NewSite(cfg, a)
	require.NoError(t, err)
	return s
}

func get(t *testing.T, s *Site, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	s := testSite(t, &Analysis{Handle: "someone", Posts: 12, Vis: testVis(), Cloud: testCloud()})

	rec := get(t, s, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "@someone")
	assert.Contains(t, rec.Body.String(), "12 tweets")
	assert.Contains(t, rec.Body.String(), `href="lda.html"`)
	assert.Contains(t, rec.Body.String(), "wall taxes", "topic 1 at the default lambda")

	rec = get(t, s, "/lda")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "echarts.min.js")
	assert.Contains(t, rec.Body.String(), "Intertopic distance map for @someone")
	assert.NotContains(t, rec.Body.String(), "__f__")
	assert.Equal(t, rec.Body.String(), get(t, s, "/lda.html").Body.String())

	rec = get(t, s, "/lda/json")
	assert.Equal(t, http.StatusOK, rec.Code)
	var vd map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vd))
	assert.Contains(t, vd, "mdsDat")
	assert.Contains(t, vd, "token.table")
	assert.Equal(t, "pcoa", vd["mds.method"])

	rec = get(t, s, "/wordcloud")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "border")

	rec = get(t, s, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ttm_posts_fetched_total")
}

func TestRoutesWithNothingBuilt(t *testing.T) {
	s := testSite(t, &Analysis{Handle: "someone"})

	assert.Equal(t, http.StatusOK, get(t, s, "/").Code)
	assert.NotContains(t, get(t, s, "/").Body.String(), "lda.html")
	assert.Equal(t, http.StatusNotFound, get(t, s, "/lda").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/lda/json").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/wordcloud").Code)
}

func TestRenderWordCloudNeedsWords(t *testing.T) {
	_, err := RenderWordCloud(nil, "someone")
	assert.ErrorIs(t, err, vec.ErrNoWords)
}

func TestRenderWordCloudSeries(t *testing.T) {
	page, err := RenderWordCloud(testCloud(), "someone")
	require.NoError(t, err)
	html := string(page)
	assert.Contains(t, html, `"type":"wordCloud"`)
	assert.Contains(t, html, `"shape":"circle"`)
	assert.Contains(t, html, fmt.Sprintf(`"sizeRange":[%d,%d]`, vv.WCMINFONTPX, vv.WCMAXFONTPX))
	assert.Contains(t, html, `"name":"wall"`)
}

func TestWriteHTMLFiles(t *testing.T) {
	s := testSite(t, &Analysis{Handle: "someone", Vis: testVis(), Cloud: testCloud()})
	dir := filepath.Join(t.TempDir(), "out")

	written, err := WriteHTMLFiles(dir, s)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, PAGEINDEX),
		filepath.Join(dir, PAGELDA),
		filepath.Join(dir, PAGEJSON),
		filepath.Join(dir, PAGECLOUD),
	}, written)

	js, err := os.ReadFile(filepath.Join(dir, PAGEJSON))
	require.NoError(t, err)
	assert.Contains(t, string(js), `"topic.order":[2,1]`)
}

func TestStartEchoServerStopsWithContext(t *testing.T) {
	cfg := lnch.BuildDefaultConfig()
	cfg.Browser = false
	cfg.HostIP = "127.0.0.1"
	cfg.HostPort = 0
	s, err := NewSite(cfg, &Analysis{Handle: "someone"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- StartEchoServer(ctx, s) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
