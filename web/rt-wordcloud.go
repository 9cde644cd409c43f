//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"net/http"

	"github.com/e-gun/TweetTopicModeler/internal/gen"
	"github.com/e-gun/TweetTopicModeler/internal/vec"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/labstack/echo/v4"
)

// RtWordCloud - send the word cloud page
func (s *Site) RtWordCloud(c echo.Context) error {
	p, ok := s.pages[PAGECLOUD]
	if !ok {
		return c.String(http.StatusNotFound, "no word cloud was requested for this run")
	}
	return gen.HTMLresponse(c, p)
}

// RenderWordCloud - html+js for the word cloud page
func RenderWordCloud(ww []vec.WordWeight, handle string) ([]byte, error) {
	const (
		PAGETITLE = "Word cloud for @%s"
	)
	if len(ww) == 0 {
		return nil, fmt.Errorf("%w: %w", vv.ErrRender, vec.ErrNoWords)
	}
	return renderpage(fmt.Sprintf(PAGETITLE, handle), components.PageCenterLayout, wordcloud(ww, handle))
}

func wordcloud(ww []vec.WordWeight, handle string) *charts.WordCloud {
	const (
		TITLE    = "What @%s tweets about"
		SUBTITLE = "the %d most frequent words"
		SHAPE    = "circle"
	)

	data := make([]opts.WordCloudData, len(ww))
	for i, w := range ww {
		data[i] = opts.WordCloudData{Name: w.Word, Value: w.Count}
	}

	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(chrome(fmt.Sprintf(TITLE, handle), fmt.Sprintf(SUBTITLE, len(ww)), vv.CHRTWIDTH, vv.CHRTHEIGHT)...)
	wc.AddSeries("words", data,
		charts.WithWorldCloudChartOpts(
			opts.WordCloudChart{
				SizeRange: []float32{vv.WCMINFONTPX, vv.WCMAXFONTPX},
				Shape:     SHAPE,
			}),
	)
	return wc
}
