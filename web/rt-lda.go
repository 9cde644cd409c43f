//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"math"
	"net/http"
	"slices"

	"github.com/e-gun/TweetTopicModeler/internal/gen"
	"github.com/e-gun/TweetTopicModeler/internal/vec"
	"github.com/e-gun/TweetTopicModeler/internal/vv"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/labstack/echo/v4"
)

//
// ROUTING
//

// RtLDA - the inter-topic distance map and the per-topic bar charts
func (s *Site) RtLDA(c echo.Context) error {
	p, ok := s.pages[PAGELDA]
	if !ok {
		return c.String(http.StatusNotFound, "no topic model was built during this run")
	}
	return gen.HTMLresponse(c, p)
}

// RtLDAJSON - the raw visualization payload
func (s *Site) RtLDAJSON(c echo.Context) error {
	if s.a.Vis == nil {
		return c.String(http.StatusNotFound, "no topic model was built during this run")
	}
	return gen.JSONresponse(c, s.a.Vis)
}

//
// CHARTS
//

// RenderLDA - html+js for the topic model page
func RenderLDA(vd *vec.VisData, handle string) ([]byte, error) {
	const (
		PAGETITLE = "Topics in @%s"
	)
	cc := []components.Charter{topicmap(vd, handle)}
	// 0 is the Default view
	for t := 0; t <= len(vd.MDS); t++ {
		cc = append(cc, topicbars(vd, t, vv.LDAVISLAMBDA))
	}
	return renderpage(fmt.Sprintf(PAGETITLE, handle), components.PageFlexLayout, cc...)
}

// topicmap - one bubble per topic; area follows the topic's share of the tokens
func topicmap(vd *vec.VisData, handle string) *charts.Scatter {
	const (
		TITLE    = "Intertopic distance map for @%s"
		SUBTITLE = "%d topics; layout: %s; size: share of tokens"
		MINSYM   = 8
		MAXSYM   = 90
	)

	sc := charts.NewScatter()
	gl := chrome(fmt.Sprintf(TITLE, handle), fmt.Sprintf(SUBTITLE, len(vd.MDS), vd.MDSMethod), vv.CHRTWIDTH, vv.CHRTHEIGHT)
	gl = append(gl,
		charts.WithXAxisOpts(opts.XAxis{Name: "PC1", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "PC2", Type: "value"}),
	)
	sc.SetGlobalOptions(gl...)

	data := make([]opts.ScatterData, len(vd.MDS))
	for i, tc := range vd.MDS {
		data[i] = opts.ScatterData{
			Name:       fmt.Sprintf("%d", tc.Topic),
			Value:      []float64{tc.X, tc.Y, round(tc.Freq, 2)},
			SymbolSize: int(math.Round(MINSYM + (MAXSYM-MINSYM)*math.Sqrt(tc.Freq/100))),
		}
	}

	sc.AddSeries("topics", data,
		charts.WithLabelOpts(opts.Label{Show: true, Position: "inside", Formatter: "{b}"}),
	)
	return sc
}

// topicbars - the most relevant terms of a topic as horizontal bars; topic 0 is the most salient terms overall
func topicbars(vd *vec.VisData, topic int, lambda float64) *charts.Bar {
	const (
		DEFTITLE = "Top-%d most salient terms"
		TOPTITLE = "Top-%d most relevant terms for topic %d"
		SUBTITLE = "λ = %.1f; %.1f%% of tokens"
		OVERALL  = "overall term frequency"
		INTOPIC  = "estimated term frequency within the topic"
	)

	tt := vd.TopTerms(topic, lambda, vd.R)

	// echarts draws a category axis from the bottom up: reverse so that the best term is on top
	slices.Reverse(tt)

	terms := make([]string, len(tt))
	total := make([]opts.BarData, len(tt))
	within := make([]opts.BarData, len(tt))
	for i, ti := range tt {
		terms[i] = ti.Term
		total[i] = opts.BarData{Name: ti.Term, Value: round(ti.Total, 2)}
		within[i] = opts.BarData{Name: ti.Term, Value: round(ti.Freq, 2)}
	}

	var title, sub string
	if topic == 0 {
		title = fmt.Sprintf(DEFTITLE, len(tt))
	} else {
		title = fmt.Sprintf(TOPTITLE, len(tt), topic)
		sub = fmt.Sprintf(SUBTITLE, lambda, vd.MDS[topic-1].Freq)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(chrome(title, sub, vv.BARCHRTWIDTH, vv.BARCHRTHIGHT)...)
	bar.SetXAxis(terms).AddSeries(OVERALL, total)
	if topic > 0 {
		bar.AddSeries(INTOPIC, within)
	}
	bar.XYReversal()
	return bar
}

func round(f float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(f*p) / p
}
