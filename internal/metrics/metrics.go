//    TweetTopicModeler
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package metrics

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	NAMESPACE = "ttm"
)

// Registry - private so that tests and repeated runs never collide with the global default registry
var Registry = prometheus.NewRegistry()

var (
	PostsFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: NAMESPACE,
		Name:      "posts_fetched_total",
		Help:      "Posts received from the timeline API.",
	})
	Batches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: NAMESPACE,
		Name:      "fetch_batches_total",
		Help:      "Timeline requests issued.",
	})
	RateLimitWaits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: NAMESPACE,
		Name:      "rate_limit_waits_total",
		Help:      "Times the client slept until the rate limit window reset.",
	})
	CorpusDocs = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: NAMESPACE,
		Name:      "corpus_documents",
		Help:      "Documents in the most recent topic model.",
	})
	VocabSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: NAMESPACE,
		Name:      "vocabulary_terms",
		Help:      "Terms that survived vectorisation in the most recent topic model.",
	})
	LDAFitSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: NAMESPACE,
		Name:      "lda_fit_seconds",
		Help:      "Wall time spent fitting the LDA model.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		PostsFetched, Batches, RateLimitWaits, CorpusDocs, VocabSize, LDAFitSeconds,
	)
}

// Handler - what gets mounted at /metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// ObserveSince - record the seconds elapsed since start
func ObserveSince(h prometheus.Observer, start time.Time) {
	h.Observe(time.Since(start).Seconds())
}

//
// ARCHIVE COLLECTOR
//

var (
	archivedDesc = prometheus.NewDesc(
		NAMESPACE+"_archived_posts",
		"Posts held in the archive by handle.",
		[]string{"handle"},
		nil,
	)
)

// ArchiveCounter - anything that can report how many posts it holds per handle
type ArchiveCounter interface {
	CountByHandle(ctx context.Context) (map[string]int64, error)
}

// ArchiveCollector reads the per-handle totals from the archive on each scrape.
type ArchiveCollector struct {
	src ArchiveCounter
}

func (c *ArchiveCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- archivedDesc
}

func (c *ArchiveCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	counts, err := c.src.CountByHandle(ctx)
	if err != nil {
		return
	}
	for h, n := range counts {
		ch <- prometheus.MustNewConstMetric(archivedDesc, prometheus.GaugeValue, float64(n), h)
	}
}

var archiveOnce sync.Once

// RegisterArchive - expose the archive totals; only the first archive registered is reported
func RegisterArchive(src ArchiveCounter) {
	archiveOnce.Do(func() {
		Registry.MustRegister(&ArchiveCollector{src: src})
	})
}
