// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CrawlsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "siteinsight_crawls_total",
			Help: "Total number of crawls run, labeled by outcome.",
		},
		[]string{"outcome"},
	)
	PagesFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "siteinsight_pages_fetched_total",
			Help: "Total number of page fetches, labeled by result (ok, language, error).",
		},
		[]string{"result"},
	)
	CrawlDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "siteinsight_crawl_duration_seconds",
			Help:    "Wall-clock duration of a crawl in seconds.",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 45, 60, 120},
		},
	)
	QueueDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "siteinsight_crawl_queue_dropped_total",
			Help: "Crawl jobs dropped because the worker queue was full.",
		},
	)
)

func init() {
	prometheus.MustRegister(CrawlsTotal)
	prometheus.MustRegister(PagesFetched)
	prometheus.MustRegister(CrawlDuration)
	prometheus.MustRegister(QueueDropped)
}
