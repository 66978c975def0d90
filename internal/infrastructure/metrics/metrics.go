// Package metrics exposes scanner and HTTP metrics for Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"pairscan-service/internal/application"
	"pairscan-service/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pairscan"

var _ application.Recorder = (*Metrics)(nil)

// Metrics owns a private registry so tests and multiple processes never collide
// on the global one.
type Metrics struct {
	registry *prometheus.Registry

	refreshes       *prometheus.CounterVec
	refreshDuration *prometheus.HistogramVec
	cacheHits       *prometheus.CounterVec
	alerts          *prometheus.CounterVec
	storeSize       *prometheus.GaugeVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		refreshes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scanner",
			Name:      "refreshes_total",
			Help:      "Scanner refreshes by category and outcome",
		}, []string{"category", "outcome"}),
		refreshDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scanner",
			Name:      "refresh_duration_seconds",
			Help:      "Time spent refreshing a category snapshot",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"category"}),
		cacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scanner",
			Name:      "cache_hits_total",
			Help:      "Snapshot requests served from cache",
		}, []string{"category"}),
		alerts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scanner",
			Name:      "alerts_emitted_total",
			Help:      "Volume spike alerts emitted",
		}, []string{"category"}),
		storeSize: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "scanner",
			Name:      "stored_pairs",
			Help:      "Pairs currently held in the category result set",
		}, []string{"category"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) RefreshDone(c domain.Category, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.refreshes.WithLabelValues(string(c), outcome).Inc()
	m.refreshDuration.WithLabelValues(string(c)).Observe(d.Seconds())
}

func (m *Metrics) CacheHit(c domain.Category) { m.cacheHits.WithLabelValues(string(c)).Inc() }

func (m *Metrics) AlertsEmitted(c domain.Category, n int) {
	if n > 0 {
		m.alerts.WithLabelValues(string(c)).Add(float64(n))
	}
}

func (m *Metrics) StoreSize(c domain.Category, n int) {
	m.storeSize.WithLabelValues(string(c)).Set(float64(n))
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the private registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
