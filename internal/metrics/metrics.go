// Package metrics exposes Prometheus instrumentation for crawls.
//
// Every Metrics value owns its registry, so concurrent runs and tests never
// share counters. All methods are no-ops on a nil receiver.
package metrics

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "degrees"

type Metrics struct {
	Registry *prometheus.Registry

	Lookups        *prometheus.CounterVec
	LookupDuration prometheus.Histogram
	Expanded       prometheus.Counter
	Enqueued       prometheus.Counter
	CacheHits      prometheus.Counter
	FrontierDepth  prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lookups_total",
				Help:      "Remote link lookups, labeled by outcome.",
			},
			[]string{"outcome"},
		),
		LookupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Duration of remote link lookups in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		Expanded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_expanded_total",
			Help:      "Pages whose outbound links were resolved.",
		}),
		Enqueued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_enqueued_total",
			Help:      "Frontier entries created.",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Link lookups answered from the in-memory cache.",
		}),
		FrontierDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frontier_depth",
			Help:      "Depth of the page currently being expanded.",
		}),
	}
}

// ObserveLookup records the outcome and latency of one remote lookup.
func (m *Metrics) ObserveLookup(ok bool, took time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.Lookups.WithLabelValues(outcome).Inc()
	m.LookupDuration.Observe(took.Seconds())
}

func (m *Metrics) ObserveExpand(depth int) {
	if m == nil {
		return
	}
	m.Expanded.Inc()
	m.FrontierDepth.Set(float64(depth))
}

func (m *Metrics) ObserveEnqueue() {
	if m == nil {
		return
	}
	m.Enqueued.Inc()
}

func (m *Metrics) ObserveCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until the returned stop function is called.
func (m *Metrics) Serve(addr string) (func(context.Context) error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics: listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() { _ = srv.Serve(ln) }()

	return srv.Shutdown, nil
}
