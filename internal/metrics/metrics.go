// Package metrics exposes workload observations as prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jsouthworth.net/go/ordered/internal/workload"
)

const namespace = "treebench"

// Collector records workload operations. Each Collector owns an
// independent registry so that several can coexist in one process.
type Collector struct {
	registry *prometheus.Registry
	ops      *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	size     *prometheus.GaugeVec
	height   *prometheus.GaugeVec
}

var _ workload.Recorder = (*Collector)(nil)

// New creates a Collector and registers its metrics.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Tree operations performed, by variant, operation and outcome.",
		}, []string{"variant", "op", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of single tree operations.",
			Buckets:   prometheus.ExponentialBuckets(50e-9, 4, 10),
		}, []string{"variant", "op"}),
		size: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_size",
			Help:      "Number of entries after the last run.",
		}, []string{"variant"}),
		height: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_height",
			Help:      "Height of the tree after the last run.",
		}, []string{"variant"}),
	}
	c.registry.MustRegister(c.ops, c.latency, c.size, c.height)
	return c
}

// Observe implements workload.Recorder.
func (c *Collector) Observe(variant string, kind workload.Kind, outcome string, elapsed time.Duration) {
	c.ops.WithLabelValues(variant, string(kind), outcome).Inc()
	c.latency.WithLabelValues(variant, string(kind)).Observe(elapsed.Seconds())
}

// Shape implements workload.Recorder.
func (c *Collector) Shape(variant string, size, height int) {
	c.size.WithLabelValues(variant).Set(float64(size))
	c.height.WithLabelValues(variant).Set(float64(height))
}

// Handler returns the scrape endpoint for the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
