package metrics

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

const namespace = "sempctl"

// Collector exports SEMP request metrics through its own prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	openContexts prometheus.Gauge

	config *Config
}

// Config holds configuration for metrics collection
type Config struct {
	Enabled bool      // Enable/disable metrics collection
	Buckets []float64 // Request duration histogram buckets, in seconds
}

// DefaultConfig returns sensible defaults for metrics collection
func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}
}

// NewCollector creates a new metrics collector with the given configuration
func NewCollector(config *Config) *Collector {
	if config == nil {
		config = DefaultConfig()
	}
	if len(config.Buckets) == 0 {
		config.Buckets = DefaultConfig().Buckets
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "semp",
			Name:      "requests_total",
			Help:      "SEMP requests by operation and HTTP status code (0 when no response was received).",
		}, []string{"operation", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "semp",
			Name:      "request_duration_seconds",
			Help:      "SEMP request latency by operation.",
			Buckets:   config.Buckets,
		}, []string{"operation"}),
		openContexts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_contexts",
			Help:      "Management contexts currently open.",
		}),
		config: config,
	}
	c.registry.MustRegister(c.requests, c.duration, c.openContexts)
	return c
}

// RecordRequest records one SEMP exchange
func (c *Collector) RecordRequest(operation string, code int, elapsed time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.requests.WithLabelValues(operation, strconv.Itoa(code)).Inc()
	c.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (c *Collector) SetOpenContexts(n int) {
	if !c.config.Enabled {
		return
	}
	c.openContexts.Set(float64(n))
}

func (c *Collector) IsEnabled() bool {
	return c.config.Enabled
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's registry in the prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// WriteText writes every gathered metric family to w in text format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
