package telemetry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels recorded for operations.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Collector captures preset operation events.
type Collector interface {
	// ObserveOperation records one call of op (load, save, backup, ...).
	ObserveOperation(op, outcome string, elapsed time.Duration)
	// AddPruned records backups deleted by retention.
	AddPruned(count int)
	// SetLibrarySize records the number of presets in the library.
	SetLibrarySize(count int)
}

type noopCollector struct{}

// Noop returns a collector that discards all metrics.
func Noop() Collector {
	return noopCollector{}
}

func (noopCollector) ObserveOperation(string, string, time.Duration) {}
func (noopCollector) AddPruned(int)                                  {}
func (noopCollector) SetLibrarySize(int)                             {}

// PrometheusCollector exposes preset metrics via Prometheus.
type PrometheusCollector struct {
	operations  *prometheus.CounterVec
	durations   *prometheus.HistogramVec
	pruned      prometheus.Counter
	librarySize prometheus.Gauge
}

// NewPrometheusCollector registers the metrics with reg, reusing collectors
// that are already registered.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	operations, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "preset_operations_total",
		Help: "Number of preset operations by operation and outcome.",
	}, []string{"operation", "outcome"}))
	if err != nil {
		return nil, err
	}

	durations, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "preset_operation_duration_seconds",
		Help:    "Duration of preset operations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}

	pruned, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "preset_backups_pruned_total",
		Help: "Number of backups deleted by retention.",
	}))
	if err != nil {
		return nil, err
	}

	librarySize, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "preset_library_files",
		Help: "Number of files in the preset library at the last listing.",
	}))
	if err != nil {
		return nil, err
	}

	return &PrometheusCollector{
		operations:  operations,
		durations:   durations,
		pruned:      pruned,
		librarySize: librarySize,
	}, nil
}

// register adds c to reg or returns the collector registered before it.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveOperation increments the operation counter and records its duration.
func (p *PrometheusCollector) ObserveOperation(op, outcome string, elapsed time.Duration) {
	if p == nil {
		return
	}
	p.operations.WithLabelValues(op, outcome).Inc()
	p.durations.WithLabelValues(op).Observe(elapsed.Seconds())
}

// AddPruned adds count to the pruned backups counter.
func (p *PrometheusCollector) AddPruned(count int) {
	if p == nil || count <= 0 {
		return
	}
	p.pruned.Add(float64(count))
}

// SetLibrarySize updates the library size gauge.
func (p *PrometheusCollector) SetLibrarySize(count int) {
	if p == nil {
		return
	}
	p.librarySize.Set(float64(count))
}

// New builds the collector selected by cfg.
func New(cfg Config, reg prometheus.Registerer) (Collector, error) {
	if !cfg.Enabled {
		return Noop(), nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "prometheus":
		collector, err := NewPrometheusCollector(reg)
		if err != nil {
			return nil, err
		}
		return collector, nil
	default:
		return Noop(), fmt.Errorf("unsupported telemetry provider %q", cfg.Provider)
	}
}

// Outcome maps an error to an outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
