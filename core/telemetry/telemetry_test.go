package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopCollector(t *testing.T) {
	collector := Noop()
	require.NotNil(t, collector)
	collector.ObserveOperation("load", OutcomeOK, time.Millisecond)
	collector.AddPruned(3)
	collector.SetLibrarySize(1)
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewPrometheusCollector(reg)
	require.NoError(t, err)

	collector.ObserveOperation("load", OutcomeOK, 10*time.Millisecond)
	collector.ObserveOperation("load", OutcomeOK, 20*time.Millisecond)
	collector.ObserveOperation("save", OutcomeError, time.Millisecond)
	collector.AddPruned(2)
	collector.AddPruned(0)
	collector.SetLibrarySize(7)

	families := gather(t, reg)

	ops := families["preset_operations_total"]
	require.NotNil(t, ops)
	assert.Len(t, ops.Metric, 2)
	assert.Equal(t, 2.0, counterFor(ops, "load", OutcomeOK))
	assert.Equal(t, 1.0, counterFor(ops, "save", OutcomeError))

	assert.Equal(t, 2.0, families["preset_backups_pruned_total"].Metric[0].Counter.GetValue())
	assert.Equal(t, 7.0, families["preset_library_files"].Metric[0].Gauge.GetValue())
	assert.Equal(t, uint64(3), sampleCount(families["preset_operation_duration_seconds"]))
}

func TestPrometheusCollector_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPrometheusCollector(reg)
	require.NoError(t, err)
	second, err := NewPrometheusCollector(reg)
	require.NoError(t, err)

	assert.Same(t, first.pruned, second.pruned)

	first.AddPruned(1)
	second.AddPruned(1)
	assert.Equal(t, 2.0, gather(t, reg)["preset_backups_pruned_total"].Metric[0].Counter.GetValue())
}

func TestNew(t *testing.T) {
	c, err := New(Config{Enabled: false}, prometheus.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, Noop(), c)

	c, err = New(Config{Enabled: true, Provider: "Prometheus"}, prometheus.NewRegistry())
	require.NoError(t, err)
	assert.IsType(t, &PrometheusCollector{}, c)

	_, err = New(Config{Enabled: true, Provider: "statsd"}, prometheus.NewRegistry())
	assert.Error(t, err)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeOK, Outcome(nil))
	assert.Equal(t, OutcomeError, Outcome(errors.New("boom")))
}

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.MetricFamily, len(families))
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func counterFor(mf *dto.MetricFamily, op, outcome string) float64 {
	for _, m := range mf.Metric {
		labels := map[string]string{}
		for _, lp := range m.Label {
			labels[lp.GetName()] = lp.GetValue()
		}
		if labels["operation"] == op && labels["outcome"] == outcome {
			return m.Counter.GetValue()
		}
	}
	return 0
}

func sampleCount(mf *dto.MetricFamily) uint64 {
	var total uint64
	for _, m := range mf.Metric {
		total += m.Histogram.GetSampleCount()
	}
	return total
}
