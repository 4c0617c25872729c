package runmetrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"

	"github.com/smallbiznis/petrel/internal/config"
)

func gatherValue(t *testing.T, reg *prometheus.Registry, name, labelValue string) float64 {
	t.Helper()

	families, err := reg.Gather()
	assert.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetValue() != labelValue {
					continue
				}
				switch family.GetType() {
				case dto.MetricType_COUNTER:
					return metric.GetCounter().GetValue()
				case dto.MetricType_GAUGE:
					return metric.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{%s} not gathered", name, labelValue)
	return 0
}

func TestMetricsAccumulate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.AddRowsLoaded("wells", 7)
	m.AddRowsLoaded("wells", 3)
	m.AddRowsDiscarded("monthly_production", 1)
	m.SetIntegrityViolations("daily_orphans", 2)
	m.SetExportRows("wells", 7)
	m.SetExportBytes("wells", 4096)
	m.IncExportFailures("daily_production")
	m.ObserveStageDuration("load", 1500*time.Millisecond)

	assert.Equal(t, 10.0, gatherValue(t, reg, "petrel_rows_loaded_total", "wells"))
	assert.Equal(t, 1.0, gatherValue(t, reg, "petrel_rows_discarded_total", "monthly_production"))
	assert.Equal(t, 2.0, gatherValue(t, reg, "petrel_integrity_violations", "daily_orphans"))
	assert.Equal(t, 7.0, gatherValue(t, reg, "petrel_export_rows", "wells"))
	assert.Equal(t, 4096.0, gatherValue(t, reg, "petrel_export_bytes", "wells"))
	assert.Equal(t, 1.0, gatherValue(t, reg, "petrel_export_failures_total", "daily_production"))
	assert.Equal(t, 1.5, gatherValue(t, reg, "petrel_stage_duration_seconds", "load"))
}

func TestNilMetricsAreInert(t *testing.T) {
	var m *Metrics
	m.AddRowsLoaded("wells", 1)
	m.AddRowsDiscarded("wells", 1)
	m.SetIntegrityViolations("daily_orphans", 1)
	m.IncExportFailures("wells")
	assert.Nil(t, m.Registry())
}

func TestNewPusherDisabled(t *testing.T) {
	// a pusher is only built when metrics are enabled and a URL is set
	assert.Nil(t, NewPusher(config.Config{MetricsEnabled: false}, nil))
	assert.Nil(t, NewPusher(config.Config{MetricsEnabled: true, PushgatewayURL: " "}, nil))
}
