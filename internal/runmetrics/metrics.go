package runmetrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics accumulates pipeline counters on a private registry. The registry
// is pushed once at shutdown rather than scraped; a batch process has no
// lifetime worth exposing an endpoint for.
type Metrics struct {
	registry *prometheus.Registry

	rowsLoaded          *prometheus.CounterVec
	rowsDiscarded       *prometheus.CounterVec
	integrityViolations *prometheus.GaugeVec
	exportRows          *prometheus.GaugeVec
	exportBytes         *prometheus.GaugeVec
	exportFailures      *prometheus.CounterVec
	stageDuration       *prometheus.GaugeVec
}

// New builds the pipeline metric set on the given registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		rowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "petrel",
			Name:      "rows_loaded_total",
			Help:      "Rows inserted into the relational store, by table.",
		}, []string{"table"}),
		rowsDiscarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "petrel",
			Name:      "rows_discarded_total",
			Help:      "Source rows discarded during transformation, by table.",
		}, []string{"table"}),
		integrityViolations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "petrel",
			Name:      "integrity_violations",
			Help:      "Violations found by the post-load integrity checks, by check.",
		}, []string{"check"}),
		exportRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "petrel",
			Name:      "export_rows",
			Help:      "Rows written to the promoted parquet artifact, by table.",
		}, []string{"table"}),
		exportBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "petrel",
			Name:      "export_bytes",
			Help:      "Size in bytes of the promoted parquet artifact, by table.",
		}, []string{"table"}),
		exportFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "petrel",
			Name:      "export_failures_total",
			Help:      "Export attempts that did not promote an artifact, by table.",
		}, []string{"table"}),
		stageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "petrel",
			Name:      "stage_duration_seconds",
			Help:      "Wall-clock duration of a pipeline stage.",
		}, []string{"stage"}),
	}

	if registry != nil {
		registry.MustRegister(
			m.rowsLoaded,
			m.rowsDiscarded,
			m.integrityViolations,
			m.exportRows,
			m.exportBytes,
			m.exportFailures,
			m.stageDuration,
		)
	}
	return m
}

// Registry exposes the backing registry for pushing.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) AddRowsLoaded(table string, n int64) {
	if m == nil || n < 0 {
		return
	}
	m.rowsLoaded.WithLabelValues(normalizeLabel(table)).Add(float64(n))
}

func (m *Metrics) AddRowsDiscarded(table string, n int64) {
	if m == nil || n < 0 {
		return
	}
	m.rowsDiscarded.WithLabelValues(normalizeLabel(table)).Add(float64(n))
}

func (m *Metrics) SetIntegrityViolations(check string, n int64) {
	if m == nil {
		return
	}
	if n < 0 {
		n = 0
	}
	m.integrityViolations.WithLabelValues(normalizeLabel(check)).Set(float64(n))
}

func (m *Metrics) SetExportRows(table string, n int64) {
	if m == nil {
		return
	}
	m.exportRows.WithLabelValues(normalizeLabel(table)).Set(float64(n))
}

func (m *Metrics) SetExportBytes(table string, n int64) {
	if m == nil {
		return
	}
	m.exportBytes.WithLabelValues(normalizeLabel(table)).Set(float64(n))
}

func (m *Metrics) IncExportFailures(table string) {
	if m == nil {
		return
	}
	m.exportFailures.WithLabelValues(normalizeLabel(table)).Inc()
}

func (m *Metrics) ObserveStageDuration(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(normalizeLabel(stage)).Set(d.Seconds())
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return value
}
