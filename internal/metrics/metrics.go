package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts engine calls per intent. Each instance owns its registry so
// tests and multiple servers never collide on registration.
type Metrics struct {
	Registry *prometheus.Registry

	CallsTotal   *prometheus.CounterVec
	CallDuration *prometheus.HistogramVec
	RowsReturned *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		CallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "imasparql",
				Subsystem: "engine",
				Name:      "calls_total",
				Help:      "Engine calls by intent and outcome",
			},
			[]string{"intent", "outcome"},
		),

		CallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "imasparql",
				Subsystem: "engine",
				Name:      "call_duration_seconds",
				Help:      "Engine call duration including the upstream round-trip",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"intent"},
		),

		RowsReturned: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "imasparql",
				Subsystem: "upstream",
				Name:      "rows",
				Help:      "Binding rows returned by the SPARQL endpoint",
				Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000},
			},
			[]string{"intent"},
		),
	}

	m.Registry.MustRegister(m.CallsTotal, m.CallDuration, m.RowsReturned)
	return m
}

// Observe records one finished call. A nil receiver is a no-op.
func (m *Metrics) Observe(intent, outcome string, rows int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.CallsTotal.WithLabelValues(intent, outcome).Inc()
	m.CallDuration.WithLabelValues(intent).Observe(elapsed.Seconds())
	if outcome == "ok" {
		m.RowsReturned.WithLabelValues(intent).Observe(float64(rows))
	}
}
