package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the picker's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	samples         *prometheus.CounterVec
	rejectedSamples *prometheus.CounterVec
	historySessions prometheus.Gauge
	historyRecords  prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		samples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chromapick_samples_total",
				Help: "Samples derived, by palette and matched color name",
			},
			[]string{"palette", "name"},
		),
		rejectedSamples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chromapick_rejected_samples_total",
				Help: "Samples rejected before derivation, by reason",
			},
			[]string{"reason"},
		),
		historySessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chromapick_history_sessions",
			Help: "Sessions with at least one recorded sample",
		}),
		historyRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chromapick_history_records",
			Help: "Recorded samples across all sessions",
		}),
	}
	m.registry.MustRegister(
		m.samples,
		m.rejectedSamples,
		m.historySessions,
		m.historyRecords,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveSample is safe on a nil receiver so handlers need no metrics check.
func (m *Metrics) ObserveSample(palette, name string) {
	if m == nil {
		return
	}
	m.samples.WithLabelValues(palette, name).Inc()
}

func (m *Metrics) ObserveRejected(reason string) {
	if m == nil {
		return
	}
	m.rejectedSamples.WithLabelValues(reason).Inc()
}

func (m *Metrics) SetHistory(sessions, records int) {
	if m == nil {
		return
	}
	m.historySessions.Set(float64(sessions))
	m.historyRecords.Set(float64(records))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
