// Package metrics wires engine lifecycle events into Prometheus. The engine
// itself stays metrics-agnostic: it reports through domain.LifecycleHooks
// and this package translates events into counters and histograms on its
// own registry.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/provisio/provisio/pkg/domain"
)

// Metrics holds the conversation and provisioning instruments.
type Metrics struct {
	registry *prometheus.Registry

	SessionsStarted prometheus.Counter
	SessionsEnded   prometheus.Counter
	SessionsActive  prometheus.Gauge

	TurnsTotal   *prometheus.CounterVec
	TurnDuration prometheus.Histogram

	ProvisionsTotal   *prometheus.CounterVec
	ProvisionDuration *prometheus.HistogramVec
}

// New creates the instruments on a fresh registry with the standard Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "provisio",
			Subsystem: "sessions",
			Name:      "started_total",
			Help:      "Total number of sessions started",
		}),
		SessionsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "provisio",
			Subsystem: "sessions",
			Name:      "ended_total",
			Help:      "Total number of sessions deleted",
		}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "provisio",
			Subsystem: "sessions",
			Name:      "active",
			Help:      "Number of live sessions",
		}),

		TurnsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "provisio",
				Subsystem: "turns",
				Name:      "total",
				Help:      "Total number of conversation turns",
			},
			[]string{"state", "status"},
		),
		TurnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "provisio",
			Subsystem: "turns",
			Name:      "duration_seconds",
			Help:      "Turn processing duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		ProvisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "provisio",
				Subsystem: "provision",
				Name:      "total",
				Help:      "Total number of provisioner dispatches",
			},
			[]string{"resource", "status"},
		),
		ProvisionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "provisio",
				Subsystem: "provision",
				Name:      "duration_seconds",
				Help:      "Provisioner dispatch duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"resource"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.registry.MustRegister(
		m.SessionsStarted,
		m.SessionsEnded,
		m.SessionsActive,
		m.TurnsTotal,
		m.TurnDuration,
		m.ProvisionsTotal,
		m.ProvisionDuration,
	)

	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the scrape handler for the /metrics route.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Hooks returns lifecycle hooks that record into these instruments.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSessionStart: func(_ context.Context, _ string) {
			m.SessionsStarted.Inc()
			m.SessionsActive.Inc()
		},
		OnSessionEnd: func(_ context.Context, _ string) {
			m.SessionsEnded.Inc()
			m.SessionsActive.Dec()
		},
		OnTurn: func(_ context.Context, ev *domain.TurnEvent) {
			status := "advanced"
			if ev.Rejected {
				status = "rejected"
			}
			m.TurnsTotal.WithLabelValues(string(ev.To), status).Inc()
			m.TurnDuration.Observe(ev.Duration.Seconds())
		},
		OnProvision: func(_ context.Context, ev *domain.ProvisionEvent) {
			status := "success"
			if !ev.Success {
				status = "failure"
			}
			m.ProvisionsTotal.WithLabelValues(string(ev.Resource), status).Inc()
			m.ProvisionDuration.WithLabelValues(string(ev.Resource)).Observe(ev.Duration.Seconds())
		},
	}
}
