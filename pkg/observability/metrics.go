// Package observability exposes Prometheus metrics for graph execution.
// Metrics are fed through domain.LifecycleHooks so the execution core
// stays free of any metrics dependency.
package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"researchbot/pkg/domain"
)

// Metrics aggregates execution counters on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	nodeVisits  *prometheus.CounterVec
	checkpoints prometheus.Counter
	interrupts  *prometheus.CounterVec
}

// NewMetrics builds and registers the metric set.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		nodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "researchbot_node_visits_total",
				Help: "Total number of node executions",
			},
			[]string{"node_id"},
		),
		checkpoints: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "researchbot_checkpoints_total",
				Help: "Total number of checkpoints persisted",
			},
		),
		interrupts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "researchbot_interrupts_total",
				Help: "Total number of interrupts raised, by node",
			},
			[]string{"node_id"},
		),
	}
	m.registry.MustRegister(m.nodeVisits, m.checkpoints, m.interrupts)
	return m
}

// Hooks returns lifecycle hooks that record metrics. Merge with any
// logging hooks before handing them to the executor.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			m.nodeVisits.WithLabelValues(string(e.NodeID)).Inc()
		},
		OnCheckpoint: func(ctx context.Context, e *domain.NodeEvent) {
			m.checkpoints.Inc()
		},
		OnInterrupt: func(ctx context.Context, e *domain.NodeEvent) {
			m.interrupts.WithLabelValues(string(e.NodeID)).Inc()
		},
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gather exposes the registry for tests.
func (m *Metrics) Gather() prometheus.Gatherer {
	return m.registry
}

// MergeHooks chains hook sets so several observers can watch the same
// execution.
func MergeHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var merged domain.LifecycleHooks
	for _, hs := range sets {
		hs := hs
		merged = domain.LifecycleHooks{
			OnNodeEnter:  chain(merged.OnNodeEnter, hs.OnNodeEnter),
			OnNodeLeave:  chain(merged.OnNodeLeave, hs.OnNodeLeave),
			OnCheckpoint: chain(merged.OnCheckpoint, hs.OnCheckpoint),
			OnInterrupt:  chain(merged.OnInterrupt, hs.OnInterrupt),
		}
	}
	return merged
}

func chain(a, b func(context.Context, *domain.NodeEvent)) func(context.Context, *domain.NodeEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.NodeEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
