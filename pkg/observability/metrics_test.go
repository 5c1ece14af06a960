package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"researchbot/pkg/domain"
	"researchbot/pkg/observability"
)

func counterValue(t *testing.T, m *observability.Metrics, name, label string) float64 {
	t.Helper()
	families, err := m.Gather().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			if label == "" && len(metric.GetLabel()) == 0 {
				return metric.GetCounter().GetValue()
			}
			for _, l := range metric.GetLabel() {
				if l.GetValue() == label {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestMetricsHooks(t *testing.T) {
	ctx := context.Background()
	m := observability.NewMetrics()
	hooks := m.Hooks()

	event := func(node string) *domain.NodeEvent {
		return &domain.NodeEvent{Thread: "t1", NodeID: node}
	}

	hooks.OnNodeEnter(ctx, event("agent"))
	hooks.OnNodeEnter(ctx, event("agent"))
	hooks.OnNodeEnter(ctx, event("summarize"))
	hooks.OnCheckpoint(ctx, event("agent"))
	hooks.OnInterrupt(ctx, event("ask_for_quiz"))

	assert.Equal(t, 2.0, counterValue(t, m, "researchbot_node_visits_total", "agent"))
	assert.Equal(t, 1.0, counterValue(t, m, "researchbot_node_visits_total", "summarize"))
	assert.Equal(t, 1.0, counterValue(t, m, "researchbot_checkpoints_total", ""))
	assert.Equal(t, 1.0, counterValue(t, m, "researchbot_interrupts_total", "ask_for_quiz"))
}

func TestMergeHooks(t *testing.T) {
	ctx := context.Background()
	var calls []string

	a := domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnNodeEnter:  func(ctx context.Context, e *domain.NodeEvent) { calls = append(calls, "b") },
		OnCheckpoint: func(ctx context.Context, e *domain.NodeEvent) { calls = append(calls, "b-cp") },
	}

	merged := observability.MergeHooks(a, b)
	merged.OnNodeEnter(ctx, &domain.NodeEvent{NodeID: "n"})
	merged.OnCheckpoint(ctx, &domain.NodeEvent{NodeID: "n"})
	assert.Equal(t, []string{"a", "b", "b-cp"}, calls)

	// Hooks absent from every set stay nil so callers can skip them.
	assert.Nil(t, merged.OnInterrupt)
}
