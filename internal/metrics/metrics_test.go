package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provisio/provisio/pkg/domain"
)

func gatherValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metric:
		for _, metric := range mf.GetMetric() {
			for k, v := range labels {
				found := false
				for _, pair := range metric.GetLabel() {
					if pair.GetName() == k && pair.GetValue() == v {
						found = true
						break
					}
				}
				if !found {
					continue metric
				}
			}
			if c := metric.GetCounter(); c != nil {
				return c.GetValue()
			}
			if g := metric.GetGauge(); g != nil {
				return g.GetValue()
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func TestHooks_SessionLifecycle(t *testing.T) {
	m := New()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnSessionStart(ctx, "a")
	hooks.OnSessionStart(ctx, "b")
	hooks.OnSessionEnd(ctx, "a")

	assert.Equal(t, 2.0, gatherValue(t, m, "provisio_sessions_started_total", nil))
	assert.Equal(t, 1.0, gatherValue(t, m, "provisio_sessions_ended_total", nil))
	assert.Equal(t, 1.0, gatherValue(t, m, "provisio_sessions_active", nil))
}

func TestHooks_TurnStatusLabels(t *testing.T) {
	m := New()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnTurn(ctx, &domain.TurnEvent{
		SessionID: "a",
		From:      domain.StateInitial,
		To:        domain.StateResourceSelection,
		Duration:  5 * time.Millisecond,
	})
	hooks.OnTurn(ctx, &domain.TurnEvent{
		SessionID: "a",
		From:      domain.StateResourceSelection,
		To:        domain.StateResourceSelection,
		Rejected:  true,
		Duration:  time.Millisecond,
	})

	assert.Equal(t, 1.0, gatherValue(t, m, "provisio_turns_total", map[string]string{
		"state": "resource_selection", "status": "advanced",
	}))
	assert.Equal(t, 1.0, gatherValue(t, m, "provisio_turns_total", map[string]string{
		"state": "resource_selection", "status": "rejected",
	}))
}

func TestHooks_ProvisionOutcomes(t *testing.T) {
	m := New()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnProvision(ctx, &domain.ProvisionEvent{
		SessionID: "a",
		Resource:  domain.ResourceVM,
		Success:   true,
		Duration:  10 * time.Millisecond,
	})
	hooks.OnProvision(ctx, &domain.ProvisionEvent{
		SessionID: "b",
		Resource:  domain.ResourceVM,
		Success:   false,
		Duration:  10 * time.Millisecond,
	})

	assert.Equal(t, 1.0, gatherValue(t, m, "provisio_provision_total", map[string]string{
		"resource": "vm", "status": "success",
	}))
	assert.Equal(t, 1.0, gatherValue(t, m, "provisio_provision_total", map[string]string{
		"resource": "vm", "status": "failure",
	}))
}

func TestHandler_NotNil(t *testing.T) {
	m := New()
	assert.NotNil(t, m.Handler())
}
