package graph_test

import (
	"strings"
	"testing"

	"github.com/provisio/provisio/internal/presentation/graph"
	"github.com/provisio/provisio/pkg/domain"
	"github.com/provisio/provisio/pkg/flow"
)

func TestStateMachine(t *testing.T) {
	got := graph.StateMachine()

	wants := []string{
		"graph TD",
		"initial((\"initial\"))",
		"creating[[\"creating\"]]",
		"confirmation -- \"yes\" --> creating",
		"confirmation -- \"terraform\" --> completed",
		"confirmation -- \"edit\" --> subscription",
		"creating -- \"execute\" --> completed",
		"completed -. \"restart\" .-> resource_selection",
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("StateMachine() missing %q in:\n%s", want, got)
		}
	}
}

func TestFlowSteps(t *testing.T) {
	reg := flow.NewRegistry()
	got := graph.FlowSteps(domain.ResourceVM, reg.Steps(domain.ResourceVM))

	wants := []string{
		"vm((\"Virtual Machine\"))",
		"name[\"name\"]",
		"confirmation[\"confirmation\"]",
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("FlowSteps() missing %q in:\n%s", want, got)
		}
	}

	// Every step chains to the next in declaration order.
	steps := reg.Steps(domain.ResourceVM)
	prev := "vm"
	for _, s := range steps {
		edge := prev + " --> " + s.Field
		if !strings.Contains(got, edge) {
			t.Errorf("FlowSteps() missing edge %q", edge)
		}
		prev = s.Field
	}
	if !strings.Contains(got, prev+" --> confirmation") {
		t.Errorf("FlowSteps() missing terminal edge from %q", prev)
	}
}
