// Package graph renders the conversation state machine and the per-resource
// flows as Mermaid diagrams for the flows command.
package graph

import (
	"fmt"
	"strings"

	"github.com/provisio/provisio/pkg/domain"
	"github.com/provisio/provisio/pkg/flow"
)

// StateMachine produces a Mermaid flowchart of the conversation states:
// the main provisioning path, the confirmation branches, and the global
// restart edge shown dotted.
func StateMachine() string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	sb.WriteString("    initial((\"initial\"))\n")
	sb.WriteString("    resource_selection[/\"resource_selection\"/]\n")
	sb.WriteString("    subscription[/\"subscription\"/]\n")
	sb.WriteString("    resource_group[/\"resource_group\"/]\n")
	sb.WriteString("    region[/\"region\"/]\n")
	sb.WriteString("    resource_config[/\"resource_config\"/]\n")
	sb.WriteString("    confirmation[/\"confirmation\"/]\n")
	sb.WriteString("    creating[[\"creating\"]]\n")
	sb.WriteString("    completed((\"completed\"))\n")

	sb.WriteString("    initial --> resource_selection\n")
	sb.WriteString("    resource_selection --> subscription\n")
	sb.WriteString("    subscription --> resource_group\n")
	sb.WriteString("    resource_group --> region\n")
	sb.WriteString("    region --> resource_config\n")
	sb.WriteString("    resource_config --> confirmation\n")
	sb.WriteString("    confirmation -- \"yes\" --> creating\n")
	sb.WriteString("    confirmation -- \"terraform\" --> completed\n")
	sb.WriteString("    confirmation -- \"no\" --> resource_selection\n")
	sb.WriteString("    confirmation -- \"edit\" --> subscription\n")
	sb.WriteString("    creating -- \"execute\" --> completed\n")
	sb.WriteString("    completed -. \"restart\" .-> resource_selection\n")

	return sb.String()
}

// FlowSteps produces a Mermaid flowchart of one resource type's question
// sequence. Steps with a fixed menu render as parallelograms; defaults are
// annotated on the node label.
func FlowSteps(rt domain.ResourceType, steps []flow.Step) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	entry := sanitizeID(string(rt))
	sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", entry, rt.Label()))

	prev := entry
	for _, step := range steps {
		id := sanitizeID(step.Field)
		label := step.Field
		if step.Default != "" {
			label = fmt.Sprintf("%s <br/> default: %s", step.Field, step.Default)
		}

		opener, closer := "[", "]"
		if len(step.Menu(nil)) > 0 {
			opener, closer = "[/", "/]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label, closer))
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", prev, id))
		prev = id
	}

	sb.WriteString("    confirmation[\"confirmation\"]\n")
	sb.WriteString(fmt.Sprintf("    %s --> confirmation\n", prev))

	return sb.String()
}

func sanitizeID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
