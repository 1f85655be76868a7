package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/provisio/provisio/internal/presentation/graph"
	"github.com/provisio/provisio/pkg/domain"
	"github.com/provisio/provisio/pkg/flow"
)

var flowsCmd = &cobra.Command{
	Use:   "flows [resource]",
	Short: "Print the conversation graph as a Mermaid diagram",
	Long: `Without arguments, prints the conversation state machine. With a resource
type (e.g. vm, aks, postgresql), prints that resource's question sequence.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Print(graph.StateMachine())
			return
		}

		rt, err := domain.ParseResourceType(args[0])
		if err != nil {
			fmt.Printf("Unknown resource type %q. Valid types:\n", args[0])
			for _, known := range domain.ResourceTypes() {
				fmt.Printf("  %s\t%s\n", known, known.Label())
			}
			os.Exit(1)
		}

		reg := flow.NewRegistry()
		fmt.Print(graph.FlowSteps(rt, reg.Steps(rt)))
	},
}

func init() {
	rootCmd.AddCommand(flowsCmd)
}
