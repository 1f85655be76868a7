package flow

import (
	"errors"

	"github.com/provisio/provisio/pkg/domain"
)

func aksClusterFlow() Flow {
	return Flow{
		Resource: domain.ResourceAKS,
		Steps: []Step{
			{
				Field:  "name",
				Prompt: "What would you like to name your AKS cluster?",
				Validate: func(s string) error {
					if len(s) < 1 || len(s) > 63 || !isAlnum(stripRunes(s, '-', '_')) {
						return errors.New("AKS name must be 1-63 characters, alphanumeric, hyphens, and underscores only.")
					}
					return nil
				},
			},
			{
				Field:  "dns_prefix",
				Prompt: "Enter a DNS prefix for the cluster:",
				Validate: func(s string) error {
					if len(s) < 1 || !isAlnum(stripRunes(s, '-')) {
						return errors.New("DNS prefix must be alphanumeric with optional hyphens.")
					}
					return nil
				},
			},
			{
				Field:   "kubernetes_version",
				Prompt:  "Select Kubernetes version:",
				Options: KubernetesVersions,
				Default: "1.28",
			},
			{
				Field:     "node_count",
				Prompt:    "How many nodes in the default node pool? (1-100):",
				Default:   "3",
				Validate:  intBetween(1, 100, "Node count must be between 1 and 100."),
				Transform: toInt,
			},
			{
				Field:  "node_vm_size",
				Prompt: "Select VM size for nodes:",
				// Node sizes are menu-per-session so availability can vary
				// by the chosen region; today every region offers the same
				// list.
				OptionsFunc: func(*domain.Session) []string { return AKSVMSizes },
				Default:     "Standard_D2s_v3",
			},
			{
				Field:   "network_plugin",
				Prompt:  "Select network plugin:",
				Options: NetworkPlugins,
				Default: "azure",
			},
		},
		Assemble: func(answers domain.Config) domain.Config {
			return domain.Config{
				"name":               answers["name"],
				"dns_prefix":         answers.String("dns_prefix", answers.String("name", "")),
				"kubernetes_version": answers.String("kubernetes_version", "1.28"),
				"node_count":         answers.Int("node_count", 3),
				"node_vm_size":       answers.String("node_vm_size", "Standard_D2s_v3"),
				"network_plugin":     answers.String("network_plugin", "azure"),
				"enable_rbac":        true,
			}
		},
	}
}
