package flow

import "github.com/provisio/provisio/pkg/domain"

func virtualNetworkFlow() Flow {
	return Flow{
		Resource: domain.ResourceVNet,
		Steps: []Step{
			{
				Field:    "name",
				Prompt:   "What would you like to name your Virtual Network?",
				Validate: lengthBetween(2, 64, "VNet name must be between 2 and 64 characters."),
			},
			{
				Field:    "address_space",
				Prompt:   "Enter the address space (CIDR notation, e.g., 10.0.0.0/16):",
				Default:  "10.0.0.0/16",
				Validate: cidrNotation("Please enter a valid CIDR notation (e.g., 10.0.0.0/16)."),
			},
			{
				Field:   "subnet_name",
				Prompt:  "Enter the name for the default subnet:",
				Default: "default",
			},
			{
				Field:    "subnet_prefix",
				Prompt:   "Enter the subnet address prefix (e.g., 10.0.0.0/24):",
				Default:  "10.0.0.0/24",
				Validate: cidrNotation("Please enter a valid CIDR notation (e.g., 10.0.0.0/24)."),
			},
		},
		Assemble: func(answers domain.Config) domain.Config {
			return domain.Config{
				"name":          answers["name"],
				"address_space": answers.String("address_space", "10.0.0.0/16"),
				"subnets": []any{
					map[string]any{
						"name":           answers.String("subnet_name", "default"),
						"address_prefix": answers.String("subnet_prefix", "10.0.0.0/24"),
					},
				},
			}
		},
	}
}
