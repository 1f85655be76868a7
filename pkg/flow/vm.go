package flow

import "github.com/provisio/provisio/pkg/domain"

func virtualMachineFlow() Flow {
	return Flow{
		Resource: domain.ResourceVM,
		Steps: []Step{
			{
				Field:    "name",
				Prompt:   "What would you like to name your Virtual Machine?",
				Validate: lengthBetween(1, 64, "VM name must be between 1 and 64 characters."),
			},
			{
				Field:   "size",
				Prompt:  "Select a VM size:",
				Options: VMSizes,
				Default: "Standard_B2s",
			},
			{
				Field:   "os_image",
				Prompt:  "Select an operating system:",
				Options: OSImageNames,
				Default: "Ubuntu2204",
			},
			{
				Field:   "os_disk_type",
				Prompt:  "Select OS disk type:",
				Options: OSDiskTypes,
				Default: "Standard_LRS",
			},
			{
				Field:   "admin_username",
				Prompt:  "Enter admin username:",
				Default: "azureuser",
				Validate: func(s string) error {
					const msg = "Username must be 1-64 characters and cannot be 'admin', 'administrator', or 'root'."
					if err := lengthBetween(1, 64, msg)(s); err != nil {
						return err
					}
					return notReserved([]string{"admin", "administrator", "root"}, msg)(s)
				},
			},
			{
				Field:     "create_public_ip",
				Prompt:    "Create a public IP address for remote access?",
				Options:   []string{"yes", "no"},
				Default:   "yes",
				Transform: yesNo,
			},
		},
		Assemble: func(answers domain.Config) domain.Config {
			return domain.Config{
				"name":             answers["name"],
				"size":             answers.String("size", "Standard_B2s"),
				"os_image":         answers.String("os_image", "Ubuntu2204"),
				"os_disk_type":     answers.String("os_disk_type", "Standard_LRS"),
				"admin_username":   answers.String("admin_username", "azureuser"),
				"create_public_ip": answers.Bool("create_public_ip", true),
				"generate_ssh_key": true,
			}
		},
	}
}
