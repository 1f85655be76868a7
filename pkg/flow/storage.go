package flow

import (
	"errors"

	"github.com/provisio/provisio/pkg/domain"
)

func storageAccountFlow() Flow {
	return Flow{
		Resource: domain.ResourceStorage,
		Steps: []Step{
			{
				Field:  "name",
				Prompt: "Enter a name for your Storage Account (3-24 chars, lowercase letters and numbers only):",
				Validate: func(s string) error {
					if len(s) < 3 || len(s) > 24 || !isAlnum(s) || !isLower(s) {
						return errors.New("Storage account name must be 3-24 characters, lowercase letters and numbers only.")
					}
					return nil
				},
			},
			{
				Field:   "sku",
				Prompt:  "Select storage redundancy (SKU):",
				Options: StorageSKUs,
				Default: "Standard_LRS",
			},
			{
				Field:   "kind",
				Prompt:  "Select storage account kind:",
				Options: StorageKinds,
				Default: "StorageV2",
			},
			{
				Field:   "access_tier",
				Prompt:  "Select access tier:",
				Options: AccessTiers,
				Default: "Hot",
			},
		},
		Assemble: func(answers domain.Config) domain.Config {
			return domain.Config{
				"name":              answers["name"],
				"sku":               answers.String("sku", "Standard_LRS"),
				"kind":              answers.String("kind", "StorageV2"),
				"access_tier":       answers.String("access_tier", "Hot"),
				"enable_https_only": true,
			}
		},
	}
}
