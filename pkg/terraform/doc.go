// Package terraform renders ready-to-apply Terraform configurations for the
// provisionable Azure resource types.
//
// The generator is deterministic and total: given a validated snapshot it
// always produces the same text, and it never consults the network or the
// filesystem. Each configuration is self-contained (provider block, resource
// group, resource blocks, outputs) so the user can drop it into an empty
// directory and run terraform init / plan / apply.
package terraform
