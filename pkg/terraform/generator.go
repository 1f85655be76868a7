package terraform

import (
	"fmt"
	"strings"

	"github.com/provisio/provisio/pkg/domain"
)

// Generator renders Terraform configurations from validated session
// snapshots. It implements ports.CodeGenerator.
type Generator struct{}

// NewGenerator returns a ready-to-use Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

const providerTemplate = `terraform {
  required_providers {%s
    azurerm = {
      source  = "hashicorp/azurerm"
      version = "~> 3.0"
    }
  }
}

provider "azurerm" {
  features {}

  # Authentication using Service Principal
  # Set these via environment variables:
  # ARM_CLIENT_ID, ARM_CLIENT_SECRET, ARM_TENANT_ID, ARM_SUBSCRIPTION_ID
}
`

// Extra required_providers entries. VMs carry the tls provider for SSH key
// generation; the password-bearing database servers carry random.
const (
	tlsProvider = `
    tls = {
      source  = "hashicorp/tls"
      version = "~> 4.0"
    }`

	randomProvider = `
    random = {
      source  = "hashicorp/random"
      version = "~> 3.0"
    }`
)

const resourceGroupTemplate = `
resource "azurerm_resource_group" "rg" {
  name     = "%s"
  location = "%s"

  tags = {
    Environment = "Production"
    ManagedBy   = "Terraform"
  }
}
`

const existingGroupTemplate = `
# Using existing resource group
data "azurerm_resource_group" "rg" {
  name = "%s"
}
`

// Generate renders the complete configuration for the snapshot: provider
// block, resource group (created new or referenced as a data source), then
// the resource-specific blocks and their outputs.
func (g *Generator) Generate(snap domain.Snapshot) (string, error) {
	var sb strings.Builder
	sb.WriteString(providerBlock(snap.Resource))

	rgRef := "data.azurerm_resource_group.rg.name"
	regionRef := "data.azurerm_resource_group.rg.location"
	if snap.NewResourceGroup {
		fmt.Fprintf(&sb, resourceGroupTemplate, snap.ResourceGroup, snap.Region)
		rgRef = "azurerm_resource_group.rg.name"
		regionRef = "azurerm_resource_group.rg.location"
	} else {
		fmt.Fprintf(&sb, existingGroupTemplate, snap.ResourceGroup)
	}

	switch snap.Resource {
	case domain.ResourceVM:
		renderVM(&sb, snap.Config, rgRef, regionRef)
	case domain.ResourceVNet:
		renderVNet(&sb, snap.Config, rgRef, regionRef)
	case domain.ResourceStorage:
		renderStorage(&sb, snap.Config, rgRef, regionRef)
	case domain.ResourceAKS:
		renderAKS(&sb, snap.Config, rgRef, regionRef)
	case domain.ResourcePostgreSQL:
		renderPostgres(&sb, snap.Config, rgRef, regionRef)
	case domain.ResourceMySQL:
		renderMySQL(&sb, snap.Config, rgRef, regionRef)
	case domain.ResourceSQLDB:
		renderSQLDatabase(&sb, snap.Config, rgRef, regionRef)
	case domain.ResourceCosmosDB:
		renderCosmos(&sb, snap.Config, rgRef, regionRef)
	default:
		return "", fmt.Errorf("generate terraform: %w: %q", domain.ErrUnknownResourceType, snap.Resource)
	}

	return sb.String(), nil
}

func providerBlock(resource domain.ResourceType) string {
	var extra string
	switch resource {
	case domain.ResourceVM:
		extra = tlsProvider
	case domain.ResourcePostgreSQL, domain.ResourceMySQL, domain.ResourceSQLDB:
		extra = randomProvider
	}
	return fmt.Sprintf(providerTemplate, extra)
}
