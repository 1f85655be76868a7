package terraform

import (
	"fmt"
	"strings"

	"github.com/provisio/provisio/pkg/domain"
)

// Azure storage SKUs decompose into an account tier plus a replication type.
var storageAccountTiers = map[string]string{
	"Standard_LRS":   "Standard",
	"Standard_GRS":   "Standard",
	"Standard_RAGRS": "Standard",
	"Standard_ZRS":   "Standard",
	"Premium_LRS":    "Premium",
	"Premium_ZRS":    "Premium",
}

var storageReplicationTypes = map[string]string{
	"Standard_LRS":   "LRS",
	"Standard_GRS":   "GRS",
	"Standard_RAGRS": "RAGRS",
	"Standard_ZRS":   "ZRS",
	"Premium_LRS":    "LRS",
	"Premium_ZRS":    "ZRS",
}

const storageTemplate = `
# Storage Account
resource "azurerm_storage_account" "storage" {
  name                     = "%[1]s"
  resource_group_name      = %[2]s
  location                 = %[3]s
  account_tier             = "%[4]s"
  account_replication_type = "%[5]s"
  account_kind             = "%[6]s"
  access_tier              = "%[7]s"

  enable_https_traffic_only = true
  min_tls_version          = "TLS1_2"

  blob_properties {
    versioning_enabled = true
  }

  tags = {
    Environment = "Production"
    ManagedBy   = "Terraform"
  }
}

output "storage_account_name" {
  value = azurerm_storage_account.storage.name
}

output "storage_account_primary_connection_string" {
  value     = azurerm_storage_account.storage.primary_connection_string
  sensitive = true
}

output "storage_account_primary_blob_endpoint" {
  value = azurerm_storage_account.storage.primary_blob_endpoint
}
`

func renderStorage(sb *strings.Builder, cfg domain.Config, rgRef, regionRef string) {
	name := cfg.String("name", "mystorageaccount")
	sku := cfg.String("sku", "Standard_LRS")
	kind := cfg.String("kind", "StorageV2")
	accessTier := cfg.String("access_tier", "Hot")

	tier, ok := storageAccountTiers[sku]
	if !ok {
		tier = "Standard"
	}
	replication, ok := storageReplicationTypes[sku]
	if !ok {
		replication = "LRS"
	}

	fmt.Fprintf(sb, storageTemplate, name, rgRef, regionRef, tier, replication, kind, accessTier)
}
