package terraform

import (
	"fmt"
	"strings"

	"github.com/provisio/provisio/pkg/domain"
)

const vnetTemplate = `
# Virtual Network
resource "azurerm_virtual_network" "vnet" {
  name                = "%[1]s"
  address_space       = ["%[2]s"]
  location            = %[3]s
  resource_group_name = %[4]s

  tags = {
    Environment = "Production"
    ManagedBy   = "Terraform"
  }
}
`

const subnetTemplate = `
resource "azurerm_subnet" "subnet_%[1]s" {
  name                 = "%[1]s"
  resource_group_name  = %[2]s
  virtual_network_name = azurerm_virtual_network.vnet.name
  address_prefixes     = ["%[3]s"]
}
`

const vnetOutput = `
output "vnet_id" {
  value = azurerm_virtual_network.vnet.id
}
`

func renderVNet(sb *strings.Builder, cfg domain.Config, rgRef, regionRef string) {
	name := cfg.String("name", "myvnet")
	addressSpace := cfg.String("address_space", "10.0.0.0/16")

	fmt.Fprintf(sb, vnetTemplate, name, addressSpace, regionRef, rgRef)

	subnets, _ := cfg["subnets"].([]any)
	if len(subnets) == 0 {
		subnets = []any{map[string]any{"name": "default", "address_prefix": "10.0.0.0/24"}}
	}
	for i, raw := range subnets {
		sub, _ := raw.(map[string]any)
		subName := domain.Config(sub).String("name", fmt.Sprintf("subnet%d", i))
		prefix := domain.Config(sub).String("address_prefix", fmt.Sprintf("10.0.%d.0/24", i))
		fmt.Fprintf(sb, subnetTemplate, subName, rgRef, prefix)
	}

	sb.WriteString(vnetOutput)
}
