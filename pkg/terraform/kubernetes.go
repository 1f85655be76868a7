package terraform

import (
	"fmt"
	"strings"

	"github.com/provisio/provisio/pkg/domain"
)

const aksTemplate = `
# AKS Cluster
resource "azurerm_kubernetes_cluster" "aks" {
  name                = "%[1]s"
  location            = %[2]s
  resource_group_name = %[3]s
  dns_prefix          = "%[4]s"
  kubernetes_version  = "%[5]s"

  default_node_pool {
    name                = "nodepool1"
    node_count          = %[6]d
    vm_size             = "%[7]s"
    os_disk_size_gb     = 128
    type                = "VirtualMachineScaleSets"
    enable_auto_scaling = false
  }

  identity {
    type = "SystemAssigned"
  }

  network_profile {
    network_plugin    = "%[8]s"
    load_balancer_sku = "standard"
  }

  role_based_access_control_enabled = %[9]t

  tags = {
    Environment = "Production"
    ManagedBy   = "Terraform"
  }
}

output "aks_cluster_name" {
  value = azurerm_kubernetes_cluster.aks.name
}

output "aks_cluster_id" {
  value = azurerm_kubernetes_cluster.aks.id
}

output "kube_config" {
  value     = azurerm_kubernetes_cluster.aks.kube_config_raw
  sensitive = true
}

output "aks_fqdn" {
  value = azurerm_kubernetes_cluster.aks.fqdn
}
`

func renderAKS(sb *strings.Builder, cfg domain.Config, rgRef, regionRef string) {
	name := cfg.String("name", "myakscluster")
	dnsPrefix := cfg.String("dns_prefix", name)
	nodeCount := cfg.Int("node_count", 3)
	vmSize := cfg.String("node_vm_size", "Standard_D2s_v3")
	version := cfg.String("kubernetes_version", "1.28")
	plugin := cfg.String("network_plugin", "azure")
	rbac := cfg.Bool("enable_rbac", true)

	fmt.Fprintf(sb, aksTemplate, name, regionRef, rgRef, dnsPrefix, version,
		nodeCount, vmSize, plugin, rbac)
}
