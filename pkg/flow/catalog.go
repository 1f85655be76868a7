package flow

// Azure catalog data backing the flow menus. Values mirror the portal's
// commonly offered choices; menus stay short on purpose.

// VMSizes are the offered virtual machine sizes.
var VMSizes = []string{
	"Standard_B1s",
	"Standard_B2s",
	"Standard_B2ms",
	"Standard_D2s_v3",
	"Standard_D4s_v3",
	"Standard_D8s_v3",
	"Standard_E2s_v3",
	"Standard_E4s_v3",
	"Standard_F2s_v2",
	"Standard_F4s_v2",
}

// OSImage identifies a marketplace VM image.
type OSImage struct {
	Publisher string
	Offer     string
	SKU       string
	Version   string
}

// OSImages maps the offered image names to their marketplace references.
var OSImages = map[string]OSImage{
	"Ubuntu2204":        {Publisher: "Canonical", Offer: "0001-com-ubuntu-server-jammy", SKU: "22_04-lts-gen2", Version: "latest"},
	"Ubuntu2004":        {Publisher: "Canonical", Offer: "0001-com-ubuntu-server-focal", SKU: "20_04-lts-gen2", Version: "latest"},
	"WindowsServer2022": {Publisher: "MicrosoftWindowsServer", Offer: "WindowsServer", SKU: "2022-datacenter-g2", Version: "latest"},
	"WindowsServer2019": {Publisher: "MicrosoftWindowsServer", Offer: "WindowsServer", SKU: "2019-datacenter-g2", Version: "latest"},
	"RHEL8":             {Publisher: "RedHat", Offer: "RHEL", SKU: "8-lvm-gen2", Version: "latest"},
	"Debian11":          {Publisher: "Debian", Offer: "debian-11", SKU: "11-gen2", Version: "latest"},
}

// OSImageNames lists the image menu in presentation order.
var OSImageNames = []string{
	"Ubuntu2204",
	"Ubuntu2004",
	"WindowsServer2022",
	"WindowsServer2019",
	"RHEL8",
	"Debian11",
}

// OSDiskTypes are the offered managed disk types for the OS disk.
var OSDiskTypes = []string{"Standard_LRS", "StandardSSD_LRS", "Premium_LRS"}

// StorageSKUs are the offered storage account redundancy SKUs.
var StorageSKUs = []string{
	"Standard_LRS",
	"Standard_GRS",
	"Standard_RAGRS",
	"Standard_ZRS",
	"Premium_LRS",
	"Premium_ZRS",
}

// StorageKinds are the offered storage account kinds.
var StorageKinds = []string{
	"StorageV2",
	"Storage",
	"BlobStorage",
	"BlockBlobStorage",
	"FileStorage",
}

// AccessTiers are the offered blob access tiers.
var AccessTiers = []string{"Hot", "Cool"}

// AKSVMSizes are the offered node pool VM sizes.
var AKSVMSizes = []string{
	"Standard_D2s_v3",
	"Standard_D4s_v3",
	"Standard_D8s_v3",
	"Standard_D2s_v4",
	"Standard_D4s_v4",
	"Standard_E2s_v3",
	"Standard_E4s_v3",
	"Standard_B2s",
	"Standard_B4ms",
	"Standard_F4s_v2",
}

// KubernetesVersions are the offered AKS control plane versions.
var KubernetesVersions = []string{"1.28", "1.27", "1.26"}

// NetworkPlugins are the offered AKS network plugins.
var NetworkPlugins = []string{"azure", "kubenet"}

// PostgresSKUs are the offered PostgreSQL flexible server SKUs.
var PostgresSKUs = []string{
	"Standard_B1ms",
	"Standard_B2s",
	"Standard_D2s_v3",
	"Standard_D4s_v3",
	"Standard_E2s_v3",
}

// PostgresVersions are the offered PostgreSQL major versions.
var PostgresVersions = []string{"16", "15", "14", "13", "12"}

// MySQLSKUs are the offered MySQL flexible server SKUs.
var MySQLSKUs = []string{
	"Standard_B1ms",
	"Standard_B2s",
	"Standard_D2ds_v4",
	"Standard_D4ds_v4",
	"Standard_E2ds_v4",
}

// MySQLVersions are the offered MySQL versions.
var MySQLVersions = []string{"8.0.21", "5.7"}

// SQLTiers are the offered Azure SQL Database pricing tiers.
var SQLTiers = []string{
	"Basic",
	"Standard",
	"Premium",
	"GeneralPurpose",
	"BusinessCritical",
}

// CosmosAPITypes are the offered Cosmos DB API kinds.
var CosmosAPITypes = []string{"SQL", "MongoDB", "Cassandra", "Table", "Gremlin"}

// CosmosConsistencyLevels are the offered default consistency levels.
var CosmosConsistencyLevels = []string{
	"Eventual",
	"ConsistentPrefix",
	"Session",
	"BoundedStaleness",
	"Strong",
}

// Regions lists every accepted Azure region name.
var Regions = []string{
	"eastus",
	"eastus2",
	"westus",
	"westus2",
	"westus3",
	"centralus",
	"northcentralus",
	"southcentralus",
	"westcentralus",
	"canadacentral",
	"canadaeast",
	"brazilsouth",
	"northeurope",
	"westeurope",
	"uksouth",
	"ukwest",
	"francecentral",
	"germanywestcentral",
	"norwayeast",
	"switzerlandnorth",
	"uaenorth",
	"southafricanorth",
	"australiaeast",
	"australiasoutheast",
	"centralindia",
	"southindia",
	"japaneast",
	"japanwest",
	"koreacentral",
	"southeastasia",
	"eastasia",
}

// PopularRegions is the short menu offered during region selection. A numeric
// answer indexes into this list; any name from Regions is also accepted.
var PopularRegions = []string{
	"eastus",
	"westus2",
	"westeurope",
	"northeurope",
	"southeastasia",
	"australiaeast",
}

// ValidRegion reports whether name is an accepted Azure region.
func ValidRegion(name string) bool {
	for _, r := range Regions {
		if r == name {
			return true
		}
	}
	return false
}
