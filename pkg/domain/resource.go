package domain

import (
	"fmt"
	"strings"
)

// ResourceType identifies one of the provisionable Azure resource kinds.
// The set is closed: flows, pricing tables and generators are resolved per
// variant at startup, never via free-form strings.
type ResourceType string

const (
	ResourceVM         ResourceType = "vm"
	ResourceVNet       ResourceType = "vnet"
	ResourceStorage    ResourceType = "storage"
	ResourceAKS        ResourceType = "aks"
	ResourcePostgreSQL ResourceType = "postgresql"
	ResourceMySQL      ResourceType = "mysql"
	ResourceSQLDB      ResourceType = "sqldb"
	ResourceCosmosDB   ResourceType = "cosmosdb"
)

// ResourceTypes returns all supported resource types in canonical menu order.
func ResourceTypes() []ResourceType {
	return []ResourceType{
		ResourceVM,
		ResourceVNet,
		ResourceStorage,
		ResourceAKS,
		ResourcePostgreSQL,
		ResourceMySQL,
		ResourceSQLDB,
		ResourceCosmosDB,
	}
}

// Valid reports whether rt is one of the supported resource types.
func (rt ResourceType) Valid() bool {
	switch rt {
	case ResourceVM, ResourceVNet, ResourceStorage, ResourceAKS,
		ResourcePostgreSQL, ResourceMySQL, ResourceSQLDB, ResourceCosmosDB:
		return true
	}
	return false
}

// Label returns the human-facing display name used in menus and summaries.
func (rt ResourceType) Label() string {
	switch rt {
	case ResourceVM:
		return "Virtual Machine"
	case ResourceVNet:
		return "Virtual Network"
	case ResourceStorage:
		return "Storage Account"
	case ResourceAKS:
		return "AKS Cluster"
	case ResourcePostgreSQL:
		return "PostgreSQL Database"
	case ResourceMySQL:
		return "MySQL Database"
	case ResourceSQLDB:
		return "Azure SQL Database"
	case ResourceCosmosDB:
		return "Cosmos DB"
	}
	return string(rt)
}

// ProviderType returns the ARM resource type the variant provisions.
func (rt ResourceType) ProviderType() string {
	switch rt {
	case ResourceVM:
		return "Microsoft.Compute/virtualMachines"
	case ResourceVNet:
		return "Microsoft.Network/virtualNetworks"
	case ResourceStorage:
		return "Microsoft.Storage/storageAccounts"
	case ResourceAKS:
		return "Microsoft.ContainerService/managedClusters"
	case ResourcePostgreSQL:
		return "Microsoft.DBforPostgreSQL/flexibleServers"
	case ResourceMySQL:
		return "Microsoft.DBforMySQL/flexibleServers"
	case ResourceSQLDB:
		return "Microsoft.Sql/servers/databases"
	case ResourceCosmosDB:
		return "Microsoft.DocumentDB/databaseAccounts"
	}
	return ""
}

// ParseResourceType resolves an exact identifier or display label,
// case-insensitively. Fuzzy user input is the interpreter's job; this is the
// strict form used by adapters and configuration.
func ParseResourceType(s string) (ResourceType, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, rt := range ResourceTypes() {
		if needle == string(rt) || needle == strings.ToLower(rt.Label()) {
			return rt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResourceType, s)
}
