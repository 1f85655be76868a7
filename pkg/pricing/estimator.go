package pricing

import (
	"fmt"
	"math"

	"github.com/provisio/provisio/pkg/domain"
)

// Estimator produces cost estimates from a Prices table. Estimates are pure
// functions of (resource type, configuration); no network calls. Every
// component is rounded to the cent as it is appended and the total is the
// exact sum of the appended components, so the breakdown always adds up to
// the displayed total.
type Estimator struct {
	prices *Prices
}

// NewEstimator creates an estimator with the built-in default prices.
func NewEstimator() *Estimator {
	return &Estimator{prices: DefaultPrices()}
}

// NewEstimatorWithPrices creates an estimator with specific pricing.
func NewEstimatorWithPrices(prices *Prices) *Estimator {
	return &Estimator{prices: prices}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// estimate accumulates rounded components.
type estimate struct {
	breakdown []domain.CostComponent
	total     float64
}

func (e *estimate) add(component, details string, monthly float64) {
	monthly = roundCents(monthly)
	e.breakdown = append(e.breakdown, domain.CostComponent{
		Component:   component,
		Details:     details,
		MonthlyCost: monthly,
	})
	e.total += monthly
}

func (e *estimate) done(resourceLabel, disclaimer string) *domain.CostEstimate {
	if disclaimer == "" {
		disclaimer = domain.DefaultDisclaimer
	}
	return &domain.CostEstimate{
		ResourceType: resourceLabel,
		MonthlyTotal: roundCents(e.total),
		Currency:     "USD",
		Breakdown:    e.breakdown,
		Disclaimer:   disclaimer,
	}
}

// EstimateVM estimates a virtual machine: compute, OS disk, optional public IP.
func (est *Estimator) EstimateVM(size, osDiskType string, publicIP bool) *domain.CostEstimate {
	var e estimate
	e.add("VM Compute", size, lookup(est.prices.VMSizes, size, est.prices.UnknownVM))
	e.add("OS Disk", fmt.Sprintf("%d GB (%s)", osDiskSizeGB, osDiskType),
		lookup(est.prices.DiskTypes, osDiskType, est.prices.UnknownDisk)*osDiskSizeGB)
	if publicIP {
		e.add("Public IP", "Standard SKU", est.prices.PublicIP)
	}
	return e.done("Virtual Machine", "")
}

// EstimateStorage estimates a storage account for an assumed data volume.
func (est *Estimator) EstimateStorage(sku string, storageGB int) *domain.CostEstimate {
	var e estimate
	e.add("Blob Storage", fmt.Sprintf("%d GB (%s)", storageGB, sku),
		lookup(est.prices.StorageSKUs, sku, est.prices.UnknownStorage)*float64(storageGB))
	e.add("Operations & Bandwidth", "Usage-based (estimate)", float64(storageGB)*operationsPerGB)
	return e.done("Storage Account", "Storage costs vary based on actual usage, operations, and data transfer.")
}

// EstimateVNet estimates a virtual network. VNets are free; the zero-cost
// components surface where charges would come from.
func (est *Estimator) EstimateVNet() *domain.CostEstimate {
	var e estimate
	e.add("Virtual Network", "No charge for VNet itself", 0)
	e.add("VNet Peering (if used)", "~$0.01/GB data transfer", 0)
	return e.done("Virtual Network", "VNets are free. Costs apply for peering, VPN gateways, and data transfer.")
}

// EstimateAKS estimates a managed cluster: management tier, node pool,
// load balancer and node OS disks.
func (est *Estimator) EstimateAKS(nodeCount int, nodeVMSize string, standardTier bool) *domain.CostEstimate {
	var e estimate
	if standardTier {
		e.add("AKS Management (Standard)", "Uptime SLA included", est.prices.AKSStandardTier)
	} else {
		e.add("AKS Management (Free)", "No uptime SLA", 0)
	}
	e.add("Node Pool VMs", fmt.Sprintf("%dx %s", nodeCount, nodeVMSize),
		lookup(est.prices.VMSizes, nodeVMSize, est.prices.UnknownNodeVM)*float64(nodeCount))
	e.add("Load Balancer", "Standard SKU (estimated)", est.prices.LoadBalancer)
	e.add("Node OS Disks", fmt.Sprintf("%dx %dGB Standard", nodeCount, nodeOSDiskGB),
		est.prices.UnknownDisk*nodeOSDiskGB*float64(nodeCount))
	return e.done("AKS Cluster", "AKS costs vary based on node scaling, storage, and network usage.")
}

// EstimatePostgres estimates a PostgreSQL flexible server.
func (est *Estimator) EstimatePostgres(sku string, storageGB int) *domain.CostEstimate {
	var e estimate
	e.add("Compute", sku, lookup(est.prices.PostgresSKUs, sku, est.prices.UnknownDB))
	e.add("Storage", fmt.Sprintf("%d GB", storageGB), est.prices.DBStoragePerGB*float64(storageGB))
	e.add("Backup Storage", "Estimated", backupPerGB*float64(storageGB))
	return e.done("PostgreSQL Database", "Costs may vary based on actual compute usage and data transfer.")
}

// EstimateMySQL estimates a MySQL flexible server.
func (est *Estimator) EstimateMySQL(sku string, storageGB int) *domain.CostEstimate {
	var e estimate
	e.add("Compute", sku, lookup(est.prices.MySQLSKUs, sku, est.prices.UnknownDB))
	e.add("Storage", fmt.Sprintf("%d GB", storageGB), est.prices.DBStoragePerGB*float64(storageGB))
	return e.done("MySQL Database", "Costs may vary based on actual compute usage and data transfer.")
}

// EstimateSQLDatabase estimates an Azure SQL Database tier.
func (est *Estimator) EstimateSQLDatabase(tier string) *domain.CostEstimate {
	var e estimate
	e.add("SQL Database", tier+" tier", lookup(est.prices.SQLTiers, tier, est.prices.UnknownSQLTier))
	return e.done("Azure SQL Database", "Costs may vary based on DTU/vCore usage and data storage.")
}

// EstimateCosmos estimates a Cosmos DB account at an assumed throughput and
// storage volume. The free tier absorbs the first 400 RU/s and 5 GB.
func (est *Estimator) EstimateCosmos(freeTier bool, rus, storageGB int) *domain.CostEstimate {
	var e estimate
	ruCost := float64(rus) * est.prices.CosmosRUPer100 / 100 * HoursPerMonth
	storageCost := float64(storageGB) * est.prices.CosmosStoragePerGB
	if freeTier {
		e.add("Free Tier Discount", "First 400 RU/s + 5 GB free", 0)
		ruCost = math.Max(0, float64(rus-freeTierRUs)) * est.prices.CosmosRUPer100 / 100 * HoursPerMonth
		storageCost = math.Max(0, float64(storageGB-freeTierStorageGB)) * est.prices.CosmosStoragePerGB
	}
	e.add("Request Units", fmt.Sprintf("%d RU/s", rus), ruCost)
	e.add("Storage", fmt.Sprintf("%d GB", storageGB), storageCost)
	return e.done("Cosmos DB", "Costs scale with request units and storage. Free tier limited to one account per subscription.")
}

// Estimate dispatches on the resource type, reading what the configuration
// provides and falling back to the documented baselines for the rest. It
// never fails: unknown types get a zero estimate with an explanatory
// disclaimer.
func (est *Estimator) Estimate(resource domain.ResourceType, cfg domain.Config) (*domain.CostEstimate, error) {
	switch resource {
	case domain.ResourceVM:
		return est.EstimateVM(
			cfg.String("size", "Standard_B2s"),
			cfg.String("os_disk_type", "Standard_LRS"),
			cfg.Bool("create_public_ip", true),
		), nil
	case domain.ResourceStorage:
		return est.EstimateStorage(
			cfg.String("sku", "Standard_LRS"),
			cfg.Int("estimated_storage_gb", defaultStorageGB),
		), nil
	case domain.ResourceVNet:
		return est.EstimateVNet(), nil
	case domain.ResourceAKS:
		return est.EstimateAKS(
			cfg.Int("node_count", 3),
			cfg.String("node_vm_size", "Standard_D2s_v3"),
			false,
		), nil
	case domain.ResourcePostgreSQL:
		return est.EstimatePostgres(
			cfg.String("sku", "Standard_B1ms"),
			cfg.Int("storage_gb", 32),
		), nil
	case domain.ResourceMySQL:
		return est.EstimateMySQL(
			cfg.String("sku", "Standard_B1ms"),
			cfg.Int("storage_gb", 32),
		), nil
	case domain.ResourceSQLDB:
		return est.EstimateSQLDatabase(cfg.String("tier", "Basic")), nil
	case domain.ResourceCosmosDB:
		return est.EstimateCosmos(
			cfg.Bool("enable_free_tier", false),
			defaultCosmosRUs,
			defaultCosmosGB,
		), nil
	default:
		return &domain.CostEstimate{
			ResourceType: string(resource),
			MonthlyTotal: 0,
			Currency:     "USD",
			Breakdown:    nil,
			Disclaimer:   "Cost estimation not available for this resource type.",
		}, nil
	}
}
