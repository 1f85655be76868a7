// Package pricing provides monthly cost estimation for Azure resources.
package pricing

// Pricing baselines used when a configuration does not pin them down.
const (
	// HoursPerMonth is the Azure billing convention.
	HoursPerMonth = 730

	osDiskSizeGB       = 30
	nodeOSDiskGB       = 128
	defaultStorageGB   = 100
	defaultCosmosRUs   = 400
	defaultCosmosGB    = 5
	operationsPerGB    = 0.001
	backupPerGB        = 0.095
	freeTierRUs        = 400
	freeTierStorageGB  = 5
)

// Prices contains the USD rates behind the estimates. Values approximate the
// Azure retail prices; swap in live rates with NewEstimatorWithPrices.
type Prices struct {
	// VMSizes maps VM size to monthly price.
	VMSizes map[string]float64

	// StorageSKUs maps storage account SKU to price per GB-month.
	StorageSKUs map[string]float64

	// DiskTypes maps managed disk type to price per GB-month.
	DiskTypes map[string]float64

	// PublicIP is the monthly price of a Standard SKU public IP.
	PublicIP float64

	// AKSStandardTier is the monthly management fee with an uptime SLA.
	AKSStandardTier float64

	// LoadBalancer is the monthly base price of a Standard load balancer.
	LoadBalancer float64

	// PostgresSKUs and MySQLSKUs map flexible server SKUs to monthly price.
	PostgresSKUs map[string]float64
	MySQLSKUs    map[string]float64

	// SQLTiers maps Azure SQL Database tiers to monthly price.
	SQLTiers map[string]float64

	// CosmosRUPer100 is the hourly price per 100 RU/s.
	CosmosRUPer100 float64

	// CosmosStoragePerGB is the Cosmos transactional storage GB-month price.
	CosmosStoragePerGB float64

	// DBStoragePerGB is the flexible server storage GB-month price.
	DBStoragePerGB float64

	// Fallbacks for SKUs missing from the tables above.
	UnknownVM      float64
	UnknownNodeVM  float64
	UnknownStorage float64
	UnknownDisk    float64
	UnknownDB      float64
	UnknownSQLTier float64
}

// DefaultPrices returns the built-in approximate retail prices.
func DefaultPrices() *Prices {
	return &Prices{
		VMSizes: map[string]float64{
			"Standard_B1s":    7.59,
			"Standard_B2s":    30.37,
			"Standard_B2ms":   60.74,
			"Standard_D2s_v3": 70.08,
			"Standard_D4s_v3": 140.16,
			"Standard_D8s_v3": 280.32,
			"Standard_E2s_v3": 91.98,
			"Standard_E4s_v3": 183.96,
			"Standard_F2s_v2": 62.05,
			"Standard_F4s_v2": 123.37,
		},
		StorageSKUs: map[string]float64{
			"Standard_LRS":   0.018,
			"Standard_GRS":   0.036,
			"Standard_RAGRS": 0.043,
			"Standard_ZRS":   0.023,
			"Premium_LRS":    0.15,
			"Premium_ZRS":    0.188,
		},
		DiskTypes: map[string]float64{
			"Standard_LRS":    0.04,
			"StandardSSD_LRS": 0.075,
			"Premium_LRS":     0.132,
		},
		PublicIP:        3.65,
		AKSStandardTier: 73.0,
		LoadBalancer:    18.25,
		PostgresSKUs: map[string]float64{
			"Standard_B1ms":   12.41,
			"Standard_B2s":    24.82,
			"Standard_D2s_v3": 98.55,
			"Standard_D4s_v3": 197.10,
			"Standard_E2s_v3": 130.34,
		},
		MySQLSKUs: map[string]float64{
			"Standard_B1ms":    12.41,
			"Standard_B2s":     24.82,
			"Standard_D2ds_v4": 98.55,
			"Standard_D4ds_v4": 197.10,
			"Standard_E2ds_v4": 130.34,
		},
		SQLTiers: map[string]float64{
			"Basic":            4.99,
			"Standard":         14.72,
			"Premium":          465.00,
			"GeneralPurpose":   330.91,
			"BusinessCritical": 661.82,
		},
		CosmosRUPer100:     0.008,
		CosmosStoragePerGB: 0.25,
		DBStoragePerGB:     0.115,
		UnknownVM:          50.0,
		UnknownNodeVM:      70.0,
		UnknownStorage:     0.02,
		UnknownDisk:        0.04,
		UnknownDB:          12.41,
		UnknownSQLTier:     4.99,
	}
}

func lookup(table map[string]float64, key string, fallback float64) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}
