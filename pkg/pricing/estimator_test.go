package pricing

import (
	"math"
	"strings"
	"testing"

	"github.com/provisio/provisio/pkg/domain"
)

func sumBreakdown(e *domain.CostEstimate) float64 {
	var sum float64
	for _, c := range e.Breakdown {
		sum += c.MonthlyCost
	}
	return math.Round(sum*100) / 100
}

func TestEstimateKnownValues(t *testing.T) {
	est := NewEstimator()

	tests := []struct {
		name string
		got  *domain.CostEstimate
		want float64
	}{
		{"vm b2s full", est.EstimateVM("Standard_B2s", "Standard_LRS", true), 35.22},
		{"vm no public ip", est.EstimateVM("Standard_B2s", "Standard_LRS", false), 31.57},
		{"vm unknown size falls back", est.EstimateVM("Standard_X99", "Standard_LRS", false), 51.20},
		{"storage default volume", est.EstimateStorage("Standard_LRS", 100), 1.90},
		{"vnet is free", est.EstimateVNet(), 0},
		{"aks three nodes", est.EstimateAKS(3, "Standard_D2s_v3", false), 243.85},
		{"postgres baseline", est.EstimatePostgres("Standard_B1ms", 32), 19.13},
		{"mysql baseline", est.EstimateMySQL("Standard_B1ms", 32), 16.09},
		{"sql basic tier", est.EstimateSQLDatabase("Basic"), 4.99},
		{"cosmos paid", est.EstimateCosmos(false, 400, 5), 24.61},
		{"cosmos free tier", est.EstimateCosmos(true, 400, 5), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.MonthlyTotal != tt.want {
				t.Errorf("total = %.2f, want %.2f", tt.got.MonthlyTotal, tt.want)
			}
		})
	}
}

func TestBreakdownSumsToTotal(t *testing.T) {
	est := NewEstimator()

	configs := map[domain.ResourceType][]domain.Config{
		domain.ResourceVM: {
			{},
			{"size": "Standard_F4s_v2", "os_disk_type": "Premium_LRS", "create_public_ip": true},
			{"size": "mystery"},
		},
		domain.ResourceVNet:    {{}},
		domain.ResourceStorage: {{}, {"sku": "Premium_ZRS"}, {"sku": "odd", "estimated_storage_gb": 999}},
		domain.ResourceAKS:     {{}, {"node_count": 100, "node_vm_size": "Standard_E4s_v3"}},
		domain.ResourcePostgreSQL: {
			{},
			{"sku": "Standard_D4s_v3", "storage_gb": 16384},
		},
		domain.ResourceMySQL:    {{}, {"sku": "Standard_E2ds_v4", "storage_gb": 20}},
		domain.ResourceSQLDB:    {{}, {"tier": "BusinessCritical"}},
		domain.ResourceCosmosDB: {{}, {"enable_free_tier": true}},
	}

	for rt, cfgs := range configs {
		for i, cfg := range cfgs {
			got, err := est.Estimate(rt, cfg)
			if err != nil {
				t.Fatalf("%s[%d]: %v", rt, i, err)
			}
			if sum := sumBreakdown(got); sum != got.MonthlyTotal {
				t.Errorf("%s[%d]: breakdown sums to %.2f, total says %.2f", rt, i, sum, got.MonthlyTotal)
			}
			if got.Currency != "USD" {
				t.Errorf("%s[%d]: currency %q", rt, i, got.Currency)
			}
			if got.Disclaimer == "" {
				t.Errorf("%s[%d]: missing disclaimer", rt, i)
			}
		}
	}
}

func TestEstimateUnknownType(t *testing.T) {
	est := NewEstimator()
	got, err := est.Estimate(domain.ResourceType("mainframe"), domain.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got.MonthlyTotal != 0 || len(got.Breakdown) != 0 {
		t.Errorf("unknown type should cost nothing: %+v", got)
	}
	if !strings.Contains(got.Disclaimer, "not available") {
		t.Errorf("disclaimer = %q", got.Disclaimer)
	}
}

func TestEstimateVMUsesDefaultDisclaimer(t *testing.T) {
	est := NewEstimator()
	got := est.EstimateVM("Standard_B1s", "Standard_LRS", false)
	if got.Disclaimer != domain.DefaultDisclaimer {
		t.Errorf("disclaimer = %q", got.Disclaimer)
	}
	if got.ResourceType != "Virtual Machine" {
		t.Errorf("resource label = %q", got.ResourceType)
	}
}

func TestEstimatorWithCustomPrices(t *testing.T) {
	prices := DefaultPrices()
	prices.SQLTiers["Basic"] = 10.00
	est := NewEstimatorWithPrices(prices)
	if got := est.EstimateSQLDatabase("Basic"); got.MonthlyTotal != 10.00 {
		t.Errorf("custom price ignored: %.2f", got.MonthlyTotal)
	}
}

func TestFormatter(t *testing.T) {
	est := NewEstimator()
	f := NewFormatter()

	out := f.Format(est.EstimateVM("Standard_B2s", "Standard_LRS", true))
	for _, want := range []string{"Azure Cost Estimate", "Resource: Virtual Machine", "VM Compute", "Public IP", "Total", "35.22"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted output missing %q:\n%s", want, out)
		}
	}

	compact := f.FormatCompact(est.EstimateVNet())
	if !strings.Contains(compact, "Virtual Network") || !strings.Contains(compact, "0.00") {
		t.Errorf("compact = %q", compact)
	}
}
