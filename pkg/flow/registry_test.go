package flow

import (
	"testing"

	"github.com/provisio/provisio/pkg/domain"
)

func TestRegistryValidate(t *testing.T) {
	if err := NewRegistry().Validate(); err != nil {
		t.Fatalf("compiled-in flows failed validation: %v", err)
	}
}

func TestRegistryStepCounts(t *testing.T) {
	r := NewRegistry()
	want := map[domain.ResourceType]int{
		domain.ResourceVM:         6,
		domain.ResourceVNet:       4,
		domain.ResourceStorage:    4,
		domain.ResourceAKS:        6,
		domain.ResourcePostgreSQL: 5,
		domain.ResourceMySQL:      5,
		domain.ResourceSQLDB:      4,
		domain.ResourceCosmosDB:   4,
	}
	for rt, n := range want {
		if got := len(r.Steps(rt)); got != n {
			t.Errorf("%s: %d steps, want %d", rt, got, n)
		}
	}
}

func TestRegistryValidateCatchesBadDefault(t *testing.T) {
	r := NewRegistry()
	f := r.flows[domain.ResourceVM]
	steps := make([]Step, len(f.Steps))
	copy(steps, f.Steps)
	steps[1].Default = "Standard_Nope"
	f.Steps = steps
	r.flows[domain.ResourceVM] = f

	if err := r.Validate(); err == nil {
		t.Fatal("default outside the menu passed validation")
	}
}

func TestBuildConfigVM(t *testing.T) {
	r := NewRegistry()
	cfg := r.BuildConfig(domain.ResourceVM, domain.Config{
		"name":             "web-01",
		"size":             "Standard_D2s_v3",
		"os_image":         "Ubuntu2204",
		"os_disk_type":     "Premium_LRS",
		"admin_username":   "opsadmin",
		"create_public_ip": false,
	})

	if cfg["name"] != "web-01" || cfg["size"] != "Standard_D2s_v3" {
		t.Fatalf("answers not carried over: %v", cfg)
	}
	if cfg["create_public_ip"] != false {
		t.Errorf("create_public_ip = %v", cfg["create_public_ip"])
	}
	if cfg["generate_ssh_key"] != true {
		t.Error("generate_ssh_key not set")
	}
}

func TestBuildConfigFillsDefaults(t *testing.T) {
	r := NewRegistry()
	cfg := r.BuildConfig(domain.ResourceVM, domain.Config{"name": "bare"})
	if cfg["size"] != "Standard_B2s" || cfg["os_image"] != "Ubuntu2204" || cfg["admin_username"] != "azureuser" {
		t.Errorf("defaults not filled: %v", cfg)
	}
	if cfg["create_public_ip"] != true {
		t.Errorf("create_public_ip default = %v", cfg["create_public_ip"])
	}
}

func TestBuildConfigVNetSubnets(t *testing.T) {
	r := NewRegistry()
	cfg := r.BuildConfig(domain.ResourceVNet, domain.Config{
		"name":          "corpnet",
		"address_space": "10.1.0.0/16",
		"subnet_name":   "apps",
		"subnet_prefix": "10.1.1.0/24",
	})

	subnets, ok := cfg["subnets"].([]any)
	if !ok || len(subnets) != 1 {
		t.Fatalf("subnets shape wrong: %#v", cfg["subnets"])
	}
	sn := subnets[0].(map[string]any)
	if sn["name"] != "apps" || sn["address_prefix"] != "10.1.1.0/24" {
		t.Errorf("subnet = %v", sn)
	}
}

func TestBuildConfigAKSDNSFallback(t *testing.T) {
	r := NewRegistry()
	cfg := r.BuildConfig(domain.ResourceAKS, domain.Config{"name": "prod-aks", "node_count": 5})
	if cfg["dns_prefix"] != "prod-aks" {
		t.Errorf("dns_prefix = %v, want name fallback", cfg["dns_prefix"])
	}
	if cfg["node_count"] != 5 {
		t.Errorf("node_count = %v", cfg["node_count"])
	}
	if cfg["enable_rbac"] != true {
		t.Error("enable_rbac not set")
	}
}

func TestBuildConfigCosmos(t *testing.T) {
	r := NewRegistry()
	cfg := r.BuildConfig(domain.ResourceCosmosDB, domain.Config{"name": "acct", "enable_free_tier": true})
	if cfg["api_type"] != "SQL" || cfg["consistency_level"] != "Session" {
		t.Errorf("defaults not filled: %v", cfg)
	}
	if cfg["enable_free_tier"] != true {
		t.Error("enable_free_tier lost")
	}
}
