// Package simulator provides a Provisioner that fabricates realistic
// creation results without ever touching Azure. It is the default execution
// backend: IDs follow the ARM format, detail maps mirror what the real
// management APIs return, and secrets (passwords, SSH keys) are genuinely
// random so downstream handling of sensitive output stays honest.
package simulator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/provisio/provisio/pkg/domain"
)

// Provisioner implements ports.Provisioner by simulating resource creation.
type Provisioner struct {
	latency  time.Duration
	failures map[domain.ResourceType]error
}

// Option configures the simulator.
type Option func(*Provisioner)

// WithLatency makes Create sleep before answering, like a real deployment.
func WithLatency(d time.Duration) Option {
	return func(p *Provisioner) {
		p.latency = d
	}
}

// WithFailure makes Create report a provider-side failure for one resource
// type. The failure is a regular outcome (Success=false), not an error.
func WithFailure(rt domain.ResourceType, err error) Option {
	return func(p *Provisioner) {
		p.failures[rt] = err
	}
}

// New creates a simulator provisioner.
func New(opts ...Option) *Provisioner {
	p := &Provisioner{
		failures: make(map[domain.ResourceType]error),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Create fabricates a creation result for the snapshot. Infrastructure
// errors are limited to context cancellation; everything else is reported
// through the CreatedResource itself.
func (p *Provisioner) Create(ctx context.Context, snap domain.Snapshot) (*domain.CreatedResource, error) {
	if p.latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.latency):
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := p.failures[snap.Resource]; err != nil {
		return &domain.CreatedResource{
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	switch snap.Resource {
	case domain.ResourceVM:
		return p.createVM(snap)
	case domain.ResourceVNet:
		return p.createVNet(snap)
	case domain.ResourceStorage:
		return p.createStorage(snap)
	case domain.ResourceAKS:
		return p.createAKS(snap)
	case domain.ResourcePostgreSQL:
		return p.createPostgreSQL(snap)
	case domain.ResourceMySQL:
		return p.createMySQL(snap)
	case domain.ResourceSQLDB:
		return p.createSQLDatabase(snap)
	case domain.ResourceCosmosDB:
		return p.createCosmosDB(snap)
	}
	return nil, fmt.Errorf("create resource: %w: %q", domain.ErrUnknownResourceType, snap.Resource)
}

// armID builds the fabricated ARM resource ID.
func armID(snap domain.Snapshot, name string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/%s/%s",
		snap.SubscriptionID, snap.ResourceGroup, snap.Resource.ProviderType(), name)
}

func (p *Provisioner) createVM(snap domain.Snapshot) (*domain.CreatedResource, error) {
	cfg := snap.Config
	name := cfg.String("name", "myvm")
	osImage := cfg.String("os_image", "Ubuntu2204")
	isLinux := !strings.Contains(osImage, "Windows")

	details := map[string]string{
		"vm_size":        cfg.String("size", "Standard_B2s"),
		"os_image":       osImage,
		"admin_username": cfg.String("admin_username", "azureuser"),
		// The composed deployment creates these alongside the machine.
		"virtual_network":   name + "-vnet",
		"network_interface": name + "-nic",
	}
	if cfg.Bool("create_public_ip", true) {
		details["public_ip"] = name + "-pip"
	}

	if isLinux && cfg.Bool("generate_ssh_key", true) {
		key, err := generatePrivateKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate ssh key: %w", err)
		}
		details["private_key"] = key
		details["note"] = "Save the private key securely. It won't be shown again."
	}
	if !isLinux {
		details["admin_password"] = generatePassword()
	}

	return &domain.CreatedResource{
		Success:      true,
		ResourceID:   armID(snap, name),
		ResourceName: name,
		ResourceType: snap.Resource.ProviderType(),
		Region:       snap.Region,
		Details:      details,
	}, nil
}

func (p *Provisioner) createVNet(snap domain.Snapshot) (*domain.CreatedResource, error) {
	cfg := snap.Config
	name := cfg.String("name", "myvnet")

	subnets, _ := cfg["subnets"].([]any)
	described := make([]string, 0, len(subnets))
	for _, raw := range subnets {
		sub, _ := raw.(map[string]any)
		sc := domain.Config(sub)
		described = append(described, fmt.Sprintf("%s (%s)",
			sc.String("name", "default"), sc.String("address_prefix", "10.0.0.0/24")))
	}
	if len(described) == 0 {
		described = append(described, "default (10.0.0.0/24)")
	}

	return &domain.CreatedResource{
		Success:      true,
		ResourceID:   armID(snap, name),
		ResourceName: name,
		ResourceType: snap.Resource.ProviderType(),
		Region:       snap.Region,
		Details: map[string]string{
			"address_space": cfg.String("address_space", "10.0.0.0/16"),
			"subnets":       strings.Join(described, ", "),
		},
	}, nil
}

func (p *Provisioner) createStorage(snap domain.Snapshot) (*domain.CreatedResource, error) {
	cfg := snap.Config
	name := cfg.String("name", "mystorageaccount")
	accountKey := generateAccountKey()

	return &domain.CreatedResource{
		Success:      true,
		ResourceID:   armID(snap, name),
		ResourceName: name,
		ResourceType: snap.Resource.ProviderType(),
		Region:       snap.Region,
		Details: map[string]string{
			"sku":            cfg.String("sku", "Standard_LRS"),
			"kind":           cfg.String("kind", "StorageV2"),
			"access_tier":    cfg.String("access_tier", "Hot"),
			"blob_endpoint":  fmt.Sprintf("https://%s.blob.core.windows.net/", name),
			"file_endpoint":  fmt.Sprintf("https://%s.file.core.windows.net/", name),
			"queue_endpoint": fmt.Sprintf("https://%s.queue.core.windows.net/", name),
			"table_endpoint": fmt.Sprintf("https://%s.table.core.windows.net/", name),
			"connection_string": fmt.Sprintf(
				"DefaultEndpointsProtocol=https;AccountName=%s;AccountKey=%s;EndpointSuffix=core.windows.net",
				name, accountKey),
			"note": "Store the connection string securely.",
		},
	}, nil
}

func (p *Provisioner) createAKS(snap domain.Snapshot) (*domain.CreatedResource, error) {
	cfg := snap.Config
	name := cfg.String("name", "myakscluster")
	dnsPrefix := cfg.String("dns_prefix", name)

	return &domain.CreatedResource{
		Success:      true,
		ResourceID:   armID(snap, name),
		ResourceName: name,
		ResourceType: snap.Resource.ProviderType(),
		Region:       snap.Region,
		Details: map[string]string{
			"kubernetes_version": cfg.String("kubernetes_version", "1.28"),
			"dns_prefix":         dnsPrefix,
			"fqdn":               fmt.Sprintf("%s.hcp.%s.azmk8s.io", dnsPrefix, snap.Region),
			"node_count":         strconv.Itoa(cfg.Int("node_count", 3)),
			"node_vm_size":       cfg.String("node_vm_size", "Standard_D2s_v3"),
			"network_plugin":     cfg.String("network_plugin", "azure"),
			"enable_rbac":        strconv.FormatBool(cfg.Bool("enable_rbac", true)),
			"provisioning_state": "Succeeded",
			"kubeconfig_note":    "Use 'az aks get-credentials' to get kubeconfig",
		},
	}, nil
}

func (p *Provisioner) createPostgreSQL(snap domain.Snapshot) (*domain.CreatedResource, error) {
	cfg := snap.Config
	name := cfg.String("name", "mypgserver")
	adminUser := cfg.String("admin_username", "pgadmin")
	password := generatePassword()
	fqdn := name + ".postgres.database.azure.com"

	return &domain.CreatedResource{
		Success:      true,
		ResourceID:   armID(snap, name),
		ResourceName: name,
		ResourceType: snap.Resource.ProviderType(),
		Region:       snap.Region,
		Details: map[string]string{
			"fqdn":           fqdn,
			"version":        cfg.String("version", "15"),
			"sku":            cfg.String("sku", "Standard_B1ms"),
			"storage_gb":     strconv.Itoa(cfg.Int("storage_gb", 32)),
			"admin_username": adminUser,
			"admin_password": password,
			"connection_string": fmt.Sprintf(
				"postgresql://%s:%s@%s:5432/postgres?sslmode=require", adminUser, password, fqdn),
			"note": "⚠️ Save credentials securely. Password won't be shown again.",
		},
	}, nil
}

func (p *Provisioner) createMySQL(snap domain.Snapshot) (*domain.CreatedResource, error) {
	cfg := snap.Config
	name := cfg.String("name", "mymysqlserver")
	adminUser := cfg.String("admin_username", "mysqladmin")
	password := generatePassword()
	fqdn := name + ".mysql.database.azure.com"

	return &domain.CreatedResource{
		Success:      true,
		ResourceID:   armID(snap, name),
		ResourceName: name,
		ResourceType: snap.Resource.ProviderType(),
		Region:       snap.Region,
		Details: map[string]string{
			"fqdn":           fqdn,
			"version":        cfg.String("version", "8.0.21"),
			"sku":            cfg.String("sku", "Standard_B1ms"),
			"storage_gb":     strconv.Itoa(cfg.Int("storage_gb", 32)),
			"admin_username": adminUser,
			"admin_password": password,
			"connection_string": fmt.Sprintf(
				"mysql://%s:%s@%s:3306", adminUser, password, fqdn),
			"note": "⚠️ Save credentials securely. Password won't be shown again.",
		},
	}, nil
}

func (p *Provisioner) createSQLDatabase(snap domain.Snapshot) (*domain.CreatedResource, error) {
	cfg := snap.Config
	dbName := cfg.String("name", "mydb")
	serverName := cfg.String("server_name", dbName+"-server")
	adminUser := cfg.String("admin_username", "sqladmin")
	password := generatePassword()
	serverFQDN := serverName + ".database.windows.net"

	// Databases live under their server in the ARM hierarchy.
	id := fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Sql/servers/%s/databases/%s",
		snap.SubscriptionID, snap.ResourceGroup, serverName, dbName)

	return &domain.CreatedResource{
		Success:      true,
		ResourceID:   id,
		ResourceName: dbName,
		ResourceType: snap.Resource.ProviderType(),
		Region:       snap.Region,
		Details: map[string]string{
			"server_name":    serverName,
			"server_fqdn":    serverFQDN,
			"database_name":  dbName,
			"tier":           cfg.String("tier", "Basic"),
			"admin_username": adminUser,
			"admin_password": password,
			"connection_string": fmt.Sprintf(
				"Server=tcp:%s,1433;Database=%s;User ID=%s;Password=%s;Encrypt=true;Connection Timeout=30;",
				serverFQDN, dbName, adminUser, password),
			"note": "⚠️ Save credentials securely. Password won't be shown again.",
		},
	}, nil
}

func (p *Provisioner) createCosmosDB(snap domain.Snapshot) (*domain.CreatedResource, error) {
	cfg := snap.Config
	name := cfg.String("name", "mycosmosaccount")
	endpoint := fmt.Sprintf("https://%s.documents.azure.com:443/", name)
	primaryKey := generateAccountKey()

	return &domain.CreatedResource{
		Success:      true,
		ResourceID:   armID(snap, name),
		ResourceName: name,
		ResourceType: snap.Resource.ProviderType(),
		Region:       snap.Region,
		Details: map[string]string{
			"document_endpoint": endpoint,
			"api_type":          cfg.String("api_type", "SQL"),
			"consistency_level": cfg.String("consistency_level", "Session"),
			"primary_key":       primaryKey,
			"connection_string": fmt.Sprintf("AccountEndpoint=%s;AccountKey=%s", endpoint, primaryKey),
			"note":              "⚠️ Save the keys securely. They provide full access to your data.",
		},
	}, nil
}
