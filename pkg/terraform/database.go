package terraform

import (
	"fmt"
	"strings"

	"github.com/provisio/provisio/pkg/domain"
)

const postgresTemplate = `
# Random password for PostgreSQL
resource "random_password" "pg_password" {
  length           = 24
  special          = true
  override_special = "!#$%%&*()-_=+[]:?"
}

# PostgreSQL Flexible Server
resource "azurerm_postgresql_flexible_server" "postgres" {
  name                   = "%[1]s"
  resource_group_name    = %[2]s
  location               = %[3]s
  version                = "%[4]s"
  administrator_login    = "%[5]s"
  administrator_password = random_password.pg_password.result
  zone                   = "1"

  storage_mb = %[6]d

  sku_name = "%[7]s"

  tags = {
    Environment = "Production"
    ManagedBy   = "Terraform"
  }
}

# Firewall rule to allow Azure services
resource "azurerm_postgresql_flexible_server_firewall_rule" "allow_azure" {
  name             = "AllowAzureServices"
  server_id        = azurerm_postgresql_flexible_server.postgres.id
  start_ip_address = "0.0.0.0"
  end_ip_address   = "0.0.0.0"
}

output "postgresql_fqdn" {
  value = azurerm_postgresql_flexible_server.postgres.fqdn
}

output "postgresql_admin_username" {
  value = azurerm_postgresql_flexible_server.postgres.administrator_login
}

output "postgresql_admin_password" {
  value     = random_password.pg_password.result
  sensitive = true
}
`

const mysqlTemplate = `
# Random password for MySQL
resource "random_password" "mysql_password" {
  length           = 24
  special          = true
  override_special = "!#$%%&*()-_=+[]:?"
}

# MySQL Flexible Server
resource "azurerm_mysql_flexible_server" "mysql" {
  name                   = "%[1]s"
  resource_group_name    = %[2]s
  location               = %[3]s
  version                = "%[4]s"
  administrator_login    = "%[5]s"
  administrator_password = random_password.mysql_password.result
  zone                   = "1"

  storage {
    size_gb = %[6]d
  }

  sku_name = "%[7]s"

  tags = {
    Environment = "Production"
    ManagedBy   = "Terraform"
  }
}

# Firewall rule to allow Azure services
resource "azurerm_mysql_flexible_server_firewall_rule" "allow_azure" {
  name                = "AllowAzureServices"
  resource_group_name = %[2]s
  server_name         = azurerm_mysql_flexible_server.mysql.name
  start_ip_address    = "0.0.0.0"
  end_ip_address      = "0.0.0.0"
}

output "mysql_fqdn" {
  value = azurerm_mysql_flexible_server.mysql.fqdn
}

output "mysql_admin_username" {
  value = azurerm_mysql_flexible_server.mysql.administrator_login
}

output "mysql_admin_password" {
  value     = random_password.mysql_password.result
  sensitive = true
}
`

const sqlTemplate = `
# Random password for SQL Server
resource "random_password" "sql_password" {
  length           = 24
  special          = true
  override_special = "!#$%%&*()-_=+[]:?"
}

# Azure SQL Server
resource "azurerm_mssql_server" "sql_server" {
  name                         = "%[1]s"
  resource_group_name          = %[2]s
  location                     = %[3]s
  version                      = "12.0"
  administrator_login          = "%[4]s"
  administrator_login_password = random_password.sql_password.result

  tags = {
    Environment = "Production"
    ManagedBy   = "Terraform"
  }
}

# Firewall rule to allow Azure services
resource "azurerm_mssql_firewall_rule" "allow_azure" {
  name             = "AllowAzureServices"
  server_id        = azurerm_mssql_server.sql_server.id
  start_ip_address = "0.0.0.0"
  end_ip_address   = "0.0.0.0"
}

# Azure SQL Database
resource "azurerm_mssql_database" "db" {
  name         = "%[5]s"
  server_id    = azurerm_mssql_server.sql_server.id
  collation    = "SQL_Latin1_General_CP1_CI_AS"
  license_type = "LicenseIncluded"
  sku_name     = "%[6]s"

  tags = {
    Environment = "Production"
    ManagedBy   = "Terraform"
  }
}

output "sql_server_fqdn" {
  value = azurerm_mssql_server.sql_server.fully_qualified_domain_name
}

output "sql_database_name" {
  value = azurerm_mssql_database.db.name
}

output "sql_admin_username" {
  value = azurerm_mssql_server.sql_server.administrator_login
}

output "sql_admin_password" {
  value     = random_password.sql_password.result
  sensitive = true
}
`

const cosmosTemplate = `
# Cosmos DB Account
resource "azurerm_cosmosdb_account" "cosmos" {
  name                = "%[1]s"
  location            = %[2]s
  resource_group_name = %[3]s
  offer_type          = "Standard"
  kind                = "GlobalDocumentDB"
  enable_free_tier    = %[4]t

  consistency_policy {
    consistency_level = "%[5]s"
  }

  geo_location {
    location          = %[2]s
    failover_priority = 0
  }
%[6]s

  tags = {
    Environment = "Production"
    ManagedBy   = "Terraform"
  }
}

output "cosmosdb_endpoint" {
  value = azurerm_cosmosdb_account.cosmos.endpoint
}

output "cosmosdb_primary_key" {
  value     = azurerm_cosmosdb_account.cosmos.primary_key
  sensitive = true
}

output "cosmosdb_connection_string" {
  value     = azurerm_cosmosdb_account.cosmos.primary_sql_connection_string
  sensitive = true
}
`

// cosmosCapabilities maps non-SQL API choices to the capability block the
// account must enable. The SQL API needs none.
var cosmosCapabilities = map[string]string{
	"MongoDB": `
  capabilities {
    name = "EnableMongo"
  }`,
	"Cassandra": `
  capabilities {
    name = "EnableCassandra"
  }`,
	"Table": `
  capabilities {
    name = "EnableTable"
  }`,
	"Gremlin": `
  capabilities {
    name = "EnableGremlin"
  }`,
}

func renderPostgres(sb *strings.Builder, cfg domain.Config, rgRef, regionRef string) {
	name := cfg.String("name", "")
	version := cfg.String("version", "15")
	sku := cfg.String("sku", "Standard_B1ms")
	storageGB := cfg.Int("storage_gb", 32)
	admin := cfg.String("admin_username", "pgadmin")

	fmt.Fprintf(sb, postgresTemplate, name, rgRef, regionRef, version, admin, storageGB*1024, sku)
}

func renderMySQL(sb *strings.Builder, cfg domain.Config, rgRef, regionRef string) {
	name := cfg.String("name", "")
	version := cfg.String("version", "8.0.21")
	sku := cfg.String("sku", "Standard_B1ms")
	storageGB := cfg.Int("storage_gb", 32)
	admin := cfg.String("admin_username", "mysqladmin")

	fmt.Fprintf(sb, mysqlTemplate, name, rgRef, regionRef, version, admin, storageGB, sku)
}

func renderSQLDatabase(sb *strings.Builder, cfg domain.Config, rgRef, regionRef string) {
	dbName := cfg.String("name", "")
	serverName := cfg.String("server_name", dbName+"-server")
	tier := cfg.String("tier", "Basic")
	admin := cfg.String("admin_username", "sqladmin")

	fmt.Fprintf(sb, sqlTemplate, serverName, rgRef, regionRef, admin, dbName, tier)
}

func renderCosmos(sb *strings.Builder, cfg domain.Config, rgRef, regionRef string) {
	name := cfg.String("name", "")
	apiType := cfg.String("api_type", "SQL")
	consistency := cfg.String("consistency_level", "Session")
	freeTier := cfg.Bool("enable_free_tier", false)

	fmt.Fprintf(sb, cosmosTemplate, name, regionRef, rgRef, freeTier, consistency,
		cosmosCapabilities[apiType])
}
