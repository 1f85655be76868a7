package flow

import (
	"errors"

	"github.com/provisio/provisio/pkg/domain"
)

func serverName(min, max int, msg string) func(string) error {
	return func(s string) error {
		if len(s) < min || len(s) > max || !isAlnum(stripRunes(s, '-')) {
			return errors.New(msg)
		}
		return nil
	}
}

func postgresFlow() Flow {
	return Flow{
		Resource: domain.ResourcePostgreSQL,
		Steps: []Step{
			{
				Field:    "name",
				Prompt:   "Enter a name for your PostgreSQL server (3-63 chars, lowercase, hyphens allowed):",
				Validate: serverName(3, 63, "Server name must be 3-63 characters, lowercase letters, numbers, and hyphens."),
			},
			{
				Field:   "version",
				Prompt:  "Select PostgreSQL version:",
				Options: PostgresVersions,
				Default: "15",
			},
			{
				Field:   "sku",
				Prompt:  "Select compute tier/SKU:",
				Options: PostgresSKUs,
				Default: "Standard_B1ms",
			},
			{
				Field:     "storage_gb",
				Prompt:    "Storage size in GB (32-16384):",
				Default:   "32",
				Validate:  intBetween(32, 16384, "Storage must be between 32 and 16384 GB."),
				Transform: toInt,
			},
			{
				Field:    "admin_username",
				Prompt:   "Enter admin username:",
				Default:  "pgadmin",
				Validate: notReserved([]string{"admin", "administrator", "root", "postgres", "azure_superuser"}, "Username cannot be reserved words like admin, postgres, root, etc."),
			},
		},
		Assemble: func(answers domain.Config) domain.Config {
			return domain.Config{
				"name":           answers["name"],
				"version":        answers.String("version", "15"),
				"sku":            answers.String("sku", "Standard_B1ms"),
				"storage_gb":     answers.Int("storage_gb", 32),
				"admin_username": answers.String("admin_username", "pgadmin"),
			}
		},
	}
}

func mysqlFlow() Flow {
	return Flow{
		Resource: domain.ResourceMySQL,
		Steps: []Step{
			{
				Field:    "name",
				Prompt:   "Enter a name for your MySQL server (3-63 chars, lowercase, hyphens allowed):",
				Validate: serverName(3, 63, "Server name must be 3-63 characters, lowercase letters, numbers, and hyphens."),
			},
			{
				Field:   "version",
				Prompt:  "Select MySQL version:",
				Options: MySQLVersions,
				Default: "8.0.21",
			},
			{
				Field:   "sku",
				Prompt:  "Select compute tier/SKU:",
				Options: MySQLSKUs,
				Default: "Standard_B1ms",
			},
			{
				Field:     "storage_gb",
				Prompt:    "Storage size in GB (20-16384):",
				Default:   "32",
				Validate:  intBetween(20, 16384, "Storage must be between 20 and 16384 GB."),
				Transform: toInt,
			},
			{
				Field:    "admin_username",
				Prompt:   "Enter admin username:",
				Default:  "mysqladmin",
				Validate: notReserved([]string{"admin", "administrator", "root", "mysql", "azure_superuser"}, "Username cannot be reserved words like admin, mysql, root, etc."),
			},
		},
		Assemble: func(answers domain.Config) domain.Config {
			return domain.Config{
				"name":           answers["name"],
				"version":        answers.String("version", "8.0.21"),
				"sku":            answers.String("sku", "Standard_B1ms"),
				"storage_gb":     answers.Int("storage_gb", 32),
				"admin_username": answers.String("admin_username", "mysqladmin"),
			}
		},
	}
}

func sqlDatabaseFlow() Flow {
	return Flow{
		Resource: domain.ResourceSQLDB,
		Steps: []Step{
			{
				Field:    "name",
				Prompt:   "Enter a name for your SQL Database:",
				Validate: lengthBetween(1, 128, "Database name must be 1-128 characters."),
			},
			{
				Field:    "server_name",
				Prompt:   "Enter a name for the SQL Server (will be created):",
				Validate: serverName(1, 63, "Server name must be 1-63 characters, lowercase letters, numbers, and hyphens."),
			},
			{
				Field:   "tier",
				Prompt:  "Select pricing tier:",
				Options: SQLTiers,
				Default: "Basic",
			},
			{
				Field:    "admin_username",
				Prompt:   "Enter admin username:",
				Default:  "sqladmin",
				Validate: notReserved([]string{"admin", "administrator", "sa", "root"}, "Username cannot be reserved words like admin, sa, root."),
			},
		},
		Assemble: func(answers domain.Config) domain.Config {
			return domain.Config{
				"name":           answers["name"],
				"server_name":    answers["server_name"],
				"tier":           answers.String("tier", "Basic"),
				"admin_username": answers.String("admin_username", "sqladmin"),
			}
		},
	}
}

func cosmosFlow() Flow {
	return Flow{
		Resource: domain.ResourceCosmosDB,
		Steps: []Step{
			{
				Field:  "name",
				Prompt: "Enter a name for your Cosmos DB account (3-44 chars, lowercase):",
				Validate: func(s string) error {
					if len(s) < 3 || len(s) > 44 || !isAlnum(stripRunes(s, '-')) || !isLower(s) {
						return errors.New("Account name must be 3-44 characters, lowercase letters, numbers, and hyphens.")
					}
					return nil
				},
			},
			{
				Field:   "api_type",
				Prompt:  "Select API type:",
				Options: CosmosAPITypes,
				Default: "SQL",
			},
			{
				Field:   "consistency_level",
				Prompt:  "Select default consistency level:",
				Options: CosmosConsistencyLevels,
				Default: "Session",
			},
			{
				Field:     "enable_free_tier",
				Prompt:    "Enable free tier? (400 RU/s and 5 GB free per account):",
				Options:   []string{"yes", "no"},
				Default:   "no",
				Transform: yesNo,
			},
		},
		Assemble: func(answers domain.Config) domain.Config {
			return domain.Config{
				"name":              answers["name"],
				"api_type":          answers.String("api_type", "SQL"),
				"consistency_level": answers.String("consistency_level", "Session"),
				"enable_free_tier":  answers.Bool("enable_free_tier", false),
			}
		},
	}
}
