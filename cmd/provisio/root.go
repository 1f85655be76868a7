package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/provisio/provisio/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "provisio",
	Short: "Provisio is a conversation-driven Azure provisioning assistant",
	Long: `Provisio walks users through provisioning Azure resources in a guided
conversation: pick a resource type, answer a few questions, review the cost
estimate, then create the resource or take the generated Terraform.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file (YAML)")
}

// loadConfig reads the configuration file named by --config, or falls back
// to defaults plus environment overrides when the flag is unset.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFile(path)
	}
	return config.FromEnv()
}
