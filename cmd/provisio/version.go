package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provisio/provisio"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of provisio",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("provisio version %s\n", strings.TrimSpace(provisio.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
