package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/provisio/provisio/internal/cli"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive provisioning conversation",
	Long: `Starts an interactive conversation on the terminal. Replies render as
markdown when stdout is a terminal; piped output stays plain text.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		sessionID, _ := cmd.Flags().GetString("session")
		debug, _ := cmd.Flags().GetBool("debug")

		if err := cli.RunChat(cli.ChatOptions{
			Config:    cfg,
			SessionID: sessionID,
			Debug:     debug,
		}); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("session", "s", "", "Resume an existing session by ID")
	chatCmd.Flags().Bool("debug", false, "Enable debug logging to stderr")
}
