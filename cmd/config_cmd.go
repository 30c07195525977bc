// Package cmd implements the crmd CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/crmd/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  [Storage]")
	fmt.Printf("    Database: %s\n", cfg.DBPath())
	fmt.Println()

	fmt.Println("  [CRM]")
	fmt.Printf("    Annual goal: $%.0f\n", cfg.CRM.AnnualGoal)
	fmt.Printf("    Currency:    %s\n", cfg.CRM.Currency)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `crmd setup` to reconfigure.")
	return nil
}
