package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/crmd/internal/config"
	"github.com/theirongolddev/crmd/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDBPath string
	flagAddr   string
)

var rootCmd = &cobra.Command{
	Use:   "crmd",
	Short: "Sales CRM server and CLI",
	Long:  "Manage contacts, companies, and a sales pipeline from the terminal, or serve the CRM JSON API.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDBPath, "db", "d", "", "Database file path (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVarP(&flagAddr, "addr", "a", "", "API listen address (default: from config)")
}

// loadConfig merges the config file with command-line flags, which win.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
	return cfg, nil
}

// openStore is the shared storage opening path used by all commands.
func openStore() (*store.Store, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}

	st, err := openStoreWithConfig(cfg)
	if err != nil {
		return nil, cfg, err
	}
	return st, cfg, nil
}

func openStoreWithConfig(cfg config.Config) (*store.Store, error) {
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return st, nil
}
