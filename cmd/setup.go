package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/crmd/internal/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to crmd!")
	fmt.Println()

	// 1. Annual revenue goal
	fmt.Println("  1. Annual revenue goal (USD)")
	fmt.Printf("     Current: $%.0f\n", cfg.CRM.AnnualGoal)
	fmt.Print("     > ")
	goalStr, _ := reader.ReadString('\n')
	goalStr = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(goalStr), "$"))
	goalStr = strings.ReplaceAll(goalStr, ",", "")
	if goalStr != "" {
		goal, err := strconv.ParseFloat(goalStr, 64)
		if err != nil || goal <= 0 {
			fmt.Println("     Not a valid amount, keeping current goal.")
		} else {
			cfg.CRM.AnnualGoal = goal
		}
	}
	fmt.Println()

	// 2. API listen address
	fmt.Println("  2. API listen address")
	fmt.Printf("     Current: %s\n", cfg.Server.Addr)
	fmt.Print("     > ")
	addr, _ := reader.ReadString('\n')
	addr = strings.TrimSpace(addr)
	if addr != "" {
		cfg.Server.Addr = addr
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	themeChoice = strings.TrimSpace(themeChoice)
	switch themeChoice {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	// Keep the database's goal setting in line with the config file so
	// the API reports the same number.
	if st, err := openStoreWithConfig(cfg); err == nil {
		_ = st.PutSetting(context.Background(), "annual_goal",
			strconv.FormatFloat(cfg.CRM.AnnualGoal, 'f', -1, 64))
		_ = st.Close()
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `crmd setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
