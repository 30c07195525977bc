package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/theirongolddev/crmd/internal/cli"
	"github.com/theirongolddev/crmd/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagDealContact     int64
	flagDealValue       float64
	flagDealStage       string
	flagDealProbability int64
	flagDealCloseDate   string
	flagDealRevenue     float64
)

var dealsCmd = &cobra.Command{
	Use:   "deals",
	Short: "Manage deals",
	RunE:  runDealsList,
}

var dealsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all deals",
	RunE:  runDealsList,
}

var dealsAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a deal",
	Args:  cobra.ExactArgs(1),
	RunE:  runDealsAdd,
}

var dealsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one deal with its SKUs",
	Args:  cobra.ExactArgs(1),
	RunE:  runDealsShow,
}

var dealsCloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Mark a deal closed",
	Args:  cobra.ExactArgs(1),
	RunE:  runDealsClose,
}

var dealsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a deal",
	Args:  cobra.ExactArgs(1),
	RunE:  runDealsRm,
}

func init() {
	dealsAddCmd.Flags().Int64Var(&flagDealContact, "contact", 0, "Contact ID (required)")
	dealsAddCmd.Flags().Float64Var(&flagDealValue, "value", 0, "Deal value in USD")
	dealsAddCmd.Flags().StringVar(&flagDealStage, "stage", "qualification", "Pipeline stage")
	dealsAddCmd.Flags().Int64Var(&flagDealProbability, "probability", 0, "Win probability (0-100)")
	dealsAddCmd.Flags().StringVar(&flagDealCloseDate, "close-date", "", "Expected close date (YYYY-MM-DD)")
	_ = dealsAddCmd.MarkFlagRequired("contact")

	dealsCloseCmd.Flags().Float64Var(&flagDealRevenue, "revenue", 0, "Realized revenue (defaults to deal value)")

	dealsCmd.AddCommand(dealsListCmd)
	dealsCmd.AddCommand(dealsAddCmd)
	dealsCmd.AddCommand(dealsShowCmd)
	dealsCmd.AddCommand(dealsCloseCmd)
	dealsCmd.AddCommand(dealsRmCmd)
	rootCmd.AddCommand(dealsCmd)
}

func runDealsList(_ *cobra.Command, _ []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	deals, err := st.ListDeals(context.Background())
	if err != nil {
		return err
	}

	if len(deals) == 0 {
		fmt.Println("\n  No deals yet. Add one with `crmd deals add <title>`.")
		return nil
	}

	rows := make([][]string, 0, len(deals))
	for _, d := range deals {
		value := "—"
		if d.Value != nil {
			value = cli.FormatMoney(*d.Value)
		}
		stage := "—"
		if d.Stage != nil {
			stage = cli.FormatStage(*d.Stage)
		}
		rows = append(rows, []string{
			strconv.FormatInt(d.ID, 10),
			cli.Truncate(d.Title, 28),
			cli.Truncate(cli.FormatOptional(d.ContactName), 22),
			stage,
			d.Status,
			value,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Deals (%d)", len(deals)),
		Headers: []string{"ID", "Title", "Contact", "Stage", "Status", "Value"},
		Rows:    rows,
	}))
	return nil
}

func runDealsAdd(_ *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	d := model.Deal{
		Title:     args[0],
		ContactID: &flagDealContact,
		Stage:     &flagDealStage,
	}
	if flagDealValue > 0 {
		d.Value = &flagDealValue
	}
	if flagDealProbability > 0 {
		d.Probability = &flagDealProbability
	}
	if flagDealCloseDate != "" {
		d.ExpectedCloseDate = &flagDealCloseDate
	}

	created, err := st.CreateDeal(context.Background(), d, nil)
	if err != nil {
		return err
	}

	fmt.Printf("  Added deal #%d: %s\n", created.ID, created.Title)
	return nil
}

func runDealsShow(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid deal id %q", args[0])
	}

	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	d, err := st.GetDeal(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  #%d %s (%s)\n", d.ID, d.Title, d.Status)
	fmt.Printf("  Contact: %s\n", cli.FormatOptional(d.ContactName))
	if d.Value != nil {
		fmt.Printf("  Value:   %s\n", cli.FormatMoney(*d.Value))
	}
	if d.Stage != nil {
		fmt.Printf("  Stage:   %s\n", cli.FormatStage(*d.Stage))
	}
	if d.Probability != nil {
		fmt.Printf("  Probability: %d%%\n", *d.Probability)
	}
	if d.ExpectedCloseDate != nil {
		fmt.Printf("  Expected close: %s\n", *d.ExpectedCloseDate)
	}
	if d.ClosedRevenue > 0 {
		fmt.Printf("  Closed revenue: %s\n", cli.FormatMoney(d.ClosedRevenue))
	}
	if len(d.SKUs) > 0 {
		fmt.Println("  SKUs:")
		for _, sku := range d.SKUs {
			fmt.Printf("    - %s (%s / %s)\n", sku.Name, sku.Category, sku.Subcategory)
		}
	}
	return nil
}

func runDealsClose(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid deal id %q", args[0])
	}

	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	revenue := flagDealRevenue
	if !cmd.Flags().Changed("revenue") {
		d, err := st.GetDeal(ctx, id)
		if err != nil {
			return err
		}
		if d.Value != nil {
			revenue = *d.Value
		}
	}

	status := model.StatusClosed
	d, err := st.UpdateDeal(ctx, id, model.DealUpdate{
		Status:        &status,
		ClosedRevenue: &revenue,
	})
	if err != nil {
		return err
	}

	fmt.Printf("  Closed deal #%d: %s at %s\n", d.ID, d.Title, cli.FormatMoney(d.ClosedRevenue))
	return nil
}

func runDealsRm(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid deal id %q", args[0])
	}

	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteDeal(context.Background(), id); err != nil {
		return err
	}

	fmt.Printf("  Deleted deal #%d\n", id)
	return nil
}
