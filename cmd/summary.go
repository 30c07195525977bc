package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/crmd/internal/cli"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Pipeline overview with revenue and goal progress",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	contacts, companies, deals, err := st.Counts(ctx)
	if err != nil {
		return err
	}
	rev, err := st.Revenue(ctx)
	if err != nil {
		return err
	}
	goal, err := st.GoalProgress(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SALES PIPELINE"))
	fmt.Println()

	table := cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Contacts", cli.FormatNumber(int64(contacts))},
			{"Companies", cli.FormatNumber(int64(companies))},
			{"Deals", cli.FormatNumber(int64(deals))},
			{"---"},
			{"Forecast (open)", cli.FormatMoney(rev.Forecast)},
			{"Realized (closed)", cli.FormatMoney(rev.Realized)},
		},
	}
	fmt.Print(cli.RenderTable(table))

	fmt.Println()
	fmt.Printf("  Annual goal: %s\n", cli.FormatPercent(goal.Percentage))
	fmt.Printf("  %s\n", cli.RenderGoalBar(goal.ClosedRevenue, goal.AnnualGoal, 40))
	fmt.Println()

	if contacts == 0 && deals == 0 {
		fmt.Println("  Empty database. Add a contact with `crmd contacts add`.")
		fmt.Println()
	}

	return nil
}
