package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/theirongolddev/crmd/internal/cli"
	"github.com/theirongolddev/crmd/internal/model"

	"github.com/spf13/cobra"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Pipeline analytics by stage and month",
	RunE:  runPipeline,
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(_ *cobra.Command, _ []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	pa, err := st.PipelineAnalytics(context.Background())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PIPELINE ANALYTICS"))
	fmt.Println()

	if pa.Totals.DealCount == 0 {
		fmt.Println("  No open deals in the pipeline.")
		return nil
	}

	stageRows := make([][]string, 0, len(model.Stages)+2)
	for _, stage := range model.Stages {
		m := pa.Stages[stage]
		if m == nil {
			continue
		}
		stageRows = append(stageRows, []string{
			cli.FormatStage(stage),
			strconv.Itoa(m.Count),
			cli.FormatMoney(m.TotalValue),
			cli.FormatMoney(m.WeightedValue),
		})
	}
	stageRows = append(stageRows, []string{"---"})
	stageRows = append(stageRows, []string{
		"Total",
		strconv.Itoa(pa.Totals.DealCount),
		cli.FormatMoney(pa.Totals.Pipeline),
		cli.FormatMoney(pa.Totals.Weighted),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By Stage",
		Headers: []string{"Stage", "Deals", "Value", "Weighted"},
		Rows:    stageRows,
	}))
	fmt.Println()

	months := make([]string, 0, len(pa.MonthlyForecast))
	for m := range pa.MonthlyForecast {
		months = append(months, m)
	}
	sort.Strings(months)

	var maxTotal float64
	for _, m := range months {
		if t := pa.MonthlyForecast[m].Total; t > maxTotal {
			maxTotal = t
		}
	}

	monthRows := make([][]string, 0, len(months))
	for _, m := range months {
		f := pa.MonthlyForecast[m]
		monthRows = append(monthRows, []string{
			m,
			strconv.Itoa(f.Count),
			cli.FormatMoney(f.Total),
			cli.RenderHorizontalBar(f.Total, maxTotal, 20),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Monthly Forecast",
		Headers: []string{"Month", "Deals", "Value", ""},
		Rows:    monthRows,
	}))
	return nil
}
