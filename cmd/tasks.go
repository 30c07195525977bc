package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/theirongolddev/crmd/internal/cli"
	"github.com/theirongolddev/crmd/internal/store"

	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List activities due this week",
	RunE:  runTasks,
}

func init() {
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(_ *cobra.Command, _ []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	monday, sunday := store.WeekBounds(time.Now())
	tasks, err := st.TasksDueBetween(context.Background(), monday, sunday)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("\n  Nothing due this week.")
		return nil
	}

	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		taskType := cli.FormatOptional(task.Type)
		rows = append(rows, []string{
			strconv.FormatInt(task.ID, 10),
			cli.FormatOptional(task.DueDate),
			taskType,
			cli.Truncate(cli.FormatOptional(task.Description), 32),
			cli.Truncate(cli.FormatOptional(task.DealTitle), 22),
		})
	}

	mon, _ := time.Parse("2006-01-02", monday)
	sun, _ := time.Parse("2006-01-02", sunday)

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title: fmt.Sprintf("Tasks %s – %s",
			mon.Format("Jan 2"), sun.Format("Jan 2")),
		Headers: []string{"ID", "Due", "Type", "Description", "Deal"},
		Rows:    rows,
	}))
	return nil
}
