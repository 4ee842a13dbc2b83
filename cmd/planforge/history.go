package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/planforge/planforge/internal/metrics"
	"github.com/planforge/planforge/pkg/models"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past planning runs",
	Long: `Display recent planning runs recorded in the project database.

Shows each run's project, status, token usage, cost, and duration,
plus the accumulated cost across all runs.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	dbPath := metrics.ProjectDBPath(cwd)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No runs recorded yet. Run 'planforge run' to start.")
		return nil
	}

	store, err := metrics.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open run database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		return fmt.Errorf("migrate run database: %w", err)
	}

	runs, err := store.ListRecent(historyLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet. Run 'planforge run' to start.")
		return nil
	}

	for _, run := range runs {
		printRun(run)
	}

	total, err := store.TotalCost()
	if err != nil {
		return fmt.Errorf("total cost: %w", err)
	}
	fmt.Printf("\nTotal cost across all runs: $%.4f\n", total)

	return nil
}

// printRun prints one run as a short block.
func printRun(run *metrics.RunRecord) {
	status := statusColor(run.Status).Sprint(run.Status)

	fmt.Printf("%s  %s\n", run.StartedAt.Format("2006-01-02 15:04"), status)
	fmt.Printf("  project: %s  model: %s\n", run.Project, run.Model)
	fmt.Printf("  tokens: %d in / %d out  calls: %d  cost: $%.4f\n",
		run.InputTokens, run.OutputTokens, run.Calls, run.Cost)
	if run.CompletedAt != nil {
		fmt.Printf("  duration: %s\n", run.CompletedAt.Sub(run.StartedAt).Round(time.Second))
	}
	if run.Error != "" {
		fmt.Printf("  error: %s\n", run.Error)
	}
	fmt.Println()
}

func statusColor(status models.RunStatus) *color.Color {
	switch status {
	case models.RunCompleted:
		return color.New(color.FgGreen)
	case models.RunFailed:
		return color.New(color.FgRed)
	case models.RunStopped:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Faint)
	}
}
