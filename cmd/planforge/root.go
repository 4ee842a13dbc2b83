package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planforge",
	Short: "Project planning crew orchestrator",
	Long: `Planforge runs a crew of three LLM agents that turn a project brief
into an executable project plan.

The crew executes three tasks in sequence:
  1. Task Breakdown       (Project Planner)
  2. Time Estimation      (Estimation Analyst)
  3. Resource Allocation  (Allocation Strategist)

Each task's output feeds the next. The final task produces a structured
project plan with per-task estimates, milestones, and a Gantt chart,
which is saved alongside cost and usage metrics.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
