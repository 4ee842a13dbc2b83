package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/planforge/planforge/internal/config"
	"github.com/planforge/planforge/internal/crew"
	"github.com/planforge/planforge/internal/metrics"
)

var (
	runBriefFile    string
	runProject      string
	runIndustry     string
	runObjectives   string
	runTeam         string
	runRequirements string
	runProvider     string
	runModel        string
	runHeadless     bool
	runNoSave       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the planning crew against a project brief",
	Long: `Run the three planning tasks in sequence:

  1. Task Breakdown      (Project Planner)
  2. Time Estimation     (Estimation Analyst)
  3. Resource Allocation (Allocation Strategist)

Each task's output is fed into the next task's context. The final task
returns a structured project plan with task estimates and milestones,
plus a Gantt chart when the model produces one.

Inputs come from a brief file (--brief, YAML) and/or flags; flags
override the brief. At minimum a project name and objectives are
required.

Reports are appended under the metrics directory (outputs/metrics by
default) and the run is recorded in the project database
(.planforge/runs.db). Use 'planforge history' to review past runs.

While a run is in progress you can touch .planforge/signals/pause to
pause it between tasks, or .planforge/signals/stop to abort it.`,
	RunE: runCrew,
}

func init() {
	runCmd.Flags().StringVarP(&runBriefFile, "brief", "b", "", "Path to a YAML project brief")
	runCmd.Flags().StringVar(&runProject, "project", "", "Project name")
	runCmd.Flags().StringVar(&runIndustry, "industry", "", "Industry context")
	runCmd.Flags().StringVar(&runObjectives, "objectives", "", "Project objectives")
	runCmd.Flags().StringVar(&runTeam, "team", "", "Team members, one per line")
	runCmd.Flags().StringVar(&runRequirements, "requirements", "", "Project requirements")
	runCmd.Flags().StringVar(&runProvider, "provider", "", "Override LLM provider: anthropic, bedrock, or openai")
	runCmd.Flags().StringVar(&runModel, "model", "", "Override the model")
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "Run without the TUI (plain output)")
	runCmd.Flags().BoolVar(&runNoSave, "no-save", false, "Skip writing metrics reports and the run database")
}

func runCrew(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	inputs, err := buildInputs()
	if err != nil {
		return err
	}
	if err := inputs.Validate(); err != nil {
		return fmt.Errorf("%w (set --project/--objectives or provide --brief)", err)
	}

	provider := cfg.Provider
	if runProvider != "" {
		provider = runProvider
	}

	completer, err := createCompleter(cfg, runProvider, runModel)
	if err != nil {
		return err
	}

	defs, err := crew.LoadOrDefault(cfg.Crew.AgentsFile, cfg.Crew.TasksFile)
	if err != nil {
		return err
	}

	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Println("\nReceived interrupt, shutting down...")
		cancel()
	}()

	signals, err := crew.NewSignalWatcher(projectRoot)
	if err != nil {
		return fmt.Errorf("start signal watcher: %w", err)
	}
	defer signals.Close()
	if err := signals.ClearStop(); err != nil {
		return fmt.Errorf("clear stale stop signal: %w", err)
	}

	started := time.Now()

	logger, err := crew.NewDebugLoggerForProject(projectRoot, started.Format("20060102-150405"))
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	defer logger.Close()

	emitter := crew.NewEventEmitter(64)

	c := crew.New(crew.Config{
		Definitions: defs,
		Completer:   completer,
		Emitter:     emitter,
		Logger:      logger,
		Signals:     signals,
		MaxTokens:   cfg.Crew.MaxTokens,
		TaskTimeout: cfg.Crew.TaskTimeout,
	})

	pricing := cfg.Pricing.For(completer.Model())

	var store *metrics.Store
	if !runNoSave {
		store, err = metrics.OpenProject(projectRoot)
		if err != nil {
			return fmt.Errorf("open run database: %w", err)
		}
		defer store.Close()
	}

	var result *crew.Result
	var runErr error
	if runHeadless {
		result, runErr = runHeadlessMode(ctx, c, emitter, inputs)
	} else {
		result, runErr = runWithTUI(ctx, c, emitter, inputs, defs, pricing)
	}

	if result != nil && store != nil {
		record := &metrics.RunRecord{
			ID:           result.RunID,
			Project:      inputs.Project,
			Provider:     provider,
			Model:        completer.Model(),
			Status:       result.Status,
			InputTokens:  result.Usage.InputTokens,
			OutputTokens: result.Usage.OutputTokens,
			Calls:        result.Usage.Calls,
			Cost:         pricing.Cost(result.Usage.InputTokens, result.Usage.OutputTokens),
			StartedAt:    started,
		}
		completed := time.Now()
		record.CompletedAt = &completed
		if runErr != nil {
			record.Error = runErr.Error()
		}
		if err := store.CreateRun(record); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not record run %s: %v\n", record.ID, err)
		}
	}

	if result != nil && !runNoSave {
		if err := writeReports(cfg, result, pricing); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not write reports: %v\n", err)
		}
	}

	if runErr != nil {
		if errors.Is(runErr, crew.ErrStopped) {
			fmt.Println("Run stopped by signal.")
			return nil
		}
		return runErr
	}

	printSummary(result, pricing)
	return nil
}
