package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/planforge/planforge/internal/config"
	"github.com/planforge/planforge/internal/crew"
	"github.com/planforge/planforge/internal/llm"
	"github.com/planforge/planforge/internal/metrics"
	"github.com/planforge/planforge/internal/plan"
)

// multiline is a brief field that accepts either a YAML scalar or a
// sequence; sequences are joined into a bulleted block.
type multiline string

func (m *multiline) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*m = multiline(node.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		var b strings.Builder
		for _, item := range items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		*m = multiline(b.String())
		return nil
	default:
		return fmt.Errorf("expected a string or a list at line %d", node.Line)
	}
}

// brief is the on-disk YAML project brief.
type brief struct {
	Project      string    `yaml:"project"`
	Industry     string    `yaml:"industry"`
	Objectives   multiline `yaml:"project_objectives"`
	TeamMembers  multiline `yaml:"team_members"`
	Requirements multiline `yaml:"project_requirements"`
}

// loadBrief reads and parses a YAML project brief.
func loadBrief(path string) (*brief, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read brief: %w", err)
	}
	var b brief
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse brief %s: %w", path, err)
	}
	return &b, nil
}

// buildInputs assembles crew inputs from the brief file and flags.
// Flags override brief values field by field.
func buildInputs() (crew.Inputs, error) {
	var inputs crew.Inputs

	if runBriefFile != "" {
		b, err := loadBrief(runBriefFile)
		if err != nil {
			return inputs, err
		}
		inputs = crew.Inputs{
			Project:      b.Project,
			Industry:     b.Industry,
			Objectives:   string(b.Objectives),
			TeamMembers:  string(b.TeamMembers),
			Requirements: string(b.Requirements),
		}
	}

	if runProject != "" {
		inputs.Project = runProject
	}
	if runIndustry != "" {
		inputs.Industry = runIndustry
	}
	if runObjectives != "" {
		inputs.Objectives = runObjectives
	}
	if runTeam != "" {
		inputs.TeamMembers = runTeam
	}
	if runRequirements != "" {
		inputs.Requirements = runRequirements
	}

	return inputs, nil
}

// writeReports appends the run's cost, Gantt chart, and transcript to the
// metrics directory and rewrites the plan detail tables.
func writeReports(cfg *config.Config, result *crew.Result, pricing llm.Pricing) error {
	writer, err := metrics.NewWriter(cfg.Outputs.MetricsDir)
	if err != nil {
		return err
	}

	cost := pricing.Cost(result.Usage.InputTokens, result.Usage.OutputTokens)
	if err := writer.AppendCost(cost); err != nil {
		return err
	}
	if err := writer.AppendGantt(result.Gantt); err != nil {
		return err
	}
	if result.Transcript != "" {
		if err := writer.AppendTranscript(result.Transcript); err != nil {
			return err
		}
	}
	if result.Plan != nil {
		if err := writer.WritePlanDetails(result.Plan); err != nil {
			return err
		}
	}
	return nil
}

// printSummary prints the final plan tables and usage totals.
func printSummary(result *crew.Result, pricing llm.Pricing) {
	heading := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)

	fmt.Println()
	heading.Println("Run complete")
	dim.Printf("run id: %s\n\n", result.RunID)

	if result.Plan != nil {
		heading.Println("Task Estimates")
		fmt.Println(plan.RenderTaskTable(result.Plan.Tasks))
		heading.Println("Milestones")
		fmt.Println(plan.RenderMilestoneTable(result.Plan.Milestones))
	}

	if result.Gantt != "" {
		heading.Println("Gantt Chart")
		fmt.Println(result.Gantt)
	}

	cost := pricing.Cost(result.Usage.InputTokens, result.Usage.OutputTokens)
	fmt.Printf("Tokens: %d in / %d out across %d calls\n",
		result.Usage.InputTokens, result.Usage.OutputTokens, result.Usage.Calls)
	fmt.Printf("Estimated cost: $%.4f\n", cost)
}
