package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/planforge/planforge/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify planforge configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/planforge/config.yaml
Project-specific overrides can be placed in .planforge.yaml
API keys are read from the environment (or a .env file) and are
never written to the config file.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("provider: %s\n", cfg.Provider)
	fmt.Printf("anthropic.api_key: %s\n", maskKey(cfg.Anthropic.APIKey))
	fmt.Printf("anthropic.model: %s\n", cfg.Anthropic.Model)
	fmt.Printf("openai.api_key: %s\n", maskKey(cfg.OpenAI.APIKey))
	fmt.Printf("openai.model: %s\n", cfg.OpenAI.Model)
	fmt.Printf("openai.base_url: %s\n", cfg.OpenAI.BaseURL)
	fmt.Printf("aws.region: %s\n", cfg.AWS.Region)
	fmt.Printf("aws.profile: %s\n", cfg.AWS.Profile)
	fmt.Printf("crew.agents_file: %s\n", cfg.Crew.AgentsFile)
	fmt.Printf("crew.tasks_file: %s\n", cfg.Crew.TasksFile)
	fmt.Printf("crew.max_tokens: %d\n", cfg.Crew.MaxTokens)
	fmt.Printf("crew.task_timeout: %s\n", cfg.Crew.TaskTimeout)
	fmt.Printf("outputs.metrics_dir: %s\n", cfg.Outputs.MetricsDir)
	fmt.Printf("tui.refresh_rate: %s\n", cfg.TUI.RefreshRate)

	fmt.Println()
	fmt.Printf("user config: %s\n", config.GetUserConfigPath())
	if project := config.GetProjectConfigPath(); project != "" {
		fmt.Printf("project config: %s\n", project)
	}
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	return "****"
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "provider":
		return cfg.Provider, nil
	case "anthropic.api_key":
		return maskKey(cfg.Anthropic.APIKey), nil
	case "anthropic.model":
		return cfg.Anthropic.Model, nil
	case "openai.api_key":
		return maskKey(cfg.OpenAI.APIKey), nil
	case "openai.model":
		return cfg.OpenAI.Model, nil
	case "openai.base_url":
		return cfg.OpenAI.BaseURL, nil
	case "aws.region":
		return cfg.AWS.Region, nil
	case "aws.profile":
		return cfg.AWS.Profile, nil
	case "crew.agents_file":
		return cfg.Crew.AgentsFile, nil
	case "crew.tasks_file":
		return cfg.Crew.TasksFile, nil
	case "crew.max_tokens":
		return strconv.Itoa(cfg.Crew.MaxTokens), nil
	case "crew.task_timeout":
		return cfg.Crew.TaskTimeout.String(), nil
	case "outputs.metrics_dir":
		return cfg.Outputs.MetricsDir, nil
	case "tui.refresh_rate":
		return cfg.TUI.RefreshRate.String(), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "provider":
		cfg.Provider = value
		return cfg.Validate()
	case "anthropic.model":
		cfg.Anthropic.Model = value
	case "openai.model":
		cfg.OpenAI.Model = value
	case "openai.base_url":
		cfg.OpenAI.BaseURL = value
	case "aws.region":
		cfg.AWS.Region = value
	case "aws.profile":
		cfg.AWS.Profile = value
	case "crew.agents_file":
		cfg.Crew.AgentsFile = value
	case "crew.tasks_file":
		cfg.Crew.TasksFile = value
	case "crew.max_tokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_tokens: %w", err)
		}
		cfg.Crew.MaxTokens = n
	case "crew.task_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for task_timeout: %w", err)
		}
		cfg.Crew.TaskTimeout = d
	case "outputs.metrics_dir":
		cfg.Outputs.MetricsDir = value
	case "tui.refresh_rate":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for refresh_rate: %w", err)
		}
		cfg.TUI.RefreshRate = d
	case "anthropic.api_key", "openai.api_key":
		return fmt.Errorf("API keys are read from the environment; set %s instead",
			strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
