// Package config handles configuration loading for planforge.
// It supports XDG config paths, project-level overrides, .env files, and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/planforge/planforge/internal/llm"
)

// Provider names accepted in configuration.
const (
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
	ProviderOpenAI    = "openai"
)

// Config holds all configuration for planforge.
type Config struct {
	// Provider selects the LLM backend: anthropic, bedrock, or openai.
	Provider  string          `mapstructure:"provider"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	AWS       AWSConfig       `mapstructure:"aws"`
	Crew      CrewConfig      `mapstructure:"crew"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
	TUI       TUIConfig       `mapstructure:"tui"`
	Pricing   PricingConfig   `mapstructure:"pricing"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// OpenAIConfig holds OpenAI API settings.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// AWSConfig holds AWS settings for the Bedrock provider.
type AWSConfig struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// CrewConfig holds crew execution settings.
type CrewConfig struct {
	// AgentsFile is the path to the agent registry YAML.
	AgentsFile string `mapstructure:"agents_file"`
	// TasksFile is the path to the task registry YAML.
	TasksFile string `mapstructure:"tasks_file"`
	// MaxTokens caps each task's completion length.
	MaxTokens int `mapstructure:"max_tokens"`
	// TaskTimeout bounds each task's model call.
	TaskTimeout time.Duration `mapstructure:"task_timeout"`
}

// OutputsConfig holds output locations.
type OutputsConfig struct {
	// MetricsDir is where cost and plan reports are written.
	MetricsDir string `mapstructure:"metrics_dir"`
}

// TUIConfig holds TUI display settings.
type TUIConfig struct {
	RefreshRate time.Duration `mapstructure:"refresh_rate"`
}

// ModelPricing is the per-model token pricing entry in config.
type ModelPricing struct {
	// Input is USD per million input tokens.
	Input float64 `mapstructure:"input"`
	// Output is USD per million output tokens.
	Output float64 `mapstructure:"output"`
}

// PricingConfig maps model names to pricing, with a fallback for models
// not in the table.
type PricingConfig struct {
	Models  map[string]ModelPricing `mapstructure:"models"`
	Default ModelPricing            `mapstructure:"default"`
}

// For returns the pricing for a model, falling back to the default entry.
func (p PricingConfig) For(model string) llm.Pricing {
	if entry, ok := p.Models[model]; ok {
		return llm.Pricing{InputPerMTok: entry.Input, OutputPerMTok: entry.Output}
	}
	return llm.Pricing{InputPerMTok: p.Default.Input, OutputPerMTok: p.Default.Output}
}

// Load loads configuration from .env, XDG paths, project overrides, and
// environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, OPENAI_API_KEY, ...)
// 2. Project config (.planforge.yaml in current directory or parent)
// 3. User config (~/.config/planforge/config.yaml)
// 4. Built-in defaults
// A .env file in the working directory is loaded into the process
// environment first, without overriding variables that are already set.
func Load() (*Config, error) {
	// Credentials commonly live in .env; absence is fine.
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	// Load user config from XDG path
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	// Environment variable overrides
	v.AutomaticEnv()
	v.BindEnv("provider", "PLANFORGE_PROVIDER")
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	v.BindEnv("aws.region", "AWS_REGION")
	v.BindEnv("aws.profile", "AWS_PROFILE")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references in credentials
	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)
	cfg.OpenAI.APIKey = os.ExpandEnv(cfg.OpenAI.APIKey)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderBedrock, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown provider %q (want %s, %s, or %s)",
			c.Provider, ProviderAnthropic, ProviderBedrock, ProviderOpenAI)
	}
	if c.Crew.MaxTokens < 0 {
		return fmt.Errorf("crew.max_tokens must not be negative")
	}
	return nil
}

// Model returns the configured model name for the active provider.
func (c *Config) Model() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAI.Model
	}
	return c.Anthropic.Model
}

// Save writes the configuration to the user config file. API keys are
// not persisted; they belong in the environment or a .env file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("provider", cfg.Provider)
	v.Set("anthropic.model", cfg.Anthropic.Model)
	v.Set("openai.model", cfg.OpenAI.Model)
	v.Set("openai.base_url", cfg.OpenAI.BaseURL)
	v.Set("aws.region", cfg.AWS.Region)
	v.Set("aws.profile", cfg.AWS.Profile)
	v.Set("crew.agents_file", cfg.Crew.AgentsFile)
	v.Set("crew.tasks_file", cfg.Crew.TasksFile)
	v.Set("crew.max_tokens", cfg.Crew.MaxTokens)
	v.Set("crew.task_timeout", cfg.Crew.TaskTimeout.String())
	v.Set("outputs.metrics_dir", cfg.Outputs.MetricsDir)
	v.Set("tui.refresh_rate", cfg.TUI.RefreshRate.String())

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", ProviderAnthropic)

	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-20250514")

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("openai.base_url", "")

	v.SetDefault("crew.agents_file", "config/agents.yaml")
	v.SetDefault("crew.tasks_file", "config/tasks.yaml")
	v.SetDefault("crew.max_tokens", 8192)
	v.SetDefault("crew.task_timeout", "10m")

	v.SetDefault("outputs.metrics_dir", "outputs/metrics")

	v.SetDefault("tui.refresh_rate", "100ms")

	// Pricing in USD per million tokens.
	v.SetDefault("pricing.default.input", 3.0)
	v.SetDefault("pricing.default.output", 15.0)
	v.SetDefault("pricing.models", map[string]map[string]float64{
		"claude-sonnet-4-20250514":  {"input": 3.0, "output": 15.0},
		"claude-3-5-haiku-20241022": {"input": 0.8, "output": 4.0},
		"claude-opus-4-1-20250805":  {"input": 15.0, "output": 75.0},
		"gpt-4o":                    {"input": 2.5, "output": 10.0},
		"gpt-4o-mini":               {"input": 0.15, "output": 0.6},
	})
}

// getUserConfigDir returns the XDG config directory for planforge.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "planforge")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "planforge")
	}
	return filepath.Join(home, ".config", "planforge")
}

// findProjectConfig searches for .planforge.yaml in the current directory
// and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".planforge.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	cfg := &Config{}
	// Defaults always unmarshal cleanly.
	_ = v.Unmarshal(cfg)
	return cfg
}
