package main

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/planforge/planforge/internal/config"
	"github.com/planforge/planforge/internal/llm"
)

// createCompleter builds the LLM provider selected by configuration.
// Flag overrides for provider and model take precedence over config.
func createCompleter(cfg *config.Config, providerOverride, modelOverride string) (llm.Completer, error) {
	provider := cfg.Provider
	if providerOverride != "" {
		provider = providerOverride
	}

	switch provider {
	case config.ProviderAnthropic, config.ProviderBedrock:
		model := cfg.Anthropic.Model
		if modelOverride != "" {
			model = modelOverride
		}
		return llm.NewAnthropicClient(llm.AnthropicConfig{
			Model:         anthropic.Model(model),
			APIKey:        cfg.Anthropic.APIKey,
			UseAWSBedrock: provider == config.ProviderBedrock,
			AWSRegion:     cfg.AWS.Region,
			AWSProfile:    cfg.AWS.Profile,
		})

	case config.ProviderOpenAI:
		model := cfg.OpenAI.Model
		if modelOverride != "" {
			model = modelOverride
		}
		return llm.NewOpenAIClient(llm.OpenAIConfig{
			Model:   model,
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
		})

	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}
