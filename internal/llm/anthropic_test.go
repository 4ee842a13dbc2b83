package llm

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestTranslateModelForBedrock(t *testing.T) {
	tests := []struct {
		name  string
		model anthropic.Model
		want  anthropic.Model
	}{
		{
			name:  "sonnet 4 maps to inference profile",
			model: anthropic.ModelClaudeSonnet4_20250514,
			want:  "us.anthropic.claude-sonnet-4-20250514-v1:0",
		},
		{
			name:  "haiku 3.5 maps to inference profile",
			model: anthropic.ModelClaude3_5Haiku20241022,
			want:  "us.anthropic.claude-3-5-haiku-20241022-v1:0",
		},
		{
			name:  "already translated model passes through",
			model: "us.anthropic.claude-sonnet-4-20250514-v1:0",
			want:  "us.anthropic.claude-sonnet-4-20250514-v1:0",
		},
		{
			name:  "unknown model passes through",
			model: "some-custom-model",
			want:  "some-custom-model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translateModelForBedrock(tt.model); got != tt.want {
				t.Errorf("translateModelForBedrock(%q) = %q, want %q", tt.model, got, tt.want)
			}
		})
	}
}

func TestNewAnthropicClientRequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := NewAnthropicClient(AnthropicConfig{})
	if err == nil {
		t.Fatal("expected error when no API key is available")
	}
}

func TestNewAnthropicClientDefaultModel(t *testing.T) {
	client, err := NewAnthropicClient(AnthropicConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != string(anthropic.ModelClaudeSonnet4_20250514) {
		t.Errorf("expected default model, got %q", client.Model())
	}
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewOpenAIClient(OpenAIConfig{})
	if err == nil {
		t.Fatal("expected error when no API key is available")
	}
}

func TestNewOpenAIClientDefaultModel(t *testing.T) {
	client, err := NewOpenAIClient(OpenAIConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() == "" {
		t.Error("expected a default model to be set")
	}
}
