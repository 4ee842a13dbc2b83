// Package llm provides the model providers used to execute crew tasks.
// It wraps the Anthropic SDK (direct API or AWS Bedrock) and the OpenAI
// chat API behind a single Completer interface, and tracks token usage
// for cost reporting.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider call succeeds but yields
// no text content.
var ErrEmptyResponse = errors.New("llm: model returned no text content")

// Request is a single completion request against a provider.
type Request struct {
	// System is the system prompt (the agent's role framing).
	System string
	// Prompt is the user-turn prompt (the task description plus context).
	Prompt string
	// MaxTokens caps the completion length. Providers apply their own
	// default when zero.
	MaxTokens int
}

// Response is the provider's answer to a Request.
type Response struct {
	// Text is the concatenated text content of the completion.
	Text string
	// InputTokens is the prompt token count reported by the provider.
	InputTokens int64
	// OutputTokens is the completion token count reported by the provider.
	OutputTokens int64
}

// Completer executes a single-turn completion against a model.
type Completer interface {
	// Complete sends the request and returns the model's response.
	Complete(ctx context.Context, req Request) (*Response, error)
	// Model returns the identifier of the model in use.
	Model() string
}
