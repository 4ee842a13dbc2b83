package llm

import (
	"sync"

	"github.com/planforge/planforge/pkg/models"
)

// Pricing holds per-model token pricing in USD per million tokens.
type Pricing struct {
	// InputPerMTok is the cost of one million input tokens.
	InputPerMTok float64
	// OutputPerMTok is the cost of one million output tokens.
	OutputPerMTok float64
}

// Cost returns the USD cost of the given token counts under this pricing.
func (p Pricing) Cost(inputTok, outputTok int64) float64 {
	return float64(inputTok)/1_000_000*p.InputPerMTok +
		float64(outputTok)/1_000_000*p.OutputPerMTok
}

// TokenTracker tracks token usage across model calls.
type TokenTracker struct {
	mu        sync.Mutex
	inputTok  int64
	outputTok int64
	calls     int
}

// NewTokenTracker creates a new token tracker.
func NewTokenTracker() *TokenTracker {
	return &TokenTracker{}
}

// Add records token usage from a model call.
func (t *TokenTracker) Add(input, output int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inputTok += input
	t.outputTok += output
	t.calls++
}

// Usage returns a snapshot of the tracked usage.
func (t *TokenTracker) Usage() models.Usage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return models.Usage{
		InputTokens:  t.inputTok,
		OutputTokens: t.outputTok,
		Calls:        t.calls,
	}
}

// Reset clears all tracked token usage.
func (t *TokenTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inputTok = 0
	t.outputTok = 0
	t.calls = 0
}

// Cost estimates the USD cost of the tracked usage under the given pricing.
func (t *TokenTracker) Cost(p Pricing) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return p.Cost(t.inputTok, t.outputTok)
}
