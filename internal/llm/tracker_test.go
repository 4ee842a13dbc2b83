package llm

import (
	"math"
	"sync"
	"testing"
)

func TestTokenTrackerAdd(t *testing.T) {
	tracker := NewTokenTracker()
	tracker.Add(1000, 500)
	tracker.Add(2000, 250)

	usage := tracker.Usage()
	if usage.InputTokens != 3000 {
		t.Errorf("expected 3000 input tokens, got %d", usage.InputTokens)
	}
	if usage.OutputTokens != 750 {
		t.Errorf("expected 750 output tokens, got %d", usage.OutputTokens)
	}
	if usage.Calls != 2 {
		t.Errorf("expected 2 calls, got %d", usage.Calls)
	}
}

func TestTokenTrackerReset(t *testing.T) {
	tracker := NewTokenTracker()
	tracker.Add(100, 100)
	tracker.Reset()

	usage := tracker.Usage()
	if usage.InputTokens != 0 || usage.OutputTokens != 0 || usage.Calls != 0 {
		t.Errorf("expected zeroed usage after reset, got %+v", usage)
	}
}

func TestTokenTrackerCost(t *testing.T) {
	tracker := NewTokenTracker()
	tracker.Add(1_000_000, 1_000_000)

	pricing := Pricing{InputPerMTok: 3.0, OutputPerMTok: 15.0}
	if got := tracker.Cost(pricing); math.Abs(got-18.0) > 1e-9 {
		t.Errorf("expected cost 18.0, got %f", got)
	}
}

func TestPricingCost(t *testing.T) {
	pricing := Pricing{InputPerMTok: 0.15, OutputPerMTok: 0.60}
	got := pricing.Cost(2_000_000, 500_000)
	want := 0.30 + 0.30
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected cost %f, got %f", want, got)
	}
}

func TestTokenTrackerConcurrentAdd(t *testing.T) {
	tracker := NewTokenTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Add(10, 5)
		}()
	}
	wg.Wait()

	usage := tracker.Usage()
	if usage.InputTokens != 500 {
		t.Errorf("expected 500 input tokens, got %d", usage.InputTokens)
	}
	if usage.OutputTokens != 250 {
		t.Errorf("expected 250 output tokens, got %d", usage.OutputTokens)
	}
	if usage.Calls != 50 {
		t.Errorf("expected 50 calls, got %d", usage.Calls)
	}
}
