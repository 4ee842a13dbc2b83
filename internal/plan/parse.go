package plan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// fencedJSONPattern matches a ```json ... ``` (or bare ```) fenced block.
var fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// Parse extracts a ProjectPlan from raw model output. Models wrap JSON in
// prose or markdown fences more often than not, so extraction is tried in
// order of strictness: the whole output as JSON, then the first fenced
// JSON block, then the outermost brace-delimited span.
func Parse(output string) (*ProjectPlan, error) {
	trimmed := strings.TrimSpace(output)

	candidates := []string{trimmed}
	if m := fencedJSONPattern.FindStringSubmatch(trimmed); m != nil {
		candidates = append(candidates, m[1])
	}
	if span := braceSpan(trimmed); span != "" {
		candidates = append(candidates, span)
	}

	var lastErr error
	for _, candidate := range candidates {
		var p ProjectPlan
		if err := json.Unmarshal([]byte(candidate), &p); err != nil {
			lastErr = err
			continue
		}
		if err := p.Validate(); err != nil {
			lastErr = err
			continue
		}
		return &p, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPlan, lastErr)
	}
	return nil, ErrNoPlan
}

// braceSpan returns the substring from the first '{' to the last '}', or
// empty if no such span exists.
func braceSpan(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
