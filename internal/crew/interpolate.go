package crew

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// placeholderPattern matches {snake_case} input slots in task descriptions.
var placeholderPattern = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// Inputs are the per-run values interpolated into task descriptions.
type Inputs struct {
	// Project is the project name (e.g., "Website").
	Project string
	// Industry is the industry context (e.g., "Technology").
	Industry string
	// Objectives states what the project is trying to achieve.
	Objectives string
	// TeamMembers lists the team, one member per line.
	TeamMembers string
	// Requirements lists the project requirements.
	Requirements string
}

// Map returns the inputs keyed by their placeholder names.
func (in Inputs) Map() map[string]string {
	return map[string]string{
		"project":              in.Project,
		"industry":             in.Industry,
		"project_objectives":   in.Objectives,
		"team_members":         in.TeamMembers,
		"project_requirements": in.Requirements,
	}
}

// Validate checks that the core inputs are present.
func (in Inputs) Validate() error {
	if strings.TrimSpace(in.Project) == "" {
		return fmt.Errorf("inputs: project is required")
	}
	if strings.TrimSpace(in.Objectives) == "" {
		return fmt.Errorf("inputs: project objectives are required")
	}
	return nil
}

// Interpolate replaces every {placeholder} in the template with its value
// from values. A placeholder with no corresponding value is an error: a
// task description must never reach the model with an unfilled slot.
func Interpolate(template string, values map[string]string) (string, error) {
	var missing []string

	result := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := match[1 : len(match)-1]
		val, ok := values[key]
		if !ok {
			missing = append(missing, key)
			return match
		}
		return val
	})

	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("unresolved placeholders: %s", strings.Join(dedupe(missing), ", "))
	}
	return result, nil
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
