package plan

import "regexp"

// ganttPattern matches a "### Gantt Chart" heading followed by a markdown
// table. The header row, separator row, and all body rows are captured so
// the chart can be re-emitted verbatim.
var ganttPattern = regexp.MustCompile(`### Gantt Chart\n((?:\|[^\n]*\n?)+)`)

// ExtractGantt extracts the Gantt chart table from a run transcript.
// Returns the heading plus the full table, or empty if no chart is present.
func ExtractGantt(text string) string {
	m := ganttPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return "### Gantt Chart\n" + m[1]
}
