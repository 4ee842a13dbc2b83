package plan

import (
	"fmt"
	"strings"
)

// RenderTaskTable renders the task estimates as an aligned text table
// suitable for terminal display and the task details report.
func RenderTaskTable(tasks []TaskEstimate) string {
	rows := make([][]string, 0, len(tasks)+1)
	rows = append(rows, []string{"TASK", "HOURS", "RESOURCES"})
	for _, task := range tasks {
		rows = append(rows, []string{
			task.TaskName,
			fmt.Sprintf("%.1f", task.EstimatedTimeHours),
			strings.Join(task.RequiredResources, ", "),
		})
	}
	return renderRows(rows)
}

// RenderMilestoneTable renders the milestones as an aligned text table.
func RenderMilestoneTable(milestones []Milestone) string {
	rows := make([][]string, 0, len(milestones)+1)
	rows = append(rows, []string{"MILESTONE", "TASKS"})
	for _, m := range milestones {
		rows = append(rows, []string{
			m.MilestoneName,
			strings.Join(m.Tasks, ", "),
		})
	}
	return renderRows(rows)
}

// renderRows pads each column to its widest cell and joins rows with
// two-space separators.
func renderRows(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			// Last column is not padded to avoid trailing spaces.
			if i == len(row)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
