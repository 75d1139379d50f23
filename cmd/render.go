package cmd

import (
	"fmt"

	"github.com/tasker-cli/tasker/internal/task"
)

// formatTask renders a task as "[id] status priority description".
func formatTask(t task.Task) string {
	status := "○"
	if t.Completed {
		status = "✓"
	}
	return fmt.Sprintf("[%d] %s %s %s", t.ID, status, prioritySymbol(t.Priority), t.Description)
}

func prioritySymbol(p task.Priority) string {
	switch p {
	case task.PriorityUrgent:
		return "🚨"
	case task.PriorityHigh:
		return "🔴"
	case task.PriorityMedium:
		return "🟡"
	case task.PriorityLow:
		return "🟢"
	}
	return "⚪"
}
