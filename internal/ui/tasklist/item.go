package tasklist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
	"github.com/ChoiBongGeun/DailyQuest/internal/theme"
)

// StalenessThreshold defines how old FetchedAt can be before
// a task is considered stale. Defaults to 5 minutes.
var StalenessThreshold = 5 * time.Minute

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	return dueLabel(i.Task)
}

// ItemDelegate implements list.ItemDelegate for rendering task rows.
type ItemDelegate struct {
	// syncStale is shared by reference with the tasklist Model; when true
	// the backend is unreachable and every row shows a staleness warning.
	syncStale *bool
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}

	task := ti.Task
	now := time.Now()

	var prefix string
	if task.IsCompleted {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	priBadge := theme.PriorityStyle(task.Priority).Render(priorityLabel(task.Priority))

	projectBadge := ""
	if task.ProjectName != "" {
		projectBadge = " " + theme.ProjectStyle(task.ProjectColor).Render(task.ProjectName)
	}

	dueStr := ""
	if due := dueLabel(task); due != "" {
		dueStr = theme.DueDateStyle.Render(" " + due)
	}

	overdueStr := ""
	if isOverdue(task, now) {
		overdueStr = theme.OverdueStyle.Render(" 지남")
	}

	// Tasks carrying their own reminder thresholds get a bell marker.
	bell := ""
	if !task.IsCompleted && task.HasDeadline() && len(task.ReminderOffsets) > 0 {
		bell = lipgloss.NewStyle().Foreground(theme.ColorYellow).Render(" ⏰")
	}

	staleStr := ""
	if d.syncStale != nil && *d.syncStale {
		staleStr = lipgloss.NewStyle().Foreground(theme.ColorYellow).Render(" ⚠")
	} else if !task.FetchedAt.IsZero() && now.Sub(task.FetchedAt) > StalenessThreshold {
		staleStr = lipgloss.NewStyle().Foreground(theme.ColorGray).Render(" ●")
	}

	line := fmt.Sprintf(
		"%s %s %s%s%s%s%s%s",
		prefix, priBadge, task.Title,
		projectBadge, bell, dueStr, overdueStr, staleStr,
	)

	if task.IsCompleted {
		line = theme.DimmedStyle.Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// dueLabel formats a task's deadline for display: "12-25 18:00" for timed
// tasks, "12-25" for all-day tasks, empty when there is no due date.
func dueLabel(task model.Task) string {
	if task.DueDate == "" {
		return ""
	}
	short := task.DueDate
	if len(short) == len("2006-01-02") {
		short = short[5:]
	}
	if task.DueTime == "" {
		return short
	}
	return short + " " + task.DueTime
}

// isOverdue reports whether the task's deadline has passed. All-day tasks
// count as overdue once their date is behind today's.
func isOverdue(task model.Task, now time.Time) bool {
	if task.IsCompleted || task.DueDate == "" {
		return false
	}
	today := now.Format("2006-01-02")
	if task.DueDate < today {
		return true
	}
	if task.DueDate > today || task.DueTime == "" {
		return false
	}
	return task.DueTime <= now.Format("15:04")
}

// priorityLabel returns a short display label for the given priority.
func priorityLabel(p string) string {
	switch p {
	case model.PriorityHigh:
		return "높음"
	case model.PriorityMedium:
		return "보통"
	case model.PriorityLow:
		return "낮음"
	default:
		return "-"
	}
}
