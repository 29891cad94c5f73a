package model

import "time"

// Priority levels as used by the DailyQuest backend.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Snapshot buckets the client keeps cached locally. Each bucket mirrors one
// backend list endpoint and is replaced wholesale on every sync.
const (
	BucketToday   = "today"
	BucketWeek    = "week"
	BucketOverdue = "overdue"
)

// Task is the client-side representation of a DailyQuest task. Only the
// fields the terminal client displays or schedules reminders from are kept.
type Task struct {
	// ID is the backend's numeric task identifier.
	ID int64 `json:"id"`

	// ProjectID is the owning project, nil for inbox tasks.
	ProjectID *int64 `json:"project_id,omitempty"`

	// ProjectName and ProjectColor are denormalized for display.
	ProjectName  string `json:"project_name,omitempty"`
	ProjectColor string `json:"project_color,omitempty"`

	// Title is the task summary shown in lists and reminder messages.
	Title string `json:"title"`

	// Description is the optional long-form body.
	Description string `json:"description,omitempty"`

	// Priority is one of the Priority* constants.
	Priority string `json:"priority"`

	// DueDate is the local calendar date in YYYY-MM-DD form, empty when
	// the task has no deadline. No timezone is attached; due dates are
	// always interpreted in the device's local zone.
	DueDate string `json:"due_date,omitempty"`

	// DueTime is the local time of day in HH:MM form, empty when the task
	// has a date but no specific time.
	DueTime string `json:"due_time,omitempty"`

	// IsCompleted marks the task done. Completed tasks never remind.
	IsCompleted bool `json:"is_completed"`

	// CompletedAt is when the task was completed, zero otherwise.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// ReminderOffsets is the per-task list of minutes-before-due reminder
	// thresholds. When nil or empty the user's global defaults apply;
	// when non-empty it replaces the defaults entirely for this task.
	ReminderOffsets []int `json:"reminder_offsets,omitempty"`

	// CreatedAt and UpdatedAt are backend timestamps.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// FetchedAt is when this task was last retrieved from the backend.
	FetchedAt time.Time `json:"fetched_at"`
}

// HasDeadline reports whether the task carries both a due date and a due
// time. Tasks with only a date are shown as all-day and never remind.
func (t Task) HasDeadline() bool {
	return t.DueDate != "" && t.DueTime != ""
}
