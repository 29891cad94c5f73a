package dailyquest

import (
	"context"
	"fmt"
	"time"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
	"github.com/ChoiBongGeun/DailyQuest/internal/source"
)

// Adapter implements source.Source against the DailyQuest backend.
type Adapter struct {
	client *Client
}

// New creates a DailyQuest source adapter.
func New(baseURL, token string) *Adapter {
	return &Adapter{client: NewClient(baseURL, token)}
}

// ValidateConnection verifies the token by fetching the current user.
func (a *Adapter) ValidateConnection(ctx context.Context) (string, error) {
	var user userPayload
	if err := a.client.get(ctx, "/api/users/me", &user); err != nil {
		return "", fmt.Errorf("validating connection: %w", err)
	}
	return fmt.Sprintf("Connected as %s (%s)", user.Nickname, user.Email), nil
}

// FetchSnapshot retrieves the today, week, and overdue task lists in one
// sync pass. A failure in any bucket fails the whole snapshot so the local
// cache is never left half-replaced.
func (a *Adapter) FetchSnapshot(ctx context.Context) (*source.Snapshot, error) {
	now := time.Now()

	today, err := a.fetchBucket(ctx, "/api/tasks/today", now)
	if err != nil {
		return nil, err
	}
	week, err := a.fetchBucket(ctx, "/api/tasks/week", now)
	if err != nil {
		return nil, err
	}
	overdue, err := a.fetchBucket(ctx, "/api/tasks/overdue", now)
	if err != nil {
		return nil, err
	}

	return &source.Snapshot{Today: today, Week: week, Overdue: overdue}, nil
}

// FetchProjects retrieves the user's projects.
func (a *Adapter) FetchProjects(ctx context.Context) ([]model.Project, error) {
	var payloads []projectPayload
	if err := a.client.get(ctx, "/api/projects", &payloads); err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}

	projects := make([]model.Project, 0, len(payloads))
	for _, p := range payloads {
		projects = append(projects, model.Project{
			ID:        p.ID,
			Name:      p.Name,
			Color:     p.Color,
			TaskCount: p.TaskCount,
		})
	}
	return projects, nil
}

// fetchBucket retrieves one task list endpoint and converts its payloads.
func (a *Adapter) fetchBucket(ctx context.Context, path string, fetchedAt time.Time) ([]model.Task, error) {
	var payloads []taskPayload
	if err := a.client.get(ctx, path, &payloads); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}

	tasks := make([]model.Task, 0, len(payloads))
	for _, p := range payloads {
		tasks = append(tasks, convertTask(p, fetchedAt))
	}
	return tasks, nil
}

// convertTask maps a wire payload to the client's task model. Due date and
// time stay as the backend's wall-clock strings; the reminder engine parses
// and validates them at evaluation time.
func convertTask(p taskPayload, fetchedAt time.Time) model.Task {
	t := model.Task{
		ID:              p.ID,
		ProjectID:       p.ProjectID,
		ProjectName:     p.ProjectName,
		ProjectColor:    p.ProjectColor,
		Title:           p.Title,
		Description:     p.Description,
		Priority:        p.Priority,
		DueDate:         p.DueDate,
		DueTime:         normalizeDueTime(p.DueTime),
		IsCompleted:     p.IsCompleted,
		ReminderOffsets: p.ReminderOffsets,
		CreatedAt:       parseBackendTime(p.CreatedAt),
		UpdatedAt:       parseBackendTime(p.UpdatedAt),
		FetchedAt:       fetchedAt,
	}

	if p.CompletedAt != "" {
		completed := parseBackendTime(p.CompletedAt)
		if !completed.IsZero() {
			t.CompletedAt = &completed
		}
	}

	return t
}

// normalizeDueTime trims a backend LocalTime ("14:30" or "14:30:00") to the
// HH:MM form the reminder engine expects. Anything else passes through
// untouched and is rejected later by the evaluator.
func normalizeDueTime(s string) string {
	if len(s) == 8 && s[2] == ':' && s[5] == ':' {
		return s[:5]
	}
	return s
}

// backendTimeLayouts are the timestamp forms the backend emits: LocalDateTime
// without a zone, with or without fractional seconds, plus RFC3339 for safety.
var backendTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
}

// parseBackendTime parses a backend timestamp in the local zone, returning
// the zero time for empty or unparseable input.
func parseBackendTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range backendTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
