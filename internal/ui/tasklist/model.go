package tasklist

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ChoiBongGeun/DailyQuest/internal/keys"
	"github.com/ChoiBongGeun/DailyQuest/internal/model"
	"github.com/ChoiBongGeun/DailyQuest/internal/store"
	"github.com/ChoiBongGeun/DailyQuest/internal/theme"
)

// TasksLoadedMsg is sent when a bucket has been loaded from the store.
type TasksLoadedMsg struct {
	Bucket string
	Tasks  []model.Task
}

// SelectedTaskMsg is sent when a user selects a task to view details.
type SelectedTaskMsg struct {
	TaskID int64
}

// buckets is the tab order for the three cached snapshot lists.
var buckets = []string{
	model.BucketToday,
	model.BucketWeek,
	model.BucketOverdue,
}

// bucketLabels maps bucket names to their tab labels.
var bucketLabels = map[string]string{
	model.BucketToday:   "오늘",
	model.BucketWeek:    "이번 주",
	model.BucketOverdue: "기한 지남",
}

// Model is the main task list view component: a tab strip over the three
// snapshot buckets and a list of the active bucket's tasks.
type Model struct {
	list  list.Model
	store store.Store
	keys  *keys.KeyMap

	bucket string

	// syncStale is heap-allocated and shared with the item delegate so
	// the flag survives the value copies Bubble Tea makes of this model.
	syncStale *bool

	width  int
	height int
}

// New creates a new task list model showing the today bucket.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	m := Model{
		store:     s,
		keys:      k,
		bucket:    model.BucketToday,
		syncStale: new(bool),
		width:     width,
		height:    height,
	}

	delegate := ItemDelegate{syncStale: m.syncStale}
	l := list.New([]list.Item{}, delegate, width, height-3)
	l.SetShowTitle(false)
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	m.list = l

	return m
}

// Init returns a command that loads the initial bucket.
func (m Model) Init() tea.Cmd {
	return m.LoadTasks()
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		if msg.Bucket != m.bucket {
			return m, nil
		}
		items := make([]list.Item, len(msg.Tasks))
		for i, task := range msg.Tasks {
			items[i] = TaskItem{Task: task}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleKeys processes key input for bucket switching and selection.
func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(TaskItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedTaskMsg{TaskID: item.Task.ID}
		}

	case key.Matches(msg, m.keys.BucketToday):
		return m.switchBucket(model.BucketToday)

	case key.Matches(msg, m.keys.BucketWeek):
		return m.switchBucket(model.BucketWeek)

	case key.Matches(msg, m.keys.BucketOverdue):
		return m.switchBucket(model.BucketOverdue)

	case key.Matches(msg, m.keys.NextBucket):
		for i, b := range buckets {
			if b == m.bucket {
				return m.switchBucket(buckets[(i+1)%len(buckets)])
			}
		}
		return m.switchBucket(model.BucketToday)
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// switchBucket changes the active bucket and reloads it from the store.
func (m Model) switchBucket(bucket string) (Model, tea.Cmd) {
	if bucket == m.bucket {
		return m, nil
	}
	m.bucket = bucket
	return m, m.LoadTasks()
}

// Bucket returns the active bucket name.
func (m Model) Bucket() string {
	return m.bucket
}

// SetSyncStale marks whether the last sync pass failed; stale rows render
// a warning indicator.
func (m *Model) SetSyncStale(stale bool) {
	*m.syncStale = stale
}

// View renders the tab strip and the active bucket's list.
func (m Model) View() string {
	tabs := m.renderTabs()

	if len(m.list.Items()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, tabs, m.renderEmptyState())
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabs, m.list.View())
}

// renderTabs draws the bucket tab strip.
func (m Model) renderTabs() string {
	rendered := make([]string, 0, len(buckets))
	for _, b := range buckets {
		label := bucketLabels[b]
		if b == m.bucket {
			rendered = append(rendered, theme.ActiveTabStyle.Render(label))
		} else {
			rendered = append(rendered, theme.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderEmptyState shows guidance text when the active bucket is empty.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 3).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	return style.Render("할 일이 없습니다")
}

// LoadTasks returns a tea.Cmd that queries the store for the active bucket.
func (m Model) LoadTasks() tea.Cmd {
	bucket := m.bucket
	s := m.store
	return func() tea.Msg {
		tasks, err := s.GetBucket(context.Background(), bucket)
		if err != nil {
			return TasksLoadedMsg{Bucket: bucket, Tasks: nil}
		}
		return TasksLoadedMsg{Bucket: bucket, Tasks: tasks}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
}
