package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ChoiBongGeun/DailyQuest/internal/keys"
	"github.com/ChoiBongGeun/DailyQuest/internal/model"
	"github.com/ChoiBongGeun/DailyQuest/internal/reminder"
	"github.com/ChoiBongGeun/DailyQuest/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// DetailLoadedMsg carries the loaded task.
type DetailLoadedMsg struct {
	Task *model.Task
}

// Model is the task detail view component.
type Model struct {
	task     *model.Task
	policy   *reminder.Policy
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
	loading  bool
}

// New creates a new detail view model. The policy supplies the global
// default offsets shown for tasks without their own.
func New(policy *reminder.Policy, keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		policy:   policy,
		viewport: vp,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetLoading toggles the loading placeholder.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DetailLoadedMsg:
		m.task = msg.Task
		m.loading = false
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg {
				return BackMsg{}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.loading {
		loadingStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return loadingStyle.Render("불러오는 중...")
	}

	if m.task == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("선택된 할 일이 없습니다")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.task == nil {
		return ""
	}

	task := *m.task
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	title := titleStyle.Render(task.Title)
	if task.IsCompleted {
		title = theme.DimmedStyle.Render(task.Title)
	}
	sections = append(sections, title)

	var meta []string
	meta = append(meta, theme.PriorityStyle(task.Priority).Render("우선순위: "+task.Priority))
	if task.ProjectName != "" {
		meta = append(meta, theme.ProjectStyle(task.ProjectColor).Render("프로젝트: "+task.ProjectName))
	}
	sections = append(sections, strings.Join(meta, "  "))

	if task.DueDate != "" {
		due := "마감: " + task.DueDate
		if task.DueTime != "" {
			due += " " + task.DueTime
		}
		sections = append(sections, theme.DueDateStyle.Render(due))
	}

	if line := m.reminderLine(task); line != "" {
		sections = append(sections, line)
	}

	if task.Description != "" {
		sections = append(sections, "", task.Description)
	}

	if task.CompletedAt != nil {
		sections = append(sections, "",
			theme.HelpStyle.Render("완료: "+task.CompletedAt.Format("2006-01-02 15:04")))
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(strings.Join(sections, "\n"))
}

// reminderLine summarizes the task's reminder state: minutes until due and
// the offset thresholds in effect.
func (m Model) reminderLine(task model.Task) string {
	if task.IsCompleted || !task.HasDeadline() {
		return ""
	}

	offsets := reminder.EffectiveOffsets(task, m.policy.Offsets())
	if len(offsets) == 0 {
		return ""
	}

	parts := make([]string, len(offsets))
	for i, o := range offsets {
		parts[i] = fmt.Sprintf("%d분 전", o)
	}
	line := "알림: " + strings.Join(parts, ", ")

	if minutes, ok := reminder.Evaluate(time.Now(), task.DueDate, task.DueTime); ok {
		line += fmt.Sprintf("  (마감까지 %d분)", minutes)
	}

	return theme.HelpStyle.Render(line)
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.task != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
