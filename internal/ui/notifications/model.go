// Package notifications is the notification center overlay: it lists the
// unread "new task" entries recorded by the sync poller and marks them read
// on close.
package notifications

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ChoiBongGeun/DailyQuest/internal/keys"
	"github.com/ChoiBongGeun/DailyQuest/internal/model"
	"github.com/ChoiBongGeun/DailyQuest/internal/store"
	"github.com/ChoiBongGeun/DailyQuest/internal/theme"
)

// DoneMsg signals the notification center should close.
type DoneMsg struct{}

// loadedMsg carries the unread notifications from the store.
type loadedMsg struct {
	notifications []model.Notification
}

// Model is the notification center view.
type Model struct {
	store         store.Store
	keys          *keys.KeyMap
	notifications []model.Notification
	width, height int
}

// New creates a notification center model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		store:  s,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init loads the unread notifications.
func (m Model) Init() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		notifications, err := s.GetUnreadNotifications(context.Background())
		if err != nil {
			return loadedMsg{}
		}
		return loadedMsg{notifications: notifications}
	}
}

// Update handles messages for the notification center.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.notifications = msg.notifications
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Back) {
			return m, m.close()
		}
	}

	return m, nil
}

// close marks every listed notification read, then signals the parent.
// Marking happens before DoneMsg so the refreshed unread badge is accurate.
func (m Model) close() tea.Cmd {
	s := m.store
	notifications := m.notifications
	return func() tea.Msg {
		ctx := context.Background()
		for _, n := range notifications {
			_ = s.MarkNotificationRead(ctx, n.ID)
		}
		return DoneMsg{}
	}
}

// View renders the notification list.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("알림 센터"))
	b.WriteString("\n")

	if len(m.notifications) == 0 {
		b.WriteString(theme.HelpStyle.Render("새 알림이 없습니다"))
	}
	for _, n := range m.notifications {
		b.WriteString(theme.ListItemStyle.Render(n.Message))
		b.WriteString(theme.DueDateStyle.Render("  " + n.CreatedAt.Format("15:04")))
		b.WriteString("\n")
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(b.String())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
