package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ChoiBongGeun/DailyQuest/internal/keys"
	"github.com/ChoiBongGeun/DailyQuest/internal/model"
	"github.com/ChoiBongGeun/DailyQuest/internal/reminder"
	"github.com/ChoiBongGeun/DailyQuest/internal/store"
	appsync "github.com/ChoiBongGeun/DailyQuest/internal/sync"
	"github.com/ChoiBongGeun/DailyQuest/internal/theme"
	"github.com/ChoiBongGeun/DailyQuest/internal/ui"
	"github.com/ChoiBongGeun/DailyQuest/internal/ui/command"
	"github.com/ChoiBongGeun/DailyQuest/internal/ui/detail"
	helpview "github.com/ChoiBongGeun/DailyQuest/internal/ui/help"
	"github.com/ChoiBongGeun/DailyQuest/internal/ui/notifications"
	"github.com/ChoiBongGeun/DailyQuest/internal/ui/settings"
	"github.com/ChoiBongGeun/DailyQuest/internal/ui/tasklist"
)

// unreadCountMsg carries the number of unread notifications to the UI.
type unreadCountMsg struct {
	count int
}

// taskDetailMsg carries a task loaded for the detail view.
type taskDetailMsg struct {
	task *model.Task
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewSettings
	ViewHelp
	ViewCommand
	ViewNotifications
)

// Model is the root Bubble Tea model that manages view routing, layout,
// the sync poller, and the reminder engine's toast overlay.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        store.Store
	keys         *keys.KeyMap

	taskList         tasklist.Model
	detail           detail.Model
	helpView         helpview.Model
	commandView      command.Model
	settingsView     settings.Model
	notificationView notifications.Model

	poller    *appsync.Poller
	scheduler *reminder.Scheduler
	toasts    *ToastRelay

	activeToasts []model.Toast

	ready       bool
	unreadCount int
	syncFailed  bool
	authError   bool
}

// New creates the root application model. prober may be nil when the
// platform exposes no notifier.
func New(
	s store.Store,
	policy *reminder.Policy,
	sched *reminder.Scheduler,
	poller *appsync.Poller,
	toasts *ToastRelay,
	prober settings.PermissionProber,
) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView:      ViewList,
		store:            s,
		keys:             k,
		taskList:         tasklist.New(s, k, 80, 24),
		detail:           detail.New(policy, k, 80, 24),
		helpView:         helpview.New(k, 80, 24),
		commandView:      command.New(80, 24),
		settingsView:     settings.New(policy, prober, k, 80, 24),
		notificationView: notifications.New(s, k, 80, 24),
		poller:           poller,
		scheduler:        sched,
		toasts:           toasts,
	}
}

// Init starts the reminder scheduler and the sync poller, loads the task
// list, and begins listening for toasts.
func (m Model) Init() tea.Cmd {
	m.scheduler.Start()

	return tea.Batch(
		m.taskList.Init(),
		m.poller.Start(),
		m.toasts.Wait(),
		m.fetchUnreadCount(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)
		m.notificationView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case appsync.SyncResultMsg:
		m.syncFailed = msg.Error != nil
		m.authError = msg.AuthError
		m.taskList.SetSyncStale(m.syncFailed)

		return m, tea.Batch(
			m.taskList.LoadTasks(),
			m.poller.WaitForNextResult(),
			m.fetchUnreadCount(),
		)

	case ToastMsg:
		m.activeToasts = append(m.activeToasts, msg.Toast)
		return m, tea.Batch(
			m.toasts.Wait(),
			expireToast(msg.Toast.ID),
		)

	case toastExpiredMsg:
		kept := m.activeToasts[:0]
		for _, t := range m.activeToasts {
			if t.ID != msg.id {
				kept = append(kept, t)
			}
		}
		m.activeToasts = kept
		return m, nil

	case unreadCountMsg:
		m.unreadCount = msg.count
		return m, nil

	case tasklist.SelectedTaskMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.SetLoading(true)
		return m, m.loadTaskDetail(msg.TaskID)

	case taskDetailMsg:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(detail.DetailLoadedMsg{Task: msg.task})
		return m, cmd

	case detail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case settings.DoneMsg:
		m.currentView = ViewList
		return m, nil

	case notifications.DoneMsg:
		m.currentView = ViewList
		return m, m.fetchUnreadCount()

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		// Global keys that work regardless of current view
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()

		case "q":
			if m.currentView == ViewList {
				return m, m.quit()
			}

		case "?":
			if m.currentView == ViewSettings || m.currentView == ViewCommand {
				break
			}
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case ":":
			if m.currentView == ViewSettings {
				break
			}
			if m.currentView == ViewCommand {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return m, m.commandView.Focus()

		case "s":
			if m.currentView == ViewList {
				m.previousView = m.currentView
				m.currentView = ViewSettings
				return m, m.settingsView.Init()
			}

		case "n":
			if m.currentView == ViewList {
				m.previousView = m.currentView
				m.currentView = ViewNotifications
				return m, m.notificationView.Init()
			}

		case "r":
			if m.currentView == ViewList {
				return m, m.poller.Refresh()
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// quit stops the background machinery and exits.
func (m Model) quit() tea.Cmd {
	m.poller.Stop()
	m.scheduler.Stop()
	return tea.Quit
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewNotifications:
		m.notificationView, cmd = m.notificationView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	headerTitle := "DailyQuest"
	if m.unreadCount > 0 {
		headerTitle = fmt.Sprintf("DailyQuest [%d new]", m.unreadCount)
	}
	header := m.layout.RenderHeader(headerTitle, m.syncStatus())
	content := m.renderContent()
	if overlay := m.renderToasts(); overlay != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, overlay, content)
	}
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.taskList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewNotifications:
		return m.notificationView.View()
	default:
		return ""
	}
}

// renderToasts stacks the active toasts above the content area.
func (m Model) renderToasts() string {
	if len(m.activeToasts) == 0 {
		return ""
	}

	lines := make([]string, len(m.activeToasts))
	for i, t := range m.activeToasts {
		lines[i] = theme.ToastStyle(string(t.Severity)).Render(t.Message)
	}
	return lipgloss.JoinVertical(lipgloss.Right, lines...)
}

// syncStatus returns a short string describing the sync state.
func (m Model) syncStatus() string {
	switch {
	case m.authError:
		return "⚠ 인증 실패"
	case m.syncFailed:
		return "⚠ 연결 안 됨"
	default:
		return "동기화됨"
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return ": close command | enter execute | esc back"
	case ViewDetail:
		return "esc back | j/k scroll"
	case ViewSettings:
		return "a add | d delete | p permission | esc back"
	case ViewNotifications:
		return "esc close"
	default:
		return "q quit | ? help | s settings | n notifications | r refresh | 1/2/3 bucket | tab next"
	}
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "refresh", "sync":
		return m, m.poller.Refresh()
	case "quit", "q":
		return m, m.quit()
	case "settings", "reminders":
		m.previousView = m.currentView
		m.currentView = ViewSettings
		return m, m.settingsView.Init()
	case "notifications":
		m.previousView = m.currentView
		m.currentView = ViewNotifications
		return m, m.notificationView.Init()
	case "today", "week", "overdue":
		m.currentView = ViewList
		var updated tasklist.Model
		var listCmd tea.Cmd
		updated, listCmd = m.taskList.Update(bucketKeyMsg(cmd))
		m.taskList = updated
		return m, listCmd
	default:
		return m, nil
	}
}

// bucketKeyMsg translates a bucket command into the list's key binding.
func bucketKeyMsg(cmd string) tea.KeyMsg {
	var r rune
	switch cmd {
	case "today":
		r = '1'
	case "week":
		r = '2'
	default:
		r = '3'
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// loadTaskDetail returns a command that loads a task by ID from the cache.
func (m Model) loadTaskDetail(taskID int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		task, err := s.GetTaskByID(context.Background(), taskID)
		if err != nil {
			return taskDetailMsg{task: nil}
		}
		return taskDetailMsg{task: task}
	}
}

// fetchUnreadCount returns a tea.Cmd that queries the store for the
// number of unread notifications.
func (m Model) fetchUnreadCount() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		notifications, err := s.GetUnreadNotifications(context.Background())
		if err != nil {
			return unreadCountMsg{count: 0}
		}
		return unreadCountMsg{count: len(notifications)}
	}
}
