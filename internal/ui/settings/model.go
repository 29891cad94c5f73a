// Package settings is the reminder settings view: it edits the global
// minutes-before-due offsets and requests OS notification permission.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ChoiBongGeun/DailyQuest/internal/keys"
	"github.com/ChoiBongGeun/DailyQuest/internal/reminder"
	"github.com/ChoiBongGeun/DailyQuest/internal/theme"
)

// Mode represents the current state of the settings view.
type Mode int

const (
	ModeList      Mode = iota // List configured offsets
	ModeAddOffset             // Offset input form
)

// DoneMsg signals the settings view should close.
type DoneMsg struct{}

// PermissionProber resolves the platform's notification permission state.
type PermissionProber interface {
	Probe() reminder.Permission
}

// Model is the Bubble Tea model for the reminder settings UI.
type Model struct {
	mode   Mode
	policy *reminder.Policy
	prober PermissionProber
	keys   *keys.KeyMap

	selectedIdx int

	// Huh form for adding an offset; formOffset is its bound value.
	addForm    *huh.Form
	formOffset string

	statusMsg string

	width, height int
}

// New creates a new settings view model. prober may be nil when the
// platform exposes no notifier.
func New(policy *reminder.Policy, prober PermissionProber, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:   ModeList,
		policy: policy,
		prober: prober,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and dispatches based on current mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.mode == ModeAddOffset {
			return m.updateAddForm(msg)
		}
		return m.handleListKeys(msg)
	}

	if m.mode == ModeAddOffset {
		return m.updateAddForm(msg)
	}
	return m, nil
}

// handleListKeys processes key events in the offset list mode.
func (m Model) handleListKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	offsets := m.policy.Offsets()

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return DoneMsg{} }

	case msg.String() == "a":
		m.formOffset = ""
		m.addForm = m.buildAddForm()
		m.mode = ModeAddOffset
		return m, m.addForm.Init()

	case msg.String() == "d":
		if len(offsets) == 0 {
			return m, nil
		}
		removed := offsets[m.selectedIdx]
		m.policy.RemoveOffset(removed)
		if m.selectedIdx >= len(offsets)-1 && m.selectedIdx > 0 {
			m.selectedIdx--
		}
		m.statusMsg = fmt.Sprintf("%d분 전 알림을 삭제했습니다", removed)
		return m, nil

	case msg.String() == "p":
		if m.prober == nil {
			m.policy.SetPermission(reminder.PermissionDenied)
			m.statusMsg = "이 플랫폼에서는 OS 알림을 사용할 수 없습니다"
			return m, nil
		}
		perm := m.prober.Probe()
		m.policy.SetPermission(perm)
		if perm == reminder.PermissionGranted {
			m.statusMsg = "OS 알림이 허용되었습니다"
		} else {
			m.statusMsg = "OS 알림이 거부되었습니다"
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if len(offsets) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(offsets)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(offsets) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(offsets) - 1
			}
		}
		return m, nil
	}

	return m, nil
}

// buildAddForm constructs the offset input form.
func (m *Model) buildAddForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("알림 시점").
				Description("마감 몇 분 전에 알림을 받을지 입력하세요").
				Placeholder("예: 30").
				Value(&m.formOffset).
				Validate(validateOffset),
		),
	).WithWidth(m.formWidth())
}

func (m Model) updateAddForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.addForm == nil {
		return m, nil
	}

	mdl, cmd := m.addForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.addForm = f
	}

	if m.addForm.State == huh.StateCompleted {
		return m.saveOffset()
	}
	if m.addForm.State == huh.StateAborted {
		m.mode = ModeList
		return m, nil
	}

	return m, cmd
}

// saveOffset applies the form value to the policy.
func (m Model) saveOffset() (Model, tea.Cmd) {
	m.mode = ModeList

	minutes, err := strconv.Atoi(strings.TrimSpace(m.formOffset))
	if err != nil {
		m.statusMsg = "잘못된 입력입니다"
		return m, nil
	}

	if err := m.policy.AddOffset(minutes); err != nil {
		m.statusMsg = "1분 이상만 설정할 수 있습니다"
		return m, nil
	}

	m.statusMsg = fmt.Sprintf("%d분 전 알림을 추가했습니다", minutes)
	return m, nil
}

// View renders the settings view.
func (m Model) View() string {
	if m.mode == ModeAddOffset && m.addForm != nil {
		return theme.DetailPanelStyle.
			Width(m.width - 4).
			Render(m.addForm.View())
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(m.renderList())
}

// renderList builds the offset list with the permission state footer.
func (m Model) renderList() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("알림 설정"))
	b.WriteString("\n")

	offsets := m.policy.Offsets()
	if len(offsets) == 0 {
		b.WriteString(theme.HelpStyle.Render("설정된 알림이 없습니다"))
		b.WriteString("\n")
	}
	for i, o := range offsets {
		line := fmt.Sprintf("마감 %d분 전", o)
		if i == m.selectedIdx {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderPermission())

	if m.statusMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.HelpStyle.Render(m.statusMsg))
	}

	return b.String()
}

// renderPermission shows the last known OS notification permission state.
func (m Model) renderPermission() string {
	label := "OS 알림: "
	switch m.policy.Permission() {
	case reminder.PermissionGranted:
		return label + lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("허용됨")
	case reminder.PermissionDenied:
		return label + lipgloss.NewStyle().Foreground(theme.ColorRed).Render("거부됨")
	default:
		return label + theme.HelpStyle.Render("미설정 (p 키로 요청)")
	}
}

// SetSize updates the settings view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	return w
}

// validateOffset checks that the input parses as a positive minute count.
func validateOffset(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("숫자를 입력하세요")
	}
	if n <= 0 {
		return reminder.ErrInvalidOffset
	}
	return nil
}
