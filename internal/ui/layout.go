package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ChoiBongGeun/DailyQuest/internal/theme"
)

// Layout manages the terminal layout dimensions: a one-line header, the
// main content area, and a one-line status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the top header bar with a title on the left and the
// sync status on the right, filling the gap with the header background.
func (l Layout) RenderHeader(title string, syncStatus string) string {
	left := theme.HeaderStyle.Render(title)
	right := theme.HeaderStyle.Align(lipgloss.Right).Render(syncStatus)

	filler := fillGap(theme.HeaderStyle, l.Width-lipgloss.Width(left)-lipgloss.Width(right))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)
	filler := fillGap(theme.StatusBarStyle, l.Width-lipgloss.Width(rendered))

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// fillGap renders a run of background-colored spaces in the bar's style.
func fillGap(bar lipgloss.Style, width int) string {
	if width < 0 {
		width = 0
	}
	return bar.Render(
		lipgloss.NewStyle().
			Width(width).
			Background(bar.GetBackground()).
			Render(""),
	)
}
