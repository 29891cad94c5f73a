package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
)

// toastLifetime is how long a toast stays on screen.
const toastLifetime = 5 * time.Second

// ToastMsg carries one toast from the reminder engine into the UI loop.
type ToastMsg struct {
	Toast model.Toast
}

// toastExpiredMsg removes a toast after its lifetime elapses.
type toastExpiredMsg struct {
	id string
}

// ToastRelay bridges the reminder dispatcher's goroutine into the Bubble
// Tea event loop. Enqueue never blocks, so a slow or absent UI can never
// stall a scheduler tick.
type ToastRelay struct {
	ch chan model.Toast
}

// NewToastRelay creates a relay with a buffered queue.
func NewToastRelay() *ToastRelay {
	return &ToastRelay{ch: make(chan model.Toast, 32)}
}

// Enqueue implements reminder.ToastSink. When the queue is full the toast
// is dropped; the dedup ledger has already recorded the reminder as fired.
func (r *ToastRelay) Enqueue(message string, severity model.ToastSeverity) {
	t := model.Toast{
		ID:       uuid.New().String(),
		Message:  message,
		Severity: severity,
	}
	select {
	case r.ch <- t:
	default:
	}
}

// Wait returns a tea.Cmd that delivers the next queued toast. Call again
// after each ToastMsg to keep listening.
func (r *ToastRelay) Wait() tea.Cmd {
	return func() tea.Msg {
		t, ok := <-r.ch
		if !ok {
			return nil
		}
		return ToastMsg{Toast: t}
	}
}

// expireToast schedules removal of a toast after its lifetime.
func expireToast(id string) tea.Cmd {
	return tea.Tick(toastLifetime, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
