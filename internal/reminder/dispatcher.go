package reminder

import (
	"fmt"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
)

// ToastSink receives in-app toasts. It must never fail; the toast channel
// is the guaranteed delivery path for reminders.
type ToastSink interface {
	Enqueue(message string, severity model.ToastSeverity)
}

// Notifier raises OS-level notifications. Raising is best-effort and may
// fail or be unavailable; the dispatcher swallows those failures.
type Notifier interface {
	Raise(title, body, tag string) error
}

// reminderTitle is the OS notification title.
const reminderTitle = "마감 알림"

// Dispatcher delivers one triggered reminder: always as an in-app toast,
// and additionally as an OS notification when permission is granted.
type Dispatcher struct {
	toasts   ToastSink
	notifier Notifier
	policy   *Policy
}

// NewDispatcher creates a dispatcher. notifier may be nil when the platform
// exposes no notification capability.
func NewDispatcher(toasts ToastSink, notifier Notifier, policy *Policy) *Dispatcher {
	return &Dispatcher{
		toasts:   toasts,
		notifier: notifier,
		policy:   policy,
	}
}

// Dispatch delivers the reminder for one (task, offset) pair. The OS
// notification is tagged with the ledger key so the platform collapses any
// accidental duplicate into a single visible notification.
func (d *Dispatcher) Dispatch(task model.Task, offset int) {
	body := fmt.Sprintf("'%s' 마감 %s 전입니다", task.Title, formatRemaining(offset))

	d.toasts.Enqueue(body, model.ToastWarning)

	if d.notifier == nil || d.policy.Permission() != PermissionGranted {
		return
	}

	tag := NewKey(task, offset).String()
	// Failure here is invisible to the user: the toast already went out.
	_ = d.notifier.Raise(reminderTitle, body, tag)
}

// formatRemaining renders an offset as a human-readable remaining time:
// whole hours as "N시간", anything else as "N분".
func formatRemaining(offset int) string {
	if offset >= 60 && offset%60 == 0 {
		return fmt.Sprintf("%d시간", offset/60)
	}
	return fmt.Sprintf("%d분", offset)
}
