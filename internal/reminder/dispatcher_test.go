package reminder

import (
	"errors"
	"strings"
	"testing"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
)

// recordingSink captures enqueued toasts.
type recordingSink struct {
	messages   []string
	severities []model.ToastSeverity
}

func (r *recordingSink) Enqueue(message string, severity model.ToastSeverity) {
	r.messages = append(r.messages, message)
	r.severities = append(r.severities, severity)
}

// recordingNotifier captures raised OS notifications.
type recordingNotifier struct {
	tags []string
	err  error
}

func (r *recordingNotifier) Raise(title, body, tag string) error {
	if r.err != nil {
		return r.err
	}
	r.tags = append(r.tags, tag)
	return nil
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		offset int
		want   string
	}{
		{60, "1시간"},
		{120, "2시간"},
		{10, "10분"},
		{90, "90분"},
		{1, "1분"},
	}

	for _, tt := range tests {
		if got := formatRemaining(tt.offset); got != tt.want {
			t.Errorf("formatRemaining(%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func TestDispatchAlwaysEnqueuesWarningToast(t *testing.T) {
	sink := &recordingSink{}
	notifier := &recordingNotifier{}
	policy := NewPolicy(nil, []int{60})
	policy.SetPermission(PermissionGranted)

	d := NewDispatcher(sink, notifier, policy)
	d.Dispatch(model.Task{ID: 1, Title: "보고서 제출", DueDate: "2026-03-14", DueTime: "18:00"}, 60)

	if len(sink.messages) != 1 {
		t.Fatalf("toasts = %d, want 1", len(sink.messages))
	}
	if sink.severities[0] != model.ToastWarning {
		t.Fatalf("severity = %q, want warning", sink.severities[0])
	}
	if !strings.Contains(sink.messages[0], "보고서 제출") || !strings.Contains(sink.messages[0], "1시간") {
		t.Fatalf("message %q missing title or remaining time", sink.messages[0])
	}
}

func TestDispatchTagsOSNotificationWithLedgerKey(t *testing.T) {
	sink := &recordingSink{}
	notifier := &recordingNotifier{}
	policy := NewPolicy(nil, []int{60})
	policy.SetPermission(PermissionGranted)

	task := model.Task{ID: 42, Title: "회의 준비", DueDate: "2026-03-14", DueTime: "18:00"}
	NewDispatcher(sink, notifier, policy).Dispatch(task, 10)

	if len(notifier.tags) != 1 {
		t.Fatalf("raised notifications = %d, want 1", len(notifier.tags))
	}
	if want := NewKey(task, 10).String(); notifier.tags[0] != want {
		t.Fatalf("tag = %q, want %q", notifier.tags[0], want)
	}
}

func TestDispatchSkipsOSNotificationWithoutPermission(t *testing.T) {
	for _, perm := range []Permission{PermissionDefault, PermissionDenied} {
		sink := &recordingSink{}
		notifier := &recordingNotifier{}
		policy := NewPolicy(nil, []int{60})
		policy.SetPermission(perm)

		d := NewDispatcher(sink, notifier, policy)
		d.Dispatch(model.Task{ID: 1, Title: "t", DueDate: "2026-03-14", DueTime: "18:00"}, 60)

		if len(sink.messages) != 1 {
			t.Fatalf("perm %q: toasts = %d, want 1", perm, len(sink.messages))
		}
		if len(notifier.tags) != 0 {
			t.Fatalf("perm %q: raised notifications = %d, want 0", perm, len(notifier.tags))
		}
	}
}

func TestDispatchSwallowsNotifierFailure(t *testing.T) {
	sink := &recordingSink{}
	notifier := &recordingNotifier{err: errors.New("platform restriction")}
	policy := NewPolicy(nil, []int{60})
	policy.SetPermission(PermissionGranted)

	d := NewDispatcher(sink, notifier, policy)
	d.Dispatch(model.Task{ID: 1, Title: "t", DueDate: "2026-03-14", DueTime: "18:00"}, 60)

	if len(sink.messages) != 1 {
		t.Fatalf("toasts = %d, want 1 despite notifier failure", len(sink.messages))
	}
}

func TestDispatchWithNilNotifier(t *testing.T) {
	sink := &recordingSink{}
	policy := NewPolicy(nil, []int{60})
	policy.SetPermission(PermissionGranted)

	d := NewDispatcher(sink, nil, policy)
	d.Dispatch(model.Task{ID: 1, Title: "t", DueDate: "2026-03-14", DueTime: "18:00"}, 60)

	if len(sink.messages) != 1 {
		t.Fatalf("toasts = %d, want 1", len(sink.messages))
	}
}
