package app

import (
	"testing"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
)

func TestToastRelayDeliversInOrder(t *testing.T) {
	relay := NewToastRelay()

	relay.Enqueue("first", model.ToastWarning)
	relay.Enqueue("second", model.ToastInfo)

	msg := relay.Wait()()
	toast, ok := msg.(ToastMsg)
	if !ok {
		t.Fatalf("Wait returned %T, want ToastMsg", msg)
	}
	if toast.Toast.Message != "first" || toast.Toast.Severity != model.ToastWarning {
		t.Fatalf("got %+v, want first/warning", toast.Toast)
	}

	msg = relay.Wait()()
	toast = msg.(ToastMsg)
	if toast.Toast.Message != "second" {
		t.Fatalf("got %q, want second", toast.Toast.Message)
	}
}

func TestToastRelayNeverBlocksWhenFull(t *testing.T) {
	relay := NewToastRelay()

	// Overfill the queue; the extra enqueues must return immediately.
	for i := 0; i < 100; i++ {
		relay.Enqueue("overflow", model.ToastWarning)
	}

	// The queued portion is still deliverable.
	msg := relay.Wait()()
	if _, ok := msg.(ToastMsg); !ok {
		t.Fatalf("Wait returned %T, want ToastMsg", msg)
	}
}

func TestToastRelayAssignsUniqueIDs(t *testing.T) {
	relay := NewToastRelay()

	relay.Enqueue("a", model.ToastWarning)
	relay.Enqueue("a", model.ToastWarning)

	first := relay.Wait()().(ToastMsg).Toast
	second := relay.Wait()().(ToastMsg).Toast

	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("toast IDs not unique: %q vs %q", first.ID, second.ID)
	}
}
