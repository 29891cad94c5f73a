package dailyquest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/tasks/today":
			w.Write([]byte(`{"success":true,"data":[
				{"id":1,"title":"보고서 작성","priority":"HIGH",
				 "dueDate":"2026-03-14","dueTime":"18:00:00",
				 "reminderOffsets":[15],"isCompleted":false,
				 "createdAt":"2026-03-10T09:00:00","updatedAt":"2026-03-12T10:00:00"}]}`))
		case "/api/tasks/week":
			w.Write([]byte(`{"success":true,"data":[
				{"id":2,"title":"주간 회의","priority":"MEDIUM",
				 "dueDate":"2026-03-16","dueTime":"10:00:00","isCompleted":false,
				 "createdAt":"2026-03-10T09:00:00","updatedAt":"2026-03-10T09:00:00"}]}`))
		case "/api/tasks/overdue":
			w.Write([]byte(`{"success":true,"data":[]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := New(srv.URL, "token")

	snap, err := a.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("FetchSnapshot: %v", err)
	}

	if len(snap.Today) != 1 || len(snap.Week) != 1 || len(snap.Overdue) != 0 {
		t.Fatalf("snapshot sizes = %d/%d/%d, want 1/1/0",
			len(snap.Today), len(snap.Week), len(snap.Overdue))
	}

	task := snap.Today[0]
	if task.ID != 1 || task.Title != "보고서 작성" {
		t.Fatalf("task = %+v", task)
	}
	if task.DueTime != "18:00" {
		t.Fatalf("DueTime = %q, want 18:00 (seconds trimmed)", task.DueTime)
	}
	if len(task.ReminderOffsets) != 1 || task.ReminderOffsets[0] != 15 {
		t.Fatalf("ReminderOffsets = %v, want [15]", task.ReminderOffsets)
	}
	if task.FetchedAt.IsZero() {
		t.Fatal("FetchedAt not set")
	}
}

func TestFetchSnapshotFailsWholesale(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tasks/week" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	a := New(srv.URL, "token")

	if _, err := a.FetchSnapshot(context.Background()); err == nil {
		t.Fatal("expected error when one bucket fails")
	}
}

func TestNormalizeDueTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"18:00:00", "18:00"},
		{"18:00", "18:00"},
		{"", ""},
		{"9:5", "9:5"}, // passed through; rejected later by the evaluator
	}

	for _, tt := range tests {
		if got := normalizeDueTime(tt.in); got != tt.want {
			t.Errorf("normalizeDueTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConvertTaskCompletedAt(t *testing.T) {
	p := taskPayload{
		ID:          1,
		Title:       "done",
		IsCompleted: true,
		CompletedAt: "2026-03-13T20:15:00",
	}

	task := convertTask(p, time.Now())
	if task.CompletedAt == nil {
		t.Fatal("CompletedAt = nil, want parsed time")
	}
	if task.CompletedAt.Hour() != 20 || task.CompletedAt.Minute() != 15 {
		t.Fatalf("CompletedAt = %v", task.CompletedAt)
	}

	task = convertTask(taskPayload{ID: 2, Title: "open"}, time.Now())
	if task.CompletedAt != nil {
		t.Fatalf("CompletedAt = %v, want nil", task.CompletedAt)
	}
}
