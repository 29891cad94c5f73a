package reminder

import (
	"testing"
	"time"
)

func TestEvaluateMinutesUntilDue(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		dueDate string
		dueTime string
		want    int
	}{
		{"one hour ahead", "2026-03-14", "11:00", 60},
		{"ten minutes ahead", "2026-03-14", "10:10", 10},
		{"next day", "2026-03-15", "10:00", 24 * 60},
		{"one minute ahead", "2026-03-14", "10:01", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Evaluate(now, tt.dueDate, tt.dueTime)
			if !ok {
				t.Fatalf("Evaluate(%q, %q) not ok", tt.dueDate, tt.dueTime)
			}
			if got != tt.want {
				t.Fatalf("Evaluate(%q, %q) = %d, want %d", tt.dueDate, tt.dueTime, got, tt.want)
			}
		})
	}
}

func TestEvaluateFloorsPartialMinutes(t *testing.T) {
	// 59 minutes 30 seconds remaining floors to 59.
	now := time.Date(2026, 3, 14, 10, 0, 30, 0, time.Local)

	got, ok := Evaluate(now, "2026-03-14", "11:00")
	if !ok {
		t.Fatal("Evaluate not ok")
	}
	if got != 59 {
		t.Fatalf("Evaluate = %d, want 59", got)
	}
}

func TestEvaluateRejectsPastAndPresent(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		dueDate string
		dueTime string
	}{
		{"yesterday", "2026-03-13", "10:00"},
		{"earlier today", "2026-03-14", "09:59"},
		{"exactly now", "2026-03-14", "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Evaluate(now, tt.dueDate, tt.dueTime); ok {
				t.Fatalf("Evaluate(%q, %q) ok, want invalid", tt.dueDate, tt.dueTime)
			}
		})
	}
}

func TestEvaluateRejectsMalformedInput(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		dueDate string
		dueTime string
	}{
		{"invalid month and day", "2026-13-40", "10:30"},
		{"month zero", "2026-00-10", "10:30"},
		{"day zero", "2026-05-00", "10:30"},
		{"hour out of range", "2026-03-15", "24:00"},
		{"minute out of range", "2026-03-15", "10:60"},
		{"non-numeric date", "2026-ab-14", "10:30"},
		{"non-numeric time", "2026-03-15", "aa:30"},
		{"missing date parts", "2026-03", "10:30"},
		{"missing time parts", "2026-03-15", "10"},
		{"empty date", "", "10:30"},
		{"empty time", "2026-03-15", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Evaluate(now, tt.dueDate, tt.dueTime); ok {
				t.Fatalf("Evaluate(%q, %q) ok, want invalid", tt.dueDate, tt.dueTime)
			}
		})
	}
}
