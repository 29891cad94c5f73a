package store_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
	"github.com/ChoiBongGeun/DailyQuest/internal/store"
	"github.com/ChoiBongGeun/DailyQuest/tests/testutil"
)

func sampleTask(id int64) model.Task {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return model.Task{
		ID:              id,
		Title:           "작업",
		Priority:        model.PriorityMedium,
		DueDate:         "2026-03-14",
		DueTime:         "18:00",
		ReminderOffsets: []int{30},
		CreatedAt:       now,
		UpdatedAt:       now,
		FetchedAt:       now,
	}
}

func TestReplaceBucketRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	tasks := []model.Task{sampleTask(1), sampleTask(2)}
	if err := s.ReplaceBucket(ctx, model.BucketToday, tasks); err != nil {
		t.Fatalf("ReplaceBucket: %v", err)
	}

	got, err := s.GetBucket(ctx, model.BucketToday)
	if err != nil {
		t.Fatalf("GetBucket: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetBucket returned %d tasks, want 2", len(got))
	}
	if got[0].Title != "작업" || !reflect.DeepEqual(got[0].ReminderOffsets, []int{30}) {
		t.Fatalf("task fields not preserved: %+v", got[0])
	}
}

func TestReplaceBucketSwapsContents(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.ReplaceBucket(ctx, model.BucketToday, []model.Task{sampleTask(1)}); err != nil {
		t.Fatalf("ReplaceBucket: %v", err)
	}
	if err := s.ReplaceBucket(ctx, model.BucketToday, []model.Task{sampleTask(2)}); err != nil {
		t.Fatalf("ReplaceBucket: %v", err)
	}

	got, err := s.GetBucket(ctx, model.BucketToday)
	if err != nil {
		t.Fatalf("GetBucket: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("bucket = %+v, want only task 2", got)
	}
}

func TestBucketsAreIndependent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	// The same task may appear in several buckets.
	if err := s.ReplaceBucket(ctx, model.BucketToday, []model.Task{sampleTask(1)}); err != nil {
		t.Fatalf("ReplaceBucket today: %v", err)
	}
	if err := s.ReplaceBucket(ctx, model.BucketWeek, []model.Task{sampleTask(1), sampleTask(3)}); err != nil {
		t.Fatalf("ReplaceBucket week: %v", err)
	}

	week, err := s.GetBucket(ctx, model.BucketWeek)
	if err != nil {
		t.Fatalf("GetBucket: %v", err)
	}
	if len(week) != 2 {
		t.Fatalf("week bucket = %d tasks, want 2", len(week))
	}
}

func TestGetTaskByID(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.ReplaceBucket(ctx, model.BucketWeek, []model.Task{sampleTask(5)}); err != nil {
		t.Fatalf("ReplaceBucket: %v", err)
	}

	got, err := s.GetTaskByID(ctx, 5)
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	if got == nil || got.ID != 5 {
		t.Fatalf("GetTaskByID = %+v, want task 5", got)
	}

	missing, err := s.GetTaskByID(ctx, 99)
	if err != nil {
		t.Fatalf("GetTaskByID(99): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetTaskByID(99) = %+v, want nil", missing)
	}
}

func TestNotificationLifecycle(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	n := model.Notification{
		TaskID:    1,
		Message:   "새 할 일: 보고서",
		CreatedAt: time.Now(),
	}
	if err := s.CreateNotification(ctx, n); err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}

	unread, err := s.GetUnreadNotifications(ctx)
	if err != nil {
		t.Fatalf("GetUnreadNotifications: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("unread = %d, want 1", len(unread))
	}

	if err := s.MarkNotificationRead(ctx, unread[0].ID); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}

	unread, err = s.GetUnreadNotifications(ctx)
	if err != nil {
		t.Fatalf("GetUnreadNotifications: %v", err)
	}
	if len(unread) != 0 {
		t.Fatalf("unread after mark = %d, want 0", len(unread))
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, ok, err := s.GetSetting(ctx, "missing")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if ok {
		t.Fatal("GetSetting reported a value for an unwritten key")
	}

	if err := s.SetSetting(ctx, "reminder_offsets", "[60,10]"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := s.SetSetting(ctx, "reminder_offsets", "[45]"); err != nil {
		t.Fatalf("SetSetting overwrite: %v", err)
	}

	value, ok, err := s.GetSetting(ctx, "reminder_offsets")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if !ok || value != "[45]" {
		t.Fatalf("GetSetting = (%q, %v), want ([45], true)", value, ok)
	}
}

func TestReplaceProjects(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	projects := []model.Project{
		{ID: 2, Name: "공부", Color: "#10B981", TaskCount: 3},
		{ID: 1, Name: "업무", Color: "#3B82F6", TaskCount: 5},
	}
	if err := s.ReplaceProjects(ctx, projects); err != nil {
		t.Fatalf("ReplaceProjects: %v", err)
	}

	got, err := s.GetProjects(ctx)
	if err != nil {
		t.Fatalf("GetProjects: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("projects = %d, want 2", len(got))
	}
	if got[0].Name != "공부" {
		t.Fatalf("projects not ordered by name: %+v", got)
	}
}

var _ store.Store = (*store.SQLiteStore)(nil)
