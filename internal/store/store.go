package store

import (
	"context"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
)

// Store defines the persistence interface for the local task cache,
// the in-app notification center, cached projects, and client settings.
type Store interface {
	// === Task cache ===

	// ReplaceBucket atomically replaces all cached tasks in one snapshot
	// bucket (model.BucketToday, BucketWeek, BucketOverdue).
	ReplaceBucket(ctx context.Context, bucket string, tasks []model.Task) error

	// GetBucket returns the cached tasks for one bucket, soonest due first.
	GetBucket(ctx context.Context, bucket string) ([]model.Task, error)

	// GetTaskByID returns a cached task from any bucket, or nil when absent.
	GetTaskByID(ctx context.Context, id int64) (*model.Task, error)

	// === Projects ===

	ReplaceProjects(ctx context.Context, projects []model.Project) error
	GetProjects(ctx context.Context) ([]model.Project, error)

	// === Notifications ===

	CreateNotification(ctx context.Context, n model.Notification) error
	GetUnreadNotifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error

	// === Settings ===

	// GetSetting returns the stored value for key; ok is false when the
	// key has never been written.
	GetSetting(ctx context.Context, key string) (value string, ok bool, err error)

	// SetSetting writes a setting value, replacing any previous one.
	SetSetting(ctx context.Context, key, value string) error
}
