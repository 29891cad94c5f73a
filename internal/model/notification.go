package model

import "time"

// Notification is an entry in the in-app notification center, created when
// a reminder fires or a newly assigned task appears during sync.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// TaskID links this notification to the originating task.
	TaskID int64 `json:"task_id"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}
