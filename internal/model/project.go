package model

// Project groups tasks under a user-defined label and color.
type Project struct {
	// ID is the backend's numeric project identifier.
	ID int64 `json:"id"`

	// Name is the user-visible project label.
	Name string `json:"name"`

	// Color is the project's display color as a hex string (e.g. "#3B82F6").
	Color string `json:"color"`

	// TaskCount is the number of open tasks, denormalized for display.
	TaskCount int `json:"task_count"`
}
