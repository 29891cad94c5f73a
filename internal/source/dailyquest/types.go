package dailyquest

// apiEnvelope is the response wrapper every DailyQuest endpoint returns.
// Error responses carry success=false plus a numeric error code and message.
type apiEnvelope struct {
	Success bool   `json:"success"`
	Code    *int   `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// taskPayload is a single task as serialized by the backend.
type taskPayload struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Priority        string `json:"priority"`
	DueDate         string `json:"dueDate"`
	DueTime         string `json:"dueTime"`
	ReminderOffsets []int  `json:"reminderOffsets"`
	IsCompleted     bool   `json:"isCompleted"`
	CompletedAt     string `json:"completedAt"`
	ProjectID       *int64 `json:"projectId"`
	ProjectName     string `json:"projectName"`
	ProjectColor    string `json:"projectColor"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// projectPayload is a single project as serialized by the backend.
type projectPayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	TaskCount int    `json:"taskCount"`
}

// userPayload is the /api/users/me response body.
type userPayload struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}
