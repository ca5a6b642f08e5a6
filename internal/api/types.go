package api

// Task represents a single todo item.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TaskFields holds the writable fields for task creation.
type TaskFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskPatch holds a partial update. Nil fields are left untouched
// by the service.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// User represents a registered account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
