package models

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateTaskRequest is the body of POST /api/tasks/create. DueDate arrives
// as an ISO8601 string and is parsed at the boundary.
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" binding:"required"`
	Priority    string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
}

// UpdateTaskRequest is the body of PATCH /api/tasks/update/:id. All fields
// are optional but at least one must be present.
type UpdateTaskRequest struct {
	DueDate  *string `json:"due_date" binding:"omitempty"`
	Status   *string `json:"status" binding:"omitempty,oneof=TODO DONE"`
	Priority *string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
}

// TaskListQuery is the query string of GET /api/tasks/get. DueDate filters
// tasks due at or before the given date.
type TaskListQuery struct {
	Priority string `form:"priority" binding:"omitempty,oneof=Low Medium High"`
	Status   string `form:"status" binding:"omitempty,oneof=TODO DONE"`
	DueDate  string `form:"due_date"`
	Page     int64  `form:"page" binding:"omitempty,min=1"`
	Limit    int64  `form:"limit" binding:"omitempty,min=1"`
}

// CreateSubtaskRequest is the body of POST /api/subtasks/create.
type CreateSubtaskRequest struct {
	TaskID string `json:"task_id" binding:"required"`
	Title  string `json:"title" binding:"required"`
}

// UpdateSubtaskRequest is the body of PATCH /api/subtasks/update/:id.
// Status is a pointer so that 0 (a valid value) is distinguishable from
// the field being absent.
type UpdateSubtaskRequest struct {
	Status *int `json:"status" binding:"required,oneof=0 1"`
}

// SubtaskListQuery is the query string of GET /api/subtasks/get.
type SubtaskListQuery struct {
	TaskID string `form:"task_id"`
	Status *int   `form:"status" binding:"omitempty,oneof=0 1"`
	Page   int64  `form:"page" binding:"omitempty,min=1"`
	Limit  int64  `form:"limit" binding:"omitempty,min=1"`
}
