package models

// TaskListResponse is the envelope of GET /api/tasks/get. Total counts all
// matching tasks, ignoring pagination.
type TaskListResponse struct {
	Total int64  `json:"total"`
	Page  int64  `json:"page"`
	Limit int64  `json:"limit"`
	Tasks []Task `json:"tasks"`
}

// SubtaskListResponse is the envelope of GET /api/subtasks/get.
type SubtaskListResponse struct {
	Total    int64     `json:"total"`
	Page     int64     `json:"page"`
	Limit    int64     `json:"limit"`
	Subtasks []Subtask `json:"subtasks"`
}
