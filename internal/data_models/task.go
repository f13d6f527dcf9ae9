package dto

import "task-manager-api.com/task-manager-api/internal/services"

// Optional request fields are pointers: a missing or null JSON field is
// absent, an empty string is present.

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Importance  string  `json:"importance"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Importance  *string `json:"importance"`
	Completed   *bool   `json:"completed"`
}

type ExtendDueDateRequest struct {
	Days *int `json:"days"`
}

type TaskResponse struct {
	Message string             `json:"message"`
	Task    *services.TaskView `json:"task"`
}

type TaskListResponse struct {
	Count int                 `json:"count"`
	Tasks []services.TaskView `json:"tasks"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
