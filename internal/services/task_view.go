package services

import (
	"time"

	"task-manager-api.com/task-manager-api/internal/constants"
	model "task-manager-api.com/task-manager-api/internal/models"
	"task-manager-api.com/task-manager-api/internal/timezone"
)

// TaskView is a task as shown to its owner. Display timestamps are in the
// owner's zone; OriginalDueDate stays in UTC as stored.
type TaskView struct {
	ID              string               `json:"id"`
	OwnerID         string               `json:"owner_id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	DueDate         *time.Time           `json:"due_date"`
	OriginalDueDate *time.Time           `json:"original_due_date"`
	Importance      constants.Importance `json:"importance"`
	Completed       bool                 `json:"completed"`
	CompletedDate   *time.Time           `json:"completed_date"`
}

func RenderTask(task *model.Task, zoneID string) (*TaskView, error) {
	createdAt, err := timezone.ToLocal(task.CreatedAt, zoneID)
	if err != nil {
		return nil, err
	}
	updatedAt, err := timezone.ToLocal(task.UpdatedAt, zoneID)
	if err != nil {
		return nil, err
	}
	dueDate, err := timezone.ToLocalPtr(task.DueDate, zoneID)
	if err != nil {
		return nil, err
	}
	completedDate, err := timezone.ToLocalPtr(task.CompletedDate, zoneID)
	if err != nil {
		return nil, err
	}

	view := &TaskView{
		ID:            task.ID,
		OwnerID:       task.OwnerID,
		Title:         task.Title,
		Description:   task.Description,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
		DueDate:       dueDate,
		Importance:    task.Importance,
		Completed:     task.Completed,
		CompletedDate: completedDate,
	}
	if task.OriginalDueDate != nil {
		original := task.OriginalDueDate.UTC()
		view.OriginalDueDate = &original
	}
	return view, nil
}

func RenderTasks(tasks []model.Task, zoneID string) ([]TaskView, error) {
	views := make([]TaskView, 0, len(tasks))
	for i := range tasks {
		view, err := RenderTask(&tasks[i], zoneID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}
