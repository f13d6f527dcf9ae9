package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"task-manager-api.com/task-manager-api/internal/clock"
	"task-manager-api.com/task-manager-api/internal/constants"
	apperrors "task-manager-api.com/task-manager-api/internal/errors"
	"task-manager-api.com/task-manager-api/internal/metrics"
	model "task-manager-api.com/task-manager-api/internal/models"
	"task-manager-api.com/task-manager-api/internal/optional"
	repository "task-manager-api.com/task-manager-api/internal/repositories"
	"task-manager-api.com/task-manager-api/internal/timezone"
)

type TaskService struct {
	repo  *repository.TaskRepository
	clock clock.Clock
}

type CreateTaskInput struct {
	Title       string
	Description optional.Value[string]
	DueDate     optional.Value[string]
	Importance  string
}

// TaskPatch carries the fields of a partial update. Absent fields keep
// their stored value.
type TaskPatch struct {
	Title       optional.Value[string]
	Description optional.Value[string]
	DueDate     optional.Value[string]
	Importance  optional.Value[string]
	Completed   optional.Value[bool]
}

func (p TaskPatch) IsEmpty() bool {
	return !p.Title.IsSet() &&
		!p.Description.IsSet() &&
		!p.DueDate.IsSet() &&
		!p.Importance.IsSet() &&
		!p.Completed.IsSet()
}

func NewTaskService(repo *repository.TaskRepository, clk clock.Clock) *TaskService {
	if clk == nil {
		clk = clock.Real{}
	}
	return &TaskService{
		repo:  repo,
		clock: clk,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, caller Identity, in CreateTaskInput) (task *model.Task, err error) {
	defer observe("create", &err)

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.ErrTitleRequired
	}

	importance, ok := constants.ParseImportance(in.Importance)
	if !ok {
		return nil, apperrors.ErrInvalidImportance
	}

	dueDate, err := s.convertDueDate(in.DueDate, caller.Timezone)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	task = &model.Task{
		ID:          uuid.NewString(),
		OwnerID:     caller.UserID,
		Title:       title,
		Description: descriptionOrDefault(in.Description.OrElse("")),
		CreatedAt:   now,
		UpdatedAt:   now,
		DueDate:     dueDate,
		Importance:  importance,
		Completed:   false,
	}
	if dueDate != nil {
		original := *dueDate
		task.OriginalDueDate = &original
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	log.Debug().Str("task_id", task.ID).Str("owner_id", task.OwnerID).Msg("task created")
	return task, nil
}

// UpdateTask applies patch to the caller's task. The bool result is false
// when the patch carried no fields; the task is then returned untouched
// and updated_at is not bumped. Every present field is validated before
// any of them is applied.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, caller Identity, patch TaskPatch) (task *model.Task, changed bool, err error) {
	defer observe("update", &err)

	task, err = s.findOwned(ctx, taskID, caller)
	if err != nil {
		return nil, false, err
	}

	if patch.IsEmpty() {
		return task, false, nil
	}

	next := *task

	if title, ok := patch.Title.Get(); ok {
		title = strings.TrimSpace(title)
		if title == "" {
			return nil, false, apperrors.ErrTitleRequired
		}
		next.Title = title
	}

	if description, ok := patch.Description.Get(); ok {
		next.Description = descriptionOrDefault(description)
	}

	if patch.DueDate.IsSet() {
		dueDate, err := s.convertDueDate(patch.DueDate, caller.Timezone)
		if err != nil {
			return nil, false, err
		}
		if task.OriginalDueDate != nil && dueDate.Before(*task.OriginalDueDate) {
			return nil, false, apperrors.ErrInvalidDueDate
		}
		next.DueDate = dueDate
	}

	if raw, ok := patch.Importance.Get(); ok {
		importance, ok := constants.ParseImportance(raw)
		if !ok {
			return nil, false, apperrors.ErrInvalidImportance
		}
		next.Importance = importance
	}

	now := s.clock.Now()

	if completed, ok := patch.Completed.Get(); ok {
		switch {
		case completed && !task.Completed:
			completedAt := now
			next.CompletedDate = &completedAt
		case !completed:
			next.CompletedDate = nil
		}
		next.Completed = completed
	}

	next.UpdatedAt = now

	if err := s.repo.Update(ctx, &next); err != nil {
		return nil, false, err
	}

	log.Debug().Str("task_id", next.ID).Msg("task updated")
	return &next, true, nil
}

// ExtendDueDate moves the due date forward by whole calendar days in UTC.
func (s *TaskService) ExtendDueDate(ctx context.Context, taskID string, caller Identity, days int) (task *model.Task, err error) {
	defer observe("extend_due_date", &err)

	task, err = s.findOwned(ctx, taskID, caller)
	if err != nil {
		return nil, err
	}

	if task.Completed {
		return nil, apperrors.ErrTaskAlreadyCompleted
	}
	if days <= 0 || days > constants.MaxExtensionDays {
		return nil, apperrors.ErrInvalidDays
	}
	if task.DueDate == nil {
		return nil, apperrors.ErrNoDueDate
	}
	if task.OriginalDueDate != nil && task.DueDate.Before(*task.OriginalDueDate) {
		return nil, apperrors.ErrInvalidDueDate
	}

	extended := task.DueDate.UTC().AddDate(0, 0, days)
	if extended.After(constants.LatestDueDate) {
		return nil, apperrors.ErrInvalidDays
	}
	task.DueDate = &extended
	task.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	log.Debug().Str("task_id", task.ID).Int("days", days).Msg("task due date extended")
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID string, caller Identity) (err error) {
	defer observe("delete", &err)

	task, err := s.findOwned(ctx, taskID, caller)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, task.ID); err != nil {
		return err
	}

	log.Debug().Str("task_id", task.ID).Msg("task deleted")
	return nil
}

// GetTask returns the caller's task rendered in the caller's timezone.
func (s *TaskService) GetTask(ctx context.Context, taskID string, caller Identity) (*TaskView, error) {
	task, err := s.findOwned(ctx, taskID, caller)
	if err != nil {
		return nil, err
	}
	return RenderTask(task, caller.Timezone)
}

func (s *TaskService) findOwned(ctx context.Context, taskID string, caller Identity) (*model.Task, error) {
	if strings.TrimSpace(taskID) == "" {
		return nil, apperrors.ErrTaskIDRequired
	}

	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := assertOwner(task, caller.UserID); err != nil {
		return nil, err
	}
	return task, nil
}

// assertOwner is the single ownership check shared by every operation.
func assertOwner(task *model.Task, callerID string) error {
	if callerID == "" || task.OwnerID != callerID {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *TaskService) convertDueDate(raw optional.Value[string], zoneID string) (*time.Time, error) {
	value, ok := raw.Get()
	if !ok {
		return nil, nil
	}
	utc, err := timezone.ToUTC(value, zoneID)
	if err != nil {
		return nil, fmt.Errorf("due date: %w", err)
	}
	if utc.After(constants.LatestDueDate) {
		return nil, fmt.Errorf("due date: %w", apperrors.ErrDateOutOfRange)
	}
	return &utc, nil
}

func descriptionOrDefault(description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return constants.DefaultDescription
	}
	return description
}

func observe(operation string, err *error) {
	metrics.TaskOperations.WithLabelValues(operation, metrics.Outcome(*err)).Inc()
}
