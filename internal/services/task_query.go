package services

import (
	"context"
	"fmt"
	"strings"

	"task-manager-api.com/task-manager-api/internal/constants"
	apperrors "task-manager-api.com/task-manager-api/internal/errors"
	repository "task-manager-api.com/task-manager-api/internal/repositories"
)

var sortFieldAliases = map[string]constants.SortField{
	"title":          constants.SortByTitle,
	"duedate":        constants.SortByDueDate,
	"due_date":       constants.SortByDueDate,
	"importance":     constants.SortByImportance,
	"createdat":      constants.SortByCreatedAt,
	"created_at":     constants.SortByCreatedAt,
	"updatedat":      constants.SortByUpdatedAt,
	"updated_at":     constants.SortByUpdatedAt,
	"completed":      constants.SortByCompleted,
	"completeddate":  constants.SortByCompletedDate,
	"completed_date": constants.SortByCompletedDate,
	"description":    constants.SortByDescription,
}

// ParseTaskOrder validates caller-supplied sort parameters. An empty field
// sorts by creation time and an empty order is ascending.
func ParseTaskOrder(field, order string) (repository.TaskOrder, error) {
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" {
		field = "createdat"
	}

	sortField, ok := sortFieldAliases[field]
	if !ok {
		return repository.TaskOrder{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidSortField, field)
	}

	var sortOrder constants.SortOrder
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "asc", "ascending", "1":
		sortOrder = constants.SortAsc
	case "desc", "descending", "-1":
		sortOrder = constants.SortDesc
	default:
		return repository.TaskOrder{}, apperrors.ErrInvalidSortOrder
	}

	return repository.TaskOrder{Field: sortField, Order: sortOrder}, nil
}

// ListTasks returns every task owned by the caller, ordered by sortField and
// rendered in the caller's timezone.
func (s *TaskService) ListTasks(ctx context.Context, caller Identity, sortField, sortOrder string) ([]TaskView, error) {
	order, err := ParseTaskOrder(sortField, sortOrder)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListByOwner(ctx, caller.UserID, order)
	if err != nil {
		return nil, err
	}

	return RenderTasks(tasks, caller.Timezone)
}
