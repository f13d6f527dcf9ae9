package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-manager-api.com/task-manager-api/internal/constants"
	apperrors "task-manager-api.com/task-manager-api/internal/errors"
	model "task-manager-api.com/task-manager-api/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

// TaskOrder is a validated sort request for ListByOwner.
type TaskOrder struct {
	Field constants.SortField
	Order constants.SortOrder
}

var sortColumns = map[constants.SortField]string{
	constants.SortByTitle:         "title",
	constants.SortByDueDate:       "due_date",
	constants.SortByCreatedAt:     "created_at",
	constants.SortByUpdatedAt:     "updated_at",
	constants.SortByCompleted:     "completed",
	constants.SortByCompletedDate: "completed_date",
	constants.SortByDescription:   "description",
}

// gorm merges successive Order calls by columns only, so the tie-breaker is
// part of the same clause.
var insertionOrder = clause.Column{Name: "rowid", Raw: true}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.Version == 0 {
		task.Version = 1
	}
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListByOwner returns the owner's tasks in the requested order. Rows that
// compare equal keep their insertion order (SQLite rowid).
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string, order TaskOrder) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)

	orderBy, err := orderClause(order)
	if err != nil {
		return nil, err
	}

	var tasks []model.Task
	err = query.Order(orderBy).Find(&tasks).Error
	return tasks, err
}

func orderClause(order TaskOrder) (clause.OrderBy, error) {
	desc := order.Order == constants.SortDesc

	if order.Field == constants.SortByImportance {
		direction := "ASC"
		if desc {
			direction = "DESC"
		}

		var sql strings.Builder
		vars := make([]interface{}, 0, 3)
		sql.WriteString("CASE importance")
		for _, imp := range constants.ImportancesByRank() {
			sql.WriteString(" WHEN ? THEN " + strconv.Itoa(imp.Rank()))
			vars = append(vars, string(imp))
		}
		sql.WriteString(" ELSE -1 END " + direction + ", rowid ASC")

		return clause.OrderBy{
			Expression: clause.Expr{SQL: sql.String(), Vars: vars, WithoutParentheses: true},
		}, nil
	}

	column, ok := sortColumns[order.Field]
	if !ok {
		return clause.OrderBy{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidSortField, order.Field)
	}

	return clause.OrderBy{
		Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: column}, Desc: desc},
			{Column: insertionOrder},
		},
	}, nil
}

// Update persists every mutable column. The write only applies if the row
// still carries the version that was read; a stale version yields
// ErrOptimisticLock.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"title":          task.Title,
			"description":    task.Description,
			"updated_at":     task.UpdatedAt,
			"due_date":       task.DueDate,
			"importance":     task.Importance,
			"completed":      task.Completed,
			"completed_date": task.CompletedDate,
			"version":        gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	task.Version++
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// DeleteByOwner removes every task of ownerID and reports how many went.
func (r *TaskRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "owner_id = ?", ownerID)
	return res.RowsAffected, res.Error
}

func (r *TaskRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}
