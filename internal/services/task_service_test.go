package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager-api.com/task-manager-api/internal/constants"
	apperrors "task-manager-api.com/task-manager-api/internal/errors"
	"task-manager-api.com/task-manager-api/internal/optional"
)

var (
	alice = Identity{UserID: "alice", Timezone: "UTC"}
	bob   = Identity{UserID: "bob", Timezone: "UTC"}
)

func createTask(t *testing.T, f *taskFixture, caller Identity, due string) string {
	t.Helper()

	in := CreateTaskInput{Title: "Write report", Importance: "important"}
	if due != "" {
		in.DueDate = optional.Of(due)
	}
	task, err := f.service.CreateTask(context.Background(), caller, in)
	require.NoError(t, err)
	return task.ID
}

func TestTaskService_CreateDefaults(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.service.CreateTask(ctx, alice, CreateTaskInput{
		Title:      "  Write report ",
		DueDate:    optional.Of("2024-01-10 00:00:00"),
		Importance: "very-important",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "alice", task.OwnerID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, constants.DefaultDescription, task.Description)
	assert.Equal(t, constants.ImportanceHigh, task.Importance)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedDate)
	assert.Equal(t, baseTime, task.CreatedAt)
	assert.Equal(t, baseTime, task.UpdatedAt)
	require.NotNil(t, task.DueDate)
	require.NotNil(t, task.OriginalDueDate)
	assert.Equal(t, utc(2024, 1, 10, 0, 0), *task.DueDate)
	assert.True(t, task.OriginalDueDate.Equal(*task.DueDate))

	stored, err := f.repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, stored.DueDate.Equal(*stored.OriginalDueDate))
	assert.True(t, stored.CreatedAt.Equal(baseTime))
}

func TestTaskService_CreateConvertsLocalDueDate(t *testing.T) {
	f := newTaskFixture(t)
	nairobi := Identity{UserID: "alice", Timezone: "Africa/Nairobi"}

	task, err := f.service.CreateTask(context.Background(), nairobi, CreateTaskInput{
		Title:      "Call home",
		DueDate:    optional.Of("2024-01-10 15:00:00"),
		Importance: "less important",
	})
	require.NoError(t, err)
	assert.Equal(t, utc(2024, 1, 10, 12, 0), *task.DueDate)
}

func TestTaskService_CreateWithoutDueDate(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.service.CreateTask(context.Background(), alice, CreateTaskInput{
		Title:       "Someday",
		Description: optional.Of("maybe"),
		Importance:  "important",
	})
	require.NoError(t, err)
	assert.Nil(t, task.DueDate)
	assert.Nil(t, task.OriginalDueDate)
	assert.Equal(t, "maybe", task.Description)
}

func TestTaskService_CreateValidation(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		caller Identity
		in     CreateTaskInput
		want   error
	}{
		{"empty title", alice, CreateTaskInput{Title: "  ", Importance: "important"}, apperrors.ErrTitleRequired},
		{"bad importance", alice, CreateTaskInput{Title: "x", Importance: "urgent"}, apperrors.ErrInvalidImportance},
		{"bad due date", alice, CreateTaskInput{Title: "x", Importance: "important", DueDate: optional.Of("next week")}, apperrors.ErrInvalidDateTime},
		{"bad timezone", Identity{UserID: "alice", Timezone: "Nowhere/Land"}, CreateTaskInput{Title: "x", Importance: "important", DueDate: optional.Of("2024-01-10")}, apperrors.ErrInvalidTimezone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateTask(ctx, tt.caller, tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, apperrors.IsValidation(err))
		})
	}

	count, err := f.repo.CountByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTaskService_UpdateEmptyPatchIsNoop(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	id := createTask(t, f, alice, "2024-01-10 00:00:00")

	f.clock.Advance(time.Hour)

	task, changed, err := f.service.UpdateTask(ctx, id, alice, TaskPatch{})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, baseTime, task.UpdatedAt.UTC())

	stored, err := f.repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, stored.UpdatedAt.Equal(baseTime))
	assert.Equal(t, uint(1), stored.Version)
}

func TestTaskService_UpdatePartial(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	id := createTask(t, f, alice, "2024-01-10 00:00:00")

	f.clock.Advance(time.Hour)

	task, changed, err := f.service.UpdateTask(ctx, id, alice, TaskPatch{
		Description: optional.Of("with charts"),
		DueDate:     optional.Of("2024-01-12 00:00:00"),
		Importance:  optional.Of("very important"),
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "with charts", task.Description)
	assert.Equal(t, constants.ImportanceHigh, task.Importance)
	assert.Equal(t, utc(2024, 1, 12, 0, 0), *task.DueDate)
	assert.Equal(t, utc(2024, 1, 10, 0, 0), task.OriginalDueDate.UTC())
	assert.Equal(t, baseTime.Add(time.Hour), task.UpdatedAt)

	stored, err := f.repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, stored.OriginalDueDate.Equal(utc(2024, 1, 10, 0, 0)))
	assert.True(t, stored.DueDate.Equal(utc(2024, 1, 12, 0, 0)))
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt))
}

func TestTaskService_UpdateBlankDescriptionResetsDefault(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()

	task, err := f.service.CreateTask(ctx, alice, CreateTaskInput{
		Title:       "x",
		Description: optional.Of("details"),
		Importance:  "important",
	})
	require.NoError(t, err)

	updated, changed, err := f.service.UpdateTask(ctx, task.ID, alice, TaskPatch{Description: optional.Of("")})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, constants.DefaultDescription, updated.Description)
}

func TestTaskService_UpdateRejectsDueDateBeforeOriginalAtomically(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	id := createTask(t, f, alice, "2024-01-10 00:00:00")

	_, _, err := f.service.UpdateTask(ctx, id, alice, TaskPatch{
		Title:     optional.Of("Renamed"),
		Completed: optional.Of(true),
		DueDate:   optional.Of("2024-01-09 23:59:59"),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDueDate)
	assert.True(t, apperrors.IsValidation(err))

	stored, err := f.repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Write report", stored.Title)
	assert.False(t, stored.Completed)
	assert.Nil(t, stored.CompletedDate)
	assert.True(t, stored.DueDate.Equal(utc(2024, 1, 10, 0, 0)))
	assert.True(t, stored.UpdatedAt.Equal(baseTime))
}

func TestTaskService_UpdateValidation(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	id := createTask(t, f, alice, "")

	_, _, err := f.service.UpdateTask(ctx, id, alice, TaskPatch{Title: optional.Of("")})
	assert.ErrorIs(t, err, apperrors.ErrTitleRequired)

	_, _, err = f.service.UpdateTask(ctx, id, alice, TaskPatch{Importance: optional.Of("meh")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidImportance)

	_, _, err = f.service.UpdateTask(ctx, id, alice, TaskPatch{DueDate: optional.Of("")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateTime)
}

func TestTaskService_UpdateDueDateWithoutOriginal(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	id := createTask(t, f, alice, "")

	task, changed, err := f.service.UpdateTask(ctx, id, alice, TaskPatch{DueDate: optional.Of("2023-05-01")})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, utc(2023, 5, 1, 0, 0), *task.DueDate)
	assert.Nil(t, task.OriginalDueDate)
}

func TestTaskService_CompletionTransitions(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	id := createTask(t, f, alice, "2024-01-10 00:00:00")

	f.clock.Advance(time.Hour)
	completedAt := f.clock.Now()

	task, _, err := f.service.UpdateTask(ctx, id, alice, TaskPatch{Completed: optional.Of(true)})
	require.NoError(t, err)
	assert.True(t, task.Completed)
	require.NotNil(t, task.CompletedDate)
	assert.Equal(t, completedAt, *task.CompletedDate)

	// true -> true keeps the original completion time but still bumps updated_at.
	f.clock.Advance(time.Hour)
	task, changed, err := f.service.UpdateTask(ctx, id, alice, TaskPatch{Completed: optional.Of(true)})
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, task.CompletedDate)
	assert.True(t, task.CompletedDate.Equal(completedAt))
	assert.Equal(t, f.clock.Now(), task.UpdatedAt)

	f.clock.Advance(time.Hour)
	task, _, err = f.service.UpdateTask(ctx, id, alice, TaskPatch{Completed: optional.Of(false)})
	require.NoError(t, err)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedDate)

	// false -> false
	f.clock.Advance(time.Hour)
	task, changed, err = f.service.UpdateTask(ctx, id, alice, TaskPatch{Completed: optional.Of(false)})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, task.CompletedDate)
	assert.Equal(t, f.clock.Now(), task.UpdatedAt)

	stored, err := f.repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, stored.Completed, stored.CompletedDate != nil)
}

func TestTaskService_ExtendDueDate(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	id := createTask(t, f, alice, "2024-01-10 00:00:00")

	f.clock.Advance(time.Minute)

	task, err := f.service.ExtendDueDate(ctx, id, alice, 5)
	require.NoError(t, err)
	assert.Equal(t, utc(2024, 1, 15, 0, 0), *task.DueDate)
	assert.True(t, task.OriginalDueDate.Equal(utc(2024, 1, 10, 0, 0)))
	assert.Equal(t, baseTime.Add(time.Minute), task.UpdatedAt)

	stored, err := f.repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, stored.DueDate.Equal(utc(2024, 1, 15, 0, 0)))
	assert.True(t, stored.OriginalDueDate.Equal(utc(2024, 1, 10, 0, 0)))
}

func TestTaskService_ExtendDueDateUsesCalendarDays(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	id := createTask(t, f, alice, "2024-02-28 18:30:00")

	task, err := f.service.ExtendDueDate(ctx, id, alice, 2)
	require.NoError(t, err)
	assert.Equal(t, utc(2024, 3, 1, 18, 30), *task.DueDate)
}

func TestTaskService_ExtendDueDateRejectsCompletedRegardlessOfDays(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	id := createTask(t, f, alice, "2024-01-10 00:00:00")

	_, _, err := f.service.UpdateTask(ctx, id, alice, TaskPatch{Completed: optional.Of(true)})
	require.NoError(t, err)

	for _, days := range []int{-3, 0, 1, 30} {
		_, err := f.service.ExtendDueDate(ctx, id, alice, days)
		assert.ErrorIs(t, err, apperrors.ErrTaskAlreadyCompleted, "days=%d", days)
	}
}

func TestTaskService_ExtendDueDateValidation(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	id := createTask(t, f, alice, "2024-01-10 00:00:00")
	noDue := createTask(t, f, alice, "")

	_, err := f.service.ExtendDueDate(ctx, id, alice, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDays)

	_, err = f.service.ExtendDueDate(ctx, id, alice, -1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDays)

	_, err = f.service.ExtendDueDate(ctx, noDue, alice, 1)
	assert.ErrorIs(t, err, apperrors.ErrNoDueDate)

	// Corrupt the stored row so the due date sits before the anchor.
	require.NoError(t, f.db.Exec("UPDATE tasks SET due_date = ? WHERE id = ?", utc(2024, 1, 1, 0, 0), id).Error)
	_, err = f.service.ExtendDueDate(ctx, id, alice, 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDueDate)
}

func TestTaskService_ExtendDueDateStaysWithinStorableRange(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	id := createTask(t, f, alice, "2024-01-10 00:00:00")

	_, err := f.service.ExtendDueDate(ctx, id, alice, 3_000_000)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDays)

	late := createTask(t, f, alice, "9999-12-20 00:00:00")
	_, err = f.service.ExtendDueDate(ctx, late, alice, 30)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDays)

	task, err := f.service.ExtendDueDate(ctx, id, alice, constants.MaxExtensionDays)
	require.NoError(t, err)
	assert.Equal(t, utc(2024, 1, 10, 0, 0).AddDate(0, 0, constants.MaxExtensionDays), *task.DueDate)

	views, err := f.service.ListTasks(ctx, alice, "dueDate", "asc")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, id, views[0].ID)
	assert.True(t, views[0].DueDate.Equal(*task.DueDate))

	// A further extension still sees the stored date, not a zero value.
	_, err = f.service.ExtendDueDate(ctx, id, alice, 1)
	require.NoError(t, err)
}

func TestTaskService_RejectsDueDatePastYear9999(t *testing.T) {
	f := newTaskFixture(t)
	la := Identity{UserID: "alice", Timezone: "America/Los_Angeles"}

	_, err := f.service.CreateTask(context.Background(), la, CreateTaskInput{
		Title:      "far future",
		Importance: "important",
		DueDate:    optional.Of("9999-12-31 23:00"),
	})
	assert.ErrorIs(t, err, apperrors.ErrDateOutOfRange)
	assert.True(t, apperrors.IsValidation(err))
}

func TestTaskService_OwnershipAndNotFound(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	id := createTask(t, f, alice, "2024-01-10 00:00:00")

	_, err := f.service.GetTask(ctx, id, bob)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, _, err = f.service.UpdateTask(ctx, id, bob, TaskPatch{Title: optional.Of("mine now")})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.service.ExtendDueDate(ctx, id, bob, 1)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	assert.ErrorIs(t, f.service.DeleteTask(ctx, id, bob), apperrors.ErrForbidden)
	assert.ErrorIs(t, f.service.DeleteTask(ctx, "missing", alice), apperrors.ErrTaskNotFound)

	_, err = f.service.GetTask(ctx, "missing", alice)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	count, err := f.repo.CountByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := f.repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.OwnerID)
	assert.Equal(t, "Write report", stored.Title)
}

func TestTaskService_Delete(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	id := createTask(t, f, alice, "")

	require.NoError(t, f.service.DeleteTask(ctx, id, alice))

	_, err := f.repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	assert.ErrorIs(t, f.service.DeleteTask(ctx, id, alice), apperrors.ErrTaskNotFound)
}

func TestTaskService_GetLocalizesDisplayDates(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	nairobi := Identity{UserID: "alice", Timezone: "Africa/Nairobi"}
	id := createTask(t, f, nairobi, "2024-01-10 15:00:00")

	_, _, err := f.service.UpdateTask(ctx, id, nairobi, TaskPatch{Completed: optional.Of(true)})
	require.NoError(t, err)

	view, err := f.service.GetTask(ctx, id, nairobi)
	require.NoError(t, err)

	assert.Equal(t, "Africa/Nairobi", view.DueDate.Location().String())
	assert.Equal(t, 15, view.DueDate.Hour())
	assert.Equal(t, "Africa/Nairobi", view.CreatedAt.Location().String())
	assert.Equal(t, "Africa/Nairobi", view.UpdatedAt.Location().String())
	assert.Equal(t, "Africa/Nairobi", view.CompletedDate.Location().String())
	assert.Equal(t, time.UTC, view.OriginalDueDate.Location())
	assert.Equal(t, 12, view.OriginalDueDate.Hour())
	assert.True(t, view.DueDate.Equal(*view.OriginalDueDate))
}

func TestTaskService_ConcurrentCreates(t *testing.T) {
	f := newTaskFixture(t)

	const concurrentCount = 20
	var wg sync.WaitGroup
	wg.Add(concurrentCount)

	errs := make(chan error, concurrentCount)
	for i := 0; i < concurrentCount; i++ {
		go func() {
			defer wg.Done()
			_, err := f.service.CreateTask(context.Background(), alice, CreateTaskInput{Title: "Title", Importance: "important"})
			if err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent creation failed: %v", err)
	}

	count, err := f.repo.CountByOwner(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(concurrentCount), count)
}

func TestTaskService_StaleVersionConflicts(t *testing.T) {
	f := newTaskFixture(t)
	ctx := context.Background()
	id := createTask(t, f, alice, "")

	stale, err := f.repo.FindByID(ctx, id)
	require.NoError(t, err)

	_, _, err = f.service.UpdateTask(ctx, id, alice, TaskPatch{Title: optional.Of("first")})
	require.NoError(t, err)

	stale.Title = "second"
	assert.ErrorIs(t, f.repo.Update(ctx, stale), apperrors.ErrOptimisticLock)
}
