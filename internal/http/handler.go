package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-manager-api.com/task-manager-api/internal/data_models"
	apperrors "task-manager-api.com/task-manager-api/internal/errors"
	middleware "task-manager-api.com/task-manager-api/internal/http/middlewares"
	"task-manager-api.com/task-manager-api/internal/http/validators"
	"task-manager-api.com/task-manager-api/internal/optional"
	"task-manager-api.com/task-manager-api/internal/services"
)

type Handler struct {
	taskService *services.TaskService
}

func NewHandler(taskService *services.TaskService) *Handler {
	return &Handler{
		taskService: taskService,
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	caller := mustIdentity(c)

	task, err := h.taskService.CreateTask(c.Request().Context(), caller, services.CreateTaskInput{
		Title:       req.Title,
		Description: optional.FromPtr(req.Description),
		DueDate:     optional.FromPtr(req.DueDate),
		Importance:  req.Importance,
	})
	if err != nil {
		return err
	}

	view, err := services.RenderTask(task, caller.Timezone)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.TaskResponse{Message: "Task created successfully", Task: view})
}

func (h *Handler) GetTask(c echo.Context) error {
	view, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"), mustIdentity(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}

	caller := mustIdentity(c)

	task, changed, err := h.taskService.UpdateTask(c.Request().Context(), c.Param("id"), caller, services.TaskPatch{
		Title:       optional.FromPtr(req.Title),
		Description: optional.FromPtr(req.Description),
		DueDate:     optional.FromPtr(req.DueDate),
		Importance:  optional.FromPtr(req.Importance),
		Completed:   optional.FromPtr(req.Completed),
	})
	if err != nil {
		return err
	}

	view, err := services.RenderTask(task, caller.Timezone)
	if err != nil {
		return err
	}

	message := "Task updated successfully"
	if !changed {
		message = "No changes made to the task"
	}
	return c.JSON(http.StatusOK, dto.TaskResponse{Message: message, Task: view})
}

func (h *Handler) ExtendDueDate(c echo.Context) error {
	var req dto.ExtendDueDateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := validators.ValidateExtendDueDateRequest(&req); err != nil {
		return err
	}

	caller := mustIdentity(c)

	task, err := h.taskService.ExtendDueDate(c.Request().Context(), c.Param("id"), caller, *req.Days)
	if err != nil {
		return err
	}

	view, err := services.RenderTask(task, caller.Timezone)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.TaskResponse{Message: "Due date extended successfully", Task: view})
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), c.Param("id"), mustIdentity(c)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

// ListTasks sorts by the :field path parameter when routed through
// /tasks/sort/:field, otherwise by the sort query parameter.
func (h *Handler) ListTasks(c echo.Context) error {
	field := c.Param("field")
	if field == "" {
		field = c.QueryParam("sort")
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), mustIdentity(c), field, c.QueryParam("order"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.TaskListResponse{
		Count: len(tasks),
		Tasks: tasks,
	})
}

// mustIdentity is only used behind RequireAuth.
func mustIdentity(c echo.Context) services.Identity {
	identity, _ := middleware.IdentityFrom(c)
	return identity
}
