package validators

import (
	"strings"

	dto "task-manager-api.com/task-manager-api/internal/data_models"
	apperrors "task-manager-api.com/task-manager-api/internal/errors"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.ErrTitleRequired
	}
	if strings.TrimSpace(r.Importance) == "" {
		return apperrors.ErrInvalidImportance
	}
	return nil
}
