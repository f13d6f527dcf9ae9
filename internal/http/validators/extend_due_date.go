package validators

import (
	dto "task-manager-api.com/task-manager-api/internal/data_models"
	apperrors "task-manager-api.com/task-manager-api/internal/errors"
)

func ValidateExtendDueDateRequest(r *dto.ExtendDueDateRequest) error {
	if r.Days == nil {
		return apperrors.ErrInvalidDays
	}
	return nil
}
