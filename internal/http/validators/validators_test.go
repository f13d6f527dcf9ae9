package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dto "task-manager-api.com/task-manager-api/internal/data_models"
	apperrors "task-manager-api.com/task-manager-api/internal/errors"
)

func TestValidateCreateTaskRequest(t *testing.T) {
	assert.NoError(t, ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: "x", Importance: "important"}))
	assert.ErrorIs(t, ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: " ", Importance: "important"}), apperrors.ErrTitleRequired)
	assert.ErrorIs(t, ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: "x"}), apperrors.ErrInvalidImportance)
}

func TestValidateExtendDueDateRequest(t *testing.T) {
	days := 3
	assert.NoError(t, ValidateExtendDueDateRequest(&dto.ExtendDueDateRequest{Days: &days}))
	assert.ErrorIs(t, ValidateExtendDueDateRequest(&dto.ExtendDueDateRequest{}), apperrors.ErrInvalidDays)
}

func TestValidateAuthRequests(t *testing.T) {
	assert.NoError(t, ValidateRegisterRequest(&dto.RegisterRequest{Email: "a@b.c", Password: "secret123"}))
	assert.ErrorIs(t, ValidateRegisterRequest(&dto.RegisterRequest{Password: "secret123"}), apperrors.ErrEmailRequired)
	assert.ErrorIs(t, ValidateLoginRequest(&dto.LoginRequest{Email: "a@b.c"}), apperrors.ErrInvalidCredentials)
}
