package validators

import (
	"strings"

	dto "task-manager-api.com/task-manager-api/internal/data_models"
	apperrors "task-manager-api.com/task-manager-api/internal/errors"
)

func ValidateRegisterRequest(r *dto.RegisterRequest) error {
	if strings.TrimSpace(r.Email) == "" {
		return apperrors.ErrEmailRequired
	}
	if r.Password == "" {
		return apperrors.ErrPasswordTooShort
	}
	return nil
}

func ValidateLoginRequest(r *dto.LoginRequest) error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}
