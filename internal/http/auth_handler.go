package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	dto "task-manager-api.com/task-manager-api/internal/data_models"
	apperrors "task-manager-api.com/task-manager-api/internal/errors"
	middleware "task-manager-api.com/task-manager-api/internal/http/middlewares"
	"task-manager-api.com/task-manager-api/internal/http/validators"
	"task-manager-api.com/task-manager-api/internal/optional"
	"task-manager-api.com/task-manager-api/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := validators.ValidateRegisterRequest(&req); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Timezone: optional.FromPtr(req.Timezone),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse("User registered successfully", result))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse("Logged in successfully", result))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.ClaimsFrom(c)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "User logged out successfully"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	profile, err := h.userService.Profile(c.Request().Context(), mustIdentity(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *AuthHandler) UpdateMe(c echo.Context) error {
	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), mustIdentity(c), services.UserPatch{
		Email:    optional.FromPtr(req.Email),
		Password: optional.FromPtr(req.Password),
		Timezone: optional.FromPtr(req.Timezone),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

func (h *AuthHandler) DeleteMe(c echo.Context) error {
	if err := h.userService.DeleteAccount(c.Request().Context(), mustIdentity(c), middleware.ClaimsFrom(c)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

func authResponse(message string, result *services.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Message:   message,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
		UserID:    result.UserID,
	}
}
