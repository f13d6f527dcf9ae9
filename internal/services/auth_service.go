package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"task-manager-api.com/task-manager-api/internal/auth"
	"task-manager-api.com/task-manager-api/internal/clock"
	apperrors "task-manager-api.com/task-manager-api/internal/errors"
	"task-manager-api.com/task-manager-api/internal/metrics"
	model "task-manager-api.com/task-manager-api/internal/models"
	"task-manager-api.com/task-manager-api/internal/optional"
	repository "task-manager-api.com/task-manager-api/internal/repositories"
	"task-manager-api.com/task-manager-api/internal/sessions"
	"task-manager-api.com/task-manager-api/internal/timezone"
)

type AuthService struct {
	users           *repository.UserRepository
	hasher          *auth.PasswordHasher
	tokens          *auth.JWTManager
	sessions        sessions.Store
	clock           clock.Clock
	defaultTimezone string
}

type RegisterInput struct {
	Email    string
	Password string
	Timezone optional.Value[string]
}

type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
}

func NewAuthService(
	users *repository.UserRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.JWTManager,
	store sessions.Store,
	clk clock.Clock,
	defaultTimezone string,
) *AuthService {
	if clk == nil {
		clk = clock.Real{}
	}
	return &AuthService{
		users:           users,
		hasher:          hasher,
		tokens:          tokens,
		sessions:        store,
		clock:           clk,
		defaultTimezone: defaultTimezone,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (result *AuthResult, err error) {
	defer func() { metrics.AuthEvents.WithLabelValues("register", metrics.Outcome(err)).Inc() }()

	email, err := validateEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	zone := strings.TrimSpace(in.Timezone.OrElse(""))
	if zone == "" {
		zone = s.defaultTimezone
	}
	if err := timezone.Validate(zone); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Timezone:     zone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Msg("user registered")
	return s.issue(user)
}

// Login answers with the same error for an unknown email and a wrong
// password.
func (s *AuthService) Login(ctx context.Context, email, password string) (result *AuthResult, err error) {
	defer func() { metrics.AuthEvents.WithLabelValues("login", metrics.Outcome(err)).Inc() }()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	log.Info().Str("user_id", user.ID).Msg("user logged in")
	return s.issue(user)
}

// Authenticate resolves a bearer token to the caller identity.
func (s *AuthService) Authenticate(ctx context.Context, token string) (Identity, *auth.Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return Identity{}, nil, apperrors.ErrUnauthorized
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		return Identity{}, nil, err
	}
	if revoked {
		return Identity{}, nil, apperrors.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return Identity{}, nil, apperrors.ErrUnauthorized
		}
		return Identity{}, nil, err
	}

	return Identity{UserID: user.ID, Email: user.Email, Timezone: user.Timezone}, claims, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) (err error) {
	defer func() { metrics.AuthEvents.WithLabelValues("logout", metrics.Outcome(err)).Inc() }()

	if claims == nil {
		return apperrors.ErrUnauthorized
	}
	return s.sessions.Revoke(ctx, claims.TokenID(), claims.Remaining(s.clock.Now()))
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, claims, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
		UserID:    user.ID,
	}, nil
}

func validateEmail(raw string) (string, error) {
	email := repository.NormalizeEmail(raw)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperrors.ErrEmailRequired
	}
	return email, nil
}

func validatePassword(password string) error {
	if len([]rune(password)) < auth.MinPasswordLength {
		return apperrors.ErrPasswordTooShort
	}
	return nil
}
