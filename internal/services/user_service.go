package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"task-manager-api.com/task-manager-api/internal/auth"
	"task-manager-api.com/task-manager-api/internal/clock"
	model "task-manager-api.com/task-manager-api/internal/models"
	"task-manager-api.com/task-manager-api/internal/optional"
	repository "task-manager-api.com/task-manager-api/internal/repositories"
	"task-manager-api.com/task-manager-api/internal/sessions"
	"task-manager-api.com/task-manager-api/internal/timezone"
)

type UserService struct {
	users    *repository.UserRepository
	tasks    *repository.TaskRepository
	hasher   *auth.PasswordHasher
	sessions sessions.Store
	clock    clock.Clock
}

type UserPatch struct {
	Email    optional.Value[string]
	Password optional.Value[string]
	Timezone optional.Value[string]
}

type Profile struct {
	*model.User
	TaskCount int64 `json:"task_count"`
}

func NewUserService(
	users *repository.UserRepository,
	tasks *repository.TaskRepository,
	hasher *auth.PasswordHasher,
	store sessions.Store,
	clk clock.Clock,
) *UserService {
	if clk == nil {
		clk = clock.Real{}
	}
	return &UserService{
		users:    users,
		tasks:    tasks,
		hasher:   hasher,
		sessions: store,
		clock:    clk,
	}
}

func (s *UserService) Profile(ctx context.Context, caller Identity) (*Profile, error) {
	user, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	count, err := s.tasks.CountByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, TaskCount: count}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, caller Identity, patch UserPatch) (*model.User, error) {
	user, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	if raw, ok := patch.Email.Get(); ok {
		email, err := validateEmail(raw)
		if err != nil {
			return nil, err
		}
		user.Email = email
	}

	if zone, ok := patch.Timezone.Get(); ok {
		zone = strings.TrimSpace(zone)
		if err := timezone.Validate(zone); err != nil {
			return nil, err
		}
		user.Timezone = zone
	}

	if password, ok := patch.Password.Get(); ok {
		if err := validatePassword(password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = s.clock.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Msg("user profile updated")
	return user, nil
}

// DeleteAccount removes the caller, all of their tasks, and revokes the
// token used for the request.
func (s *UserService) DeleteAccount(ctx context.Context, caller Identity, claims *auth.Claims) error {
	if err := s.users.Delete(ctx, caller.UserID); err != nil {
		return err
	}

	if claims != nil {
		if err := s.sessions.Revoke(ctx, claims.TokenID(), claims.Remaining(s.clock.Now())); err != nil {
			log.Warn().Err(err).Str("user_id", caller.UserID).Msg("failed to revoke token after account deletion")
		}
	}

	log.Info().Str("user_id", caller.UserID).Msg("user deleted")
	return nil
}
