package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "task-manager-api.com/task-manager-api/internal/errors"
	model "task-manager-api.com/task-manager-api/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// NormalizeEmail is the stored form of an address; lookups are
// case-insensitive because every write goes through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	user.Email = NormalizeEmail(user.Email)

	exists, err := r.emailExists(ctx, user.Email, "")
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrEmailTaken
	}

	return translateUserError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", NormalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	user.Email = NormalizeEmail(user.Email)

	exists, err := r.emailExists(ctx, user.Email, user.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrEmailTaken
	}

	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"timezone":      user.Timezone,
			"updated_at":    user.UpdatedAt,
		})
	if res.Error != nil {
		return translateUserError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes the user together with every task they own.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := NewTaskRepository(tx).DeleteByOwner(ctx, id); err != nil {
			return err
		}
		res := tx.Delete(&model.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrUserNotFound
		}
		return nil
	})
}

// translateUserError maps a unique-index violation on email, which the
// existence check can miss under concurrent writes, to ErrEmailTaken.
func translateUserError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) emailExists(ctx context.Context, email, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
