// internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/1craig1/game-release-tracker/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser registers a new account with the default user role.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: username %q", ErrDuplicateResource, username)
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: email %q", ErrDuplicateResource, email)
	}

	var role models.Role
	if err := s.db.WithContext(ctx).Where("name = ?", models.RoleUser).First(&role).Error; err != nil {
		return nil, fmt.Errorf("default user role missing: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:            username,
		Email:               email,
		PasswordHash:        string(hash),
		EnableNotifications: true,
		Enabled:             true,
		RoleID:              role.ID,
		Role:                role,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return &user, nil
}

// UpdateProfile changes username/email (uniqueness re-checked) and the
// notifications toggle. Empty strings leave the field untouched.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, username, email string, enableNotifications bool) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email != "" && email != user.Email {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: email %q", ErrDuplicateResource, email)
		}
		user.Email = email
	}
	if username != "" && username != user.Username {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: username %q", ErrDuplicateResource, username)
		}
		user.Username = username
	}
	user.EnableNotifications = enableNotifications

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword verifies the current password and sets a new one.
func (s *UserService) UpdatePassword(ctx context.Context, userID uint, oldPassword, newPassword, confirmPassword string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return fmt.Errorf("%w: incorrect current password", ErrInvalidPassword)
	}
	if newPassword != confirmPassword {
		return fmt.Errorf("%w: new passwords do not match", ErrInvalidPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Role").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Role").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, username)
		}
		return nil, err
	}
	return &user, nil
}
