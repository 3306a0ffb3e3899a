// internal/service/auth.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/1craig1/game-release-tracker/pkg/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db            *gorm.DB
	sessionTTL    time.Duration
	rememberMeTTL time.Duration
}

func NewAuthService(db *gorm.DB, sessionTTL, rememberMeTTL time.Duration) *AuthService {
	return &AuthService{
		db:            db,
		sessionTTL:    sessionTTL,
		rememberMeTTL: rememberMeTTL,
	}
}

// LoginResult carries the session token and, when remember-me was requested,
// the "series:token" cookie value.
type LoginResult struct {
	User          *models.User
	SessionToken  string
	RememberToken string
}

// Login verifies credentials and opens a session. Unknown username and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string, rememberMe bool) (*LoginResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Role").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Enabled {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	sessionToken, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	result := &LoginResult{User: &user, SessionToken: sessionToken}
	if rememberMe {
		series := uuid.NewString()
		token := uuid.NewString()
		record := models.RememberMeToken{
			Series:     series,
			Token:      token,
			UserID:     user.ID,
			LastUsedAt: time.Now().UTC(),
		}
		if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, fmt.Errorf("failed to save remember-me token: %w", err)
		}
		result.RememberToken = series + ":" + token
	}
	return result, nil
}

// Logout drops the session. When a remember-me series is presented its tokens
// are dropped too.
func (s *AuthService) Logout(ctx context.Context, sessionToken, rememberSeries string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", sessionToken).Error; err != nil {
		return err
	}
	if rememberSeries != "" {
		if err := s.db.WithContext(ctx).Delete(&models.RememberMeToken{}, "series = ?", rememberSeries).Error; err != nil {
			return err
		}
	}
	return nil
}

// ResolveSession returns the user behind a live session token.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	var session models.Session
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.db.WithContext(ctx).Delete(&session).Error
		return nil, ErrNotFound
	}

	var user models.User
	if err := s.db.WithContext(ctx).Preload("Role").First(&user, session.UserID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RedeemRememberMe exchanges a "series:token" cookie for a fresh session and
// a rotated token. A correct series with a wrong token means the cookie was
// stolen: every remember-me entry of that user is revoked.
func (s *AuthService) RedeemRememberMe(ctx context.Context, series, token string) (*LoginResult, error) {
	var record models.RememberMeToken
	err := s.db.WithContext(ctx).Where("series = ?", series).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if record.Token != token {
		log.Printf("⚠️ [AUTH] Remember-me token mismatch for series %s → revoking all tokens for user %d", series, record.UserID)
		if err := s.db.WithContext(ctx).Delete(&models.RememberMeToken{}, "user_id = ?", record.UserID).Error; err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	if time.Since(record.LastUsedAt) > s.rememberMeTTL {
		_ = s.db.WithContext(ctx).Delete(&record).Error
		return nil, ErrNotFound
	}

	// Rotate the token in place; the series survives for this device.
	newToken := uuid.NewString()
	if err := s.db.WithContext(ctx).Model(&record).
		Updates(map[string]interface{}{"token": newToken, "last_used_at": time.Now().UTC()}).Error; err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Preload("Role").First(&user, record.UserID).Error; err != nil {
		return nil, err
	}
	sessionToken, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		User:          &user,
		SessionToken:  sessionToken,
		RememberToken: series + ":" + newToken,
	}, nil
}

func (s *AuthService) createSession(ctx context.Context, userID uint) (string, error) {
	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return session.Token, nil
}
