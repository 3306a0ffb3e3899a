// internal/service/notification.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/1craig1/game-release-tracker/internal/email"
	"github.com/1craig1/game-release-tracker/pkg/models"

	"gorm.io/gorm"
)

type NotificationService struct {
	db          *gorm.DB
	emailSender *email.Sender // nil when SMTP is not configured
}

func NewNotificationService(db *gorm.DB, emailSender *email.Sender) *NotificationService {
	return &NotificationService{db: db, emailSender: emailSender}
}

// NotifyUsersOfGameReleases fans one notification out to every user who has
// one of the given games wishlisted and has notifications enabled. Loads and
// the final insert are each a single batched round-trip.
func (s *NotificationService) NotifyUsersOfGameReleases(ctx context.Context, gameIDs []uint) error {
	if len(gameIDs) == 0 {
		return nil
	}

	var games []models.Game
	if err := s.db.WithContext(ctx).Where("id IN ?", gameIDs).Find(&games).Error; err != nil {
		return fmt.Errorf("failed to load released games: %w", err)
	}
	releasedGames := make(map[uint]*models.Game, len(games))
	for i := range games {
		releasedGames[games[i].ID] = &games[i]
	}

	var items []models.WishlistItem
	if err := s.db.WithContext(ctx).Preload("User").Where("game_id IN ?", gameIDs).Find(&items).Error; err != nil {
		return fmt.Errorf("failed to load wishlist items: %w", err)
	}

	var toSave []models.Notification
	var recipients []emailRecipient
	for _, item := range items {
		game, ok := releasedGames[item.GameID]
		if !ok || !item.User.EnableNotifications {
			continue
		}
		message := fmt.Sprintf("'%s' is now released!", game.Title)
		toSave = append(toSave, s.buildNotification(item.UserID, game, message, "game.released"))
		recipients = append(recipients, emailRecipient{user: item.User, game: game})
	}

	if len(toSave) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).Create(&toSave).Error; err != nil {
		return fmt.Errorf("failed to save release notifications: %w", err)
	}
	log.Printf("🔔 [NOTIFY] Created %d release notifications for %d games", len(toSave), len(gameIDs))

	// Emails ride behind the committed batch, best effort only.
	for _, r := range recipients {
		s.sendReleaseEmail(ctx, r.user, r.game)
	}
	return nil
}

// NotifyWishlistAddition acknowledges a wishlist add with a single immediate
// notification. No-op for users with notifications disabled.
func (s *NotificationService) NotifyWishlistAddition(ctx context.Context, user *models.User, game *models.Game) error {
	if user == nil || game == nil || !user.EnableNotifications {
		return nil
	}
	message := fmt.Sprintf("'%s' was added to your wishlist. We'll keep you posted!", game.Title)
	notification := s.buildNotification(user.ID, game, message, "wishlist.added")
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to save wishlist notification: %w", err)
	}
	return nil
}

func (s *NotificationService) buildNotification(userID uint, game *models.Game, message, event string) models.Notification {
	metadata, _ := json.Marshal(map[string]string{
		"event":      event,
		"game_title": game.Title,
	})
	return models.Notification{
		UserID:   userID,
		GameID:   game.ID,
		Message:  message,
		IsRead:   false,
		Metadata: metadata,
	}
}

type emailRecipient struct {
	user models.User
	game *models.Game
}

func (s *NotificationService) sendReleaseEmail(ctx context.Context, user models.User, game *models.Game) {
	if s.emailSender == nil {
		return
	}
	if err := s.emailSender.SendGameReleased(ctx, user.Email, user.Username, game.Title, game.ReleaseDate); err != nil {
		log.Printf("⚠️ [NOTIFY] Release email to %s failed: %v", user.Email, err)
	}
}

// GetUserNotifications returns every notification for a user, newest first.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID uint) ([]models.NotificationDto, error) {
	return s.listNotifications(ctx, userID, false)
}

// GetUnreadNotifications returns the unread notifications for a user, newest first.
func (s *NotificationService) GetUnreadNotifications(ctx context.Context, userID uint) ([]models.NotificationDto, error) {
	return s.listNotifications(ctx, userID, true)
}

func (s *NotificationService) listNotifications(ctx context.Context, userID uint, unreadOnly bool) ([]models.NotificationDto, error) {
	query := s.db.WithContext(ctx).Preload("Game").Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	var notifications []models.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	dtos := make([]models.NotificationDto, 0, len(notifications))
	for _, n := range notifications {
		dtos = append(dtos, convertToNotificationDto(n))
	}
	return dtos, nil
}

// GetUnreadNotificationCount returns how many unread notifications a user has.
func (s *NotificationService) GetUnreadNotificationCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead marks one of the user's notifications as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID uint) error {
	return s.setRead(ctx, notificationID, userID, true)
}

// MarkAsNotRead flips one of the user's notifications back to unread.
func (s *NotificationService) MarkAsNotRead(ctx context.Context, notificationID, userID uint) error {
	return s.setRead(ctx, notificationID, userID, false)
}

func (s *NotificationService) setRead(ctx context.Context, notificationID, userID uint, read bool) error {
	notification, err := s.findOwned(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	notification.IsRead = read
	return s.db.WithContext(ctx).Save(notification).Error
}

// MarkAllAsRead marks every unread notification of the user as read.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// DeleteNotification removes one of the user's notifications.
func (s *NotificationService) DeleteNotification(ctx context.Context, notificationID, userID uint) error {
	notification, err := s.findOwned(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(notification).Error
}

// findOwned resolves a notification by id and owner. A notification owned by
// someone else reports ErrNotFound so its existence is never confirmed.
func (s *NotificationService) findOwned(ctx context.Context, notificationID, userID uint) (*models.Notification, error) {
	var notification models.Notification
	err := s.db.WithContext(ctx).First(&notification, notificationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if notification.UserID != userID {
		return nil, ErrNotFound
	}
	return &notification, nil
}

func convertToNotificationDto(n models.Notification) models.NotificationDto {
	return models.NotificationDto{
		ID:            n.ID,
		UserID:        n.UserID,
		GameID:        n.GameID,
		GameTitle:     n.Game.Title,
		CoverImageURL: n.Game.CoverImageURL,
		Message:       n.Message,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt,
	}
}
