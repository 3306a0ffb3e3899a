// internal/service/wishlist.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/1craig1/game-release-tracker/pkg/models"

	"gorm.io/gorm"
)

type WishlistService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewWishlistService(db *gorm.DB, notifications *NotificationService) *WishlistService {
	return &WishlistService{db: db, notifications: notifications}
}

// AddWishlistItem puts a game on the user's wishlist and immediately
// acknowledges it with a notification.
func (s *WishlistService) AddWishlistItem(ctx context.Context, userID, gameID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.WishlistItem{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: game %d already wishlisted by user %d", ErrDuplicateResource, gameID, userID)
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return err
	}
	var game models.Game
	if err := s.db.WithContext(ctx).First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: game %d", ErrNotFound, gameID)
		}
		return err
	}

	item := models.WishlistItem{
		UserID:  userID,
		GameID:  gameID,
		AddedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return fmt.Errorf("failed to save wishlist item: %w", err)
	}

	if err := s.notifications.NotifyWishlistAddition(ctx, &user, &game); err != nil {
		log.Printf("⚠️ [WISHLIST] Acknowledgement notification failed for user %d: %v", userID, err)
	}
	return nil
}

// RemoveWishlistItem takes a game off the user's wishlist.
func (s *WishlistService) RemoveWishlistItem(ctx context.Context, userID, gameID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: wishlist item for user %d and game %d", ErrNotFound, userID, gameID)
	}
	return nil
}

// GetWishlistGames returns the games on the user's wishlist with their
// genres and platforms loaded.
func (s *WishlistService) GetWishlistGames(ctx context.Context, userID uint) ([]models.Game, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	var items []models.WishlistItem
	if err := s.db.WithContext(ctx).
		Preload("Game").Preload("Game.Genres").Preload("Game.Platforms").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	games := make([]models.Game, 0, len(items))
	for _, item := range items {
		games = append(games, item.Game)
	}
	return games, nil
}

// IsGameInWishlist reports whether the user already wishlisted the game.
func (s *WishlistService) IsGameInWishlist(ctx context.Context, userID, gameID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.WishlistItem{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error
	return count > 0, err
}
