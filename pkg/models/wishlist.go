package models

import (
	"time"
)

// WishlistItem links a user to a game they are tracking. Composite key so a
// game can only be wishlisted once per user.
type WishlistItem struct {
	UserID  uint      `json:"user_id" gorm:"primaryKey"`
	GameID  uint      `json:"game_id" gorm:"primaryKey"`
	User    User      `json:"-"`
	Game    Game      `json:"-"`
	AddedAt time.Time `json:"added_at" gorm:"not null"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
