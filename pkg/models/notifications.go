package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is one in-app message for one user about one game. Created by
// the release fan-out or by a wishlist addition, mutated only by its owner.
type Notification struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	UserID   uint           `json:"user_id" gorm:"not null;index"`
	GameID   uint           `json:"game_id" gorm:"not null;index"`
	Game     Game           `json:"-"`
	Message  string         `json:"message" gorm:"type:text;not null"`
	IsRead   bool           `json:"is_read" gorm:"not null;default:false"`
	Metadata datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
}

// NotificationDto is the shape returned to the frontend, flattening the game
// fields the notification panel renders.
type NotificationDto struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	GameID        uint      `json:"game_id"`
	GameTitle     string    `json:"game_title"`
	CoverImageURL string    `json:"cover_image_url"`
	Message       string    `json:"message"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}
