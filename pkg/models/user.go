package models

import (
	"time"
)

type RoleType string

const (
	RoleUser  RoleType = "ROLE_USER"
	RoleAdmin RoleType = "ROLE_ADMIN"
)

type Role struct {
	ID   uint     `json:"id" gorm:"primaryKey"`
	Name RoleType `json:"name" gorm:"uniqueIndex;type:varchar(30);not null"`
}

type User struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	Username            string    `json:"username" gorm:"uniqueIndex;type:varchar(50);not null"`
	Email               string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	PasswordHash        string    `json:"-" gorm:"not null"`
	EnableNotifications bool      `json:"enable_notifications" gorm:"not null;default:true"`
	Enabled             bool      `json:"enabled" gorm:"not null;default:true"`
	RoleID              uint      `json:"-" gorm:"not null"`
	Role                Role      `json:"role"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Session is a server-side login session referenced by an opaque cookie token.
type Session struct {
	Token     string    `json:"-" gorm:"primaryKey;type:varchar(64)"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	ExpiresAt time.Time `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
}

// RememberMeToken is one persistent-login entry per device, identified by a
// fixed series with a rotating token. A correct series presented with a wrong
// token is treated as cookie theft.
type RememberMeToken struct {
	Series     string    `json:"-" gorm:"primaryKey;type:varchar(64)"`
	Token      string    `json:"-" gorm:"type:varchar(64);not null"`
	UserID     uint      `json:"-" gorm:"not null;index"`
	LastUsedAt time.Time `json:"-" gorm:"not null"`
}
