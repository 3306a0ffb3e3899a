package models

import (
	"time"
)

type GameStatus string

const (
	GameStatusUpcoming GameStatus = "UPCOMING"
	GameStatusReleased GameStatus = "RELEASED"
	GameStatusDelayed  GameStatus = "DELAYED"
	GameStatusCanceled GameStatus = "CANCELED"
)

// Game is a local mirror of one catalog record, keyed by the external slug.
// The sync job owns every field except Status values DELAYED/CANCELED, which
// are set out-of-band.
type Game struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Title         string     `json:"title" gorm:"type:text;not null"`
	Description   string     `json:"description" gorm:"type:text"`
	CoverImageURL string     `json:"cover_image_url" gorm:"type:varchar(500)"`
	ReleaseDate   time.Time  `json:"release_date" gorm:"not null"`
	Developer     string     `json:"developer"`
	Publisher     string     `json:"publisher"`
	RawgGameSlug  string     `json:"rawg_game_slug" gorm:"uniqueIndex;type:varchar(255)"`
	Status        GameStatus `json:"status" gorm:"type:varchar(20);not null;default:'UPCOMING'"`
	AgeRating     string     `json:"age_rating" gorm:"type:varchar(20)"`
	Mature        bool       `json:"mature" gorm:"not null;default:false"`

	Genres        []Genre        `json:"genres,omitempty" gorm:"many2many:game_genres;"`
	Platforms     []Platform     `json:"platforms,omitempty" gorm:"many2many:game_platforms;"`
	PreorderLinks []PreorderLink `json:"preorder_links,omitempty" gorm:"foreignKey:GameID"`

	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt doubles as the staleness guard: a record is skipped by the sync
	// unless it is strictly older than the catalog's updated timestamp.
	UpdatedAt time.Time `json:"updated_at"`
}

// Genre is a shared lookup row. Created lazily by the sync, never updated.
type Genre struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(100);not null"`
}

// Platform is a shared lookup row. Created lazily by the sync, never updated.
type Platform struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(100);not null"`
}

// PreorderLink points at a store page for a game. Unique per (game, url);
// stale links are kept.
type PreorderLink struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GameID    uint      `json:"game_id" gorm:"not null;index:idx_preorder_game_url,unique"`
	StoreName string    `json:"store_name" gorm:"type:varchar(100)"`
	URL       string    `json:"url" gorm:"type:varchar(500);not null;index:idx_preorder_game_url,unique"`
	CreatedAt time.Time `json:"created_at"`
}
