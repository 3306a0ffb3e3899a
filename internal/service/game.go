// internal/service/game.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/1craig1/game-release-tracker/pkg/models"

	"gorm.io/gorm"
)

type GameService struct {
	db *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db}
}

// GameFilter is the browse surface's query: every field is optional and
// filters are combined with AND.
type GameFilter struct {
	Genres    []string
	Platforms []string
	Status    models.GameStatus
	Search    string
	AfterDate *time.Time
	Limit     int
	Offset    int
}

// GetFilteredGames lists games matching the filter, ordered by release date
// ascending.
func (s *GameService) GetFilteredGames(ctx context.Context, filter GameFilter) ([]models.Game, error) {
	query := s.db.WithContext(ctx).Model(&models.Game{}).
		Preload("Genres").Preload("Platforms").
		Order("release_date ASC")

	if len(filter.Genres) > 0 {
		query = query.Where("games.id IN (?)",
			s.db.Table("game_genres").
				Select("game_genres.game_id").
				Joins("JOIN genres ON genres.id = game_genres.genre_id").
				Where("genres.name IN ?", filter.Genres))
	}
	if len(filter.Platforms) > 0 {
		query = query.Where("games.id IN (?)",
			s.db.Table("game_platforms").
				Select("game_platforms.game_id").
				Joins("JOIN platforms ON platforms.id = game_platforms.platform_id").
				Where("platforms.name IN ?", filter.Platforms))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.AfterDate != nil {
		query = query.Where("release_date > ?", *filter.AfterDate)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var games []models.Game
	if err := query.Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// GetGameByID returns one game with genres, platforms and preorder links.
func (s *GameService) GetGameByID(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	err := s.db.WithContext(ctx).
		Preload("Genres").Preload("Platforms").Preload("PreorderLinks").
		First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &game, nil
}
