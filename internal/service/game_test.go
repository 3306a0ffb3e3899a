package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/1craig1/game-release-tracker/pkg/models"

	"gorm.io/gorm"
)

func seedGameCatalog(t *testing.T, db *gorm.DB) (rpg, shooter, released *models.Game) {
	t.Helper()

	action := models.Genre{Name: "Action"}
	roleplay := models.Genre{Name: "RPG"}
	pc := models.Platform{Name: "PC"}
	console := models.Platform{Name: "PlayStation 5"}
	for _, m := range []interface{}{&action, &roleplay, &pc, &console} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("seed lookup: %v", err)
		}
	}

	rpg = &models.Game{
		Title:        "Hollow Dusk",
		RawgGameSlug: "hollow-dusk",
		ReleaseDate:  time.Now().UTC().AddDate(0, 0, 30),
		Status:       models.GameStatusUpcoming,
		Genres:       []models.Genre{roleplay},
		Platforms:    []models.Platform{pc},
	}
	shooter = &models.Game{
		Title:        "Star Drift",
		RawgGameSlug: "star-drift",
		ReleaseDate:  time.Now().UTC().AddDate(0, 0, 60),
		Status:       models.GameStatusUpcoming,
		Genres:       []models.Genre{action},
		Platforms:    []models.Platform{console},
	}
	released = &models.Game{
		Title:        "Dusty Trails",
		RawgGameSlug: "dusty-trails",
		ReleaseDate:  time.Now().UTC().AddDate(0, 0, -30),
		Status:       models.GameStatusReleased,
		Genres:       []models.Genre{action},
		Platforms:    []models.Platform{pc, console},
	}
	for _, g := range []*models.Game{rpg, shooter, released} {
		if err := db.Create(g).Error; err != nil {
			t.Fatalf("seed game %s: %v", g.Title, err)
		}
	}
	return rpg, shooter, released
}

func TestGetFilteredGames(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	rpg, shooter, released := seedGameCatalog(t, db)

	titles := func(games []models.Game) []string {
		out := make([]string, 0, len(games))
		for _, g := range games {
			out = append(out, g.Title)
		}
		return out
	}

	t.Run("no filter returns all ordered by release date", func(t *testing.T) {
		games, err := svc.GetFilteredGames(context.Background(), GameFilter{})
		if err != nil {
			t.Fatalf("GetFilteredGames: %v", err)
		}
		if len(games) != 3 {
			t.Fatalf("expected 3 games, got %v", titles(games))
		}
		if games[0].ID != released.ID {
			t.Errorf("expected oldest release first, got %v", titles(games))
		}
	})

	t.Run("genre filter", func(t *testing.T) {
		games, err := svc.GetFilteredGames(context.Background(), GameFilter{Genres: []string{"RPG"}})
		if err != nil {
			t.Fatalf("GetFilteredGames: %v", err)
		}
		if len(games) != 1 || games[0].ID != rpg.ID {
			t.Errorf("expected only the RPG, got %v", titles(games))
		}
	})

	t.Run("platform filter", func(t *testing.T) {
		games, err := svc.GetFilteredGames(context.Background(), GameFilter{Platforms: []string{"PlayStation 5"}})
		if err != nil {
			t.Fatalf("GetFilteredGames: %v", err)
		}
		if len(games) != 2 {
			t.Errorf("expected 2 console games, got %v", titles(games))
		}
	})

	t.Run("status filter", func(t *testing.T) {
		games, err := svc.GetFilteredGames(context.Background(), GameFilter{Status: models.GameStatusReleased})
		if err != nil {
			t.Fatalf("GetFilteredGames: %v", err)
		}
		if len(games) != 1 || games[0].ID != released.ID {
			t.Errorf("expected only the released game, got %v", titles(games))
		}
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		games, err := svc.GetFilteredGames(context.Background(), GameFilter{Search: "hollow"})
		if err != nil {
			t.Fatalf("GetFilteredGames: %v", err)
		}
		if len(games) != 1 || games[0].ID != rpg.ID {
			t.Errorf("expected Hollow Dusk, got %v", titles(games))
		}
	})

	t.Run("after date filter", func(t *testing.T) {
		cutoff := time.Now().UTC().AddDate(0, 0, 45)
		games, err := svc.GetFilteredGames(context.Background(), GameFilter{AfterDate: &cutoff})
		if err != nil {
			t.Fatalf("GetFilteredGames: %v", err)
		}
		if len(games) != 1 || games[0].ID != shooter.ID {
			t.Errorf("expected only the later release, got %v", titles(games))
		}
	})

	t.Run("combined filters", func(t *testing.T) {
		games, err := svc.GetFilteredGames(context.Background(), GameFilter{
			Genres:    []string{"Action"},
			Platforms: []string{"PC"},
		})
		if err != nil {
			t.Fatalf("GetFilteredGames: %v", err)
		}
		if len(games) != 1 || games[0].ID != released.ID {
			t.Errorf("expected only Dusty Trails, got %v", titles(games))
		}
	})

	t.Run("limit and offset", func(t *testing.T) {
		games, err := svc.GetFilteredGames(context.Background(), GameFilter{Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("GetFilteredGames: %v", err)
		}
		if len(games) != 1 || games[0].ID != rpg.ID {
			t.Errorf("expected the middle release, got %v", titles(games))
		}
	})
}

func TestGetGameByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	rpg, _, _ := seedGameCatalog(t, db)

	if err := db.Create(&models.PreorderLink{GameID: rpg.ID, StoreName: "Steam", URL: "https://store.example/1"}).Error; err != nil {
		t.Fatalf("create preorder link: %v", err)
	}

	game, err := svc.GetGameByID(context.Background(), rpg.ID)
	if err != nil {
		t.Fatalf("GetGameByID: %v", err)
	}
	if game.Title != "Hollow Dusk" {
		t.Errorf("unexpected title %q", game.Title)
	}
	if len(game.Genres) != 1 || len(game.Platforms) != 1 || len(game.PreorderLinks) != 1 {
		t.Errorf("associations not preloaded: %+v", game)
	}

	if _, err := svc.GetGameByID(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
