// internal/sync/game_sync.go
package sync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/1craig1/game-release-tracker/internal/rawg"
	"github.com/1craig1/game-release-tracker/internal/service"
	"github.com/1craig1/game-release-tracker/pkg/models"

	"gorm.io/gorm"
)

// lookbackDays widens the listing window below today so records whose release
// date was backdated by the catalog are still picked up.
const lookbackDays = 3

const lastSyncKey = "last_catalog_sync_time"

// ErrSyncInProgress is returned when a run is triggered while another is active.
var ErrSyncInProgress = errors.New("catalog sync already in progress")

// GameSyncService mirrors the external catalog into the local database: once
// at startup, once daily at midnight, and on demand.
type GameSyncService struct {
	db            *gorm.DB
	client        *rawg.Client
	notifications *service.NotificationService
	matureTags    []string

	// runGate keeps runs from overlapping; a second trigger is rejected, not queued.
	runGate sync.Mutex
}

func NewGameSyncService(db *gorm.DB, client *rawg.Client, notifications *service.NotificationService, matureTags []string) *GameSyncService {
	return &GameSyncService{
		db:            db,
		client:        client,
		notifications: notifications,
		matureTags:    matureTags,
	}
}

// StartScheduler runs one sync immediately and then re-runs daily at midnight.
func (s *GameSyncService) StartScheduler() {
	go func() {
		log.Println("🚀 [SYNC] Running startup catalog sync...")
		if err := s.UpdateGames(context.Background()); err != nil {
			log.Printf("❌ [SYNC] Startup sync failed: %v", err)
		}
		s.scheduleDailySync()
	}()
}

// scheduleDailySync sleeps until the next midnight, syncs, and repeats.
func (s *GameSyncService) scheduleDailySync() {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
		wait := next.Sub(now)

		log.Printf("⏰ [SYNC] Next catalog sync at %s (in %v)", next.Format(time.RFC3339), wait.Round(time.Second))
		time.Sleep(wait)

		if err := s.UpdateGames(context.Background()); err != nil {
			log.Printf("❌ [SYNC] Scheduled sync failed: %v", err)
		}

		// Small delay to prevent a double trigger at the midnight boundary
		time.Sleep(1 * time.Minute)
	}
}

// UpdateGames performs one full synchronization pass: page through the catalog
// listing from the lookback date onward, upsert each record, and fan out
// notifications for games that transitioned UPCOMING → RELEASED.
//
// A failed store-directory or listing call aborts the run; records already
// upserted stay committed and the next run catches up. Per-record failures
// are logged and skipped.
func (s *GameSyncService) UpdateGames(ctx context.Context) error {
	if !s.runGate.TryLock() {
		log.Println("⚠️ [SYNC] Run rejected: another sync is still active")
		return ErrSyncInProgress
	}
	defer s.runGate.Unlock()

	started := time.Now()
	since := time.Now().UTC().AddDate(0, 0, -lookbackDays)

	storeNames, err := s.client.ListStores(ctx)
	if err != nil {
		s.logCatalogError("store directory", err)
		return err
	}

	var newlyReleased []uint
	processed := 0
	for page := 1; ; page++ {
		listing, err := s.client.ListGames(ctx, since, page)
		if err != nil {
			s.logCatalogError(fmt.Sprintf("games page %d", page), err)
			return err
		}

		for _, rec := range listing.Results {
			if err := s.processRecord(ctx, rec, storeNames, &newlyReleased); err != nil {
				log.Printf("⚠️ [SYNC] Skipping record %q: %v", rec.Slug, err)
				continue
			}
			processed++
		}

		if listing.Next == nil {
			break
		}
	}

	if len(newlyReleased) > 0 {
		if err := s.notifications.NotifyUsersOfGameReleases(ctx, newlyReleased); err != nil {
			log.Printf("❌ [SYNC] Release fan-out failed: %v", err)
		}
	}

	s.recordLastSyncTime(time.Now())
	log.Printf("✅ [SYNC] Catalog sync completed: %d records processed, %d newly released (took %v)",
		processed, len(newlyReleased), time.Since(started).Round(time.Millisecond))
	return nil
}

// processRecord upserts one catalog record. On return the record is either
// fully merged and saved, deliberately skipped, or untouched (error).
func (s *GameSyncService) processRecord(ctx context.Context, rec rawg.GameRecord, storeNames map[int]string, newlyReleased *[]uint) error {
	// A record without a release date cannot be meaningfully merged.
	if rec.Released == nil {
		log.Printf("⚠️ [SYNC] Game %q has no release date, skipping", rec.Name)
		return nil
	}

	var game models.Game
	isNew := false
	var previousStatus models.GameStatus

	err := s.db.WithContext(ctx).Where("rawg_game_slug = ?", rec.Slug).First(&game).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		isNew = true
		game = models.Game{RawgGameSlug: rec.Slug}
	case err != nil:
		return fmt.Errorf("lookup by slug failed: %w", err)
	default:
		previousStatus = game.Status
		// Staleness guard: skip unless the local row is strictly older than
		// the catalog's updated timestamp. Expected steady state, not logged.
		if !game.UpdatedAt.Before(rec.Updated) {
			return nil
		}
		log.Printf("🔄 [SYNC] Updating %s", rec.Name)
	}

	game.Title = rec.Name
	game.ReleaseDate = *rec.Released
	game.CoverImageURL = rec.BackgroundImage
	game.AgeRating = rec.ESRBRating
	game.Mature = s.containsMatureTag(rec.Tags)

	// RELEASED as soon as the release date is today or earlier. DELAYED and
	// CANCELED are manual states the sync never assigns.
	newStatus := models.GameStatusUpcoming
	if !rec.Released.After(time.Now().UTC()) {
		newStatus = models.GameStatusReleased
	}
	game.Status = newStatus

	detail, err := s.client.GetGameDetail(ctx, rec.Slug)
	if err != nil {
		return fmt.Errorf("detail fetch failed: %w", err)
	}
	game.Description = detail.Description
	game.Developer = detail.Developer
	game.Publisher = detail.Publisher

	if err := s.db.WithContext(ctx).Save(&game).Error; err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	if rec.Genres != nil {
		genres, err := s.resolveGenres(ctx, rec.Genres)
		if err != nil {
			return err
		}
		if err := s.db.WithContext(ctx).Model(&game).Association("Genres").Replace(&genres); err != nil {
			return fmt.Errorf("genre replace failed: %w", err)
		}
	}
	if rec.Platforms != nil {
		platforms, err := s.resolvePlatforms(ctx, rec.Platforms)
		if err != nil {
			return err
		}
		if err := s.db.WithContext(ctx).Model(&game).Association("Platforms").Replace(&platforms); err != nil {
			return fmt.Errorf("platform replace failed: %w", err)
		}
	}

	// Store links are best effort; a failed fetch leaves the saved game as is.
	s.createPreorderLinks(ctx, &game, storeNames)

	if !isNew && previousStatus == models.GameStatusUpcoming && newStatus == models.GameStatusReleased {
		*newlyReleased = append(*newlyReleased, game.ID)
	}
	return nil
}

// resolveGenres finds or creates one lookup row per name. The unique index on
// name backs the find-or-create: a lost race surfaces as a duplicate-key error
// and is retried as a lookup.
func (s *GameSyncService) resolveGenres(ctx context.Context, names []string) ([]models.Genre, error) {
	genres := make([]models.Genre, 0, len(names))
	for _, name := range names {
		var genre models.Genre
		if err := s.db.WithContext(ctx).Where(models.Genre{Name: name}).FirstOrCreate(&genre).Error; err != nil {
			if retryErr := s.db.WithContext(ctx).Where(models.Genre{Name: name}).First(&genre).Error; retryErr != nil {
				return nil, fmt.Errorf("find-or-create genre %q failed: %w", name, err)
			}
		}
		genres = append(genres, genre)
	}
	return genres, nil
}

func (s *GameSyncService) resolvePlatforms(ctx context.Context, names []string) ([]models.Platform, error) {
	platforms := make([]models.Platform, 0, len(names))
	for _, name := range names {
		var platform models.Platform
		if err := s.db.WithContext(ctx).Where(models.Platform{Name: name}).FirstOrCreate(&platform).Error; err != nil {
			if retryErr := s.db.WithContext(ctx).Where(models.Platform{Name: name}).First(&platform).Error; retryErr != nil {
				return nil, fmt.Errorf("find-or-create platform %q failed: %w", name, err)
			}
		}
		platforms = append(platforms, platform)
	}
	return platforms, nil
}

// createPreorderLinks fetches the store links for a game and inserts the ones
// not already present, deduped on (game, url). Stale links accumulate.
func (s *GameSyncService) createPreorderLinks(ctx context.Context, game *models.Game, storeNames map[int]string) {
	links, err := s.client.ListGameStores(ctx, game.RawgGameSlug)
	if err != nil {
		log.Printf("⚠️ [SYNC] Store links fetch for %q failed: %v", game.RawgGameSlug, err)
		return
	}

	var existing []models.PreorderLink
	if err := s.db.WithContext(ctx).Where("game_id = ?", game.ID).Find(&existing).Error; err != nil {
		log.Printf("⚠️ [SYNC] Loading existing links for %q failed: %v", game.RawgGameSlug, err)
		return
	}
	existingURLs := make(map[string]bool, len(existing))
	for _, link := range existing {
		existingURLs[link.URL] = true
	}

	for _, link := range links {
		if existingURLs[link.URL] {
			continue
		}
		record := models.PreorderLink{
			GameID:    game.ID,
			StoreName: storeNames[link.StoreID],
			URL:       link.URL,
		}
		if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
			log.Printf("⚠️ [SYNC] Saving store link %q for %q failed: %v", link.URL, game.RawgGameSlug, err)
		}
	}
}

// containsMatureTag is a case-sensitive exact-tag intersection with the
// configured mature-tag list.
func (s *GameSyncService) containsMatureTag(tags []string) bool {
	for _, matureTag := range s.matureTags {
		for _, tag := range tags {
			if tag == matureTag {
				return true
			}
		}
	}
	return false
}

func (s *GameSyncService) logCatalogError(stage string, err error) {
	var apiErr *rawg.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsClientError():
			log.Printf("❌ [SYNC] Client error from catalog API (%s): %v", stage, err)
		case apiErr.IsServerError():
			log.Printf("❌ [SYNC] Server error from catalog API (%s): %v", stage, err)
		default:
			log.Printf("❌ [SYNC] Unexpected status from catalog API (%s): %v", stage, err)
		}
		return
	}
	log.Printf("❌ [SYNC] Error calling catalog API (%s): %v", stage, err)
}

// recordLastSyncTime persists the completion time for the health endpoint.
func (s *GameSyncService) recordLastSyncTime(at time.Time) {
	config := models.SyncConfig{Key: lastSyncKey, Value: at.UTC().Format(time.RFC3339)}
	var existing models.SyncConfig
	err := s.db.Where("key = ?", lastSyncKey).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.db.Create(&config).Error; err != nil {
			log.Printf("⚠️ [SYNC] Failed to record last sync time: %v", err)
		}
		return
	}
	if err != nil {
		log.Printf("⚠️ [SYNC] Failed to read last sync time: %v", err)
		return
	}
	if err := s.db.Model(&existing).Update("value", config.Value).Error; err != nil {
		log.Printf("⚠️ [SYNC] Failed to update last sync time: %v", err)
	}
}

// LastSyncTime returns the completion time of the most recent run, or zero.
func (s *GameSyncService) LastSyncTime() time.Time {
	var config models.SyncConfig
	if err := s.db.Where("key = ?", lastSyncKey).First(&config).Error; err != nil {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, config.Value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
