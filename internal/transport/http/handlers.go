// internal/transport/http/handlers.go
package http

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/1craig1/game-release-tracker/internal/config"
	"github.com/1craig1/game-release-tracker/internal/service"
	gamesync "github.com/1craig1/game-release-tracker/internal/sync"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	cfg          *config.Config
	authService  *service.AuthService
	userService  *service.UserService
	gameService  *service.GameService
	wishlistSvc  *service.WishlistService
	notifService *service.NotificationService
	syncService  *gamesync.GameSyncService
}

func NewHandler(
	cfg *config.Config,
	authService *service.AuthService,
	userService *service.UserService,
	gameService *service.GameService,
	wishlistSvc *service.WishlistService,
	notifService *service.NotificationService,
	syncService *gamesync.GameSyncService,
) *Handler {
	return &Handler{
		cfg:          cfg,
		authService:  authService,
		userService:  userService,
		gameService:  gameService,
		wishlistSvc:  wishlistSvc,
		notifService: notifService,
		syncService:  syncService,
	}
}

func (h *Handler) sessionTTL() time.Duration {
	return time.Duration(h.cfg.SessionTTLHours) * time.Hour
}

func (h *Handler) rememberMeTTL() time.Duration {
	return time.Duration(h.cfg.RememberMeTTLDays) * 24 * time.Hour
}

// serviceError maps service sentinels onto HTTP responses. Anything
// unrecognized is logged and reported as a 500.
func serviceError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resource not found"})
	case errors.Is(err, service.ErrDuplicateResource):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "resource already exists"})
	case errors.Is(err, service.ErrInvalidPassword):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid password"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	case errors.Is(err, gamesync.ErrSyncInProgress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "sync already in progress"})
	}
	log.Printf("❌ [%s] %v", op, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// Helper
func paramUint(c *fiber.Ctx, key string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(key), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func getQueryInt(c *fiber.Ctx, key string, def, min, max int) int {
	s := c.Query(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
