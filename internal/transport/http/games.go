// internal/transport/http/games.go
package http

import (
	"strings"
	"time"

	"github.com/1craig1/game-release-tracker/internal/service"
	"github.com/1craig1/game-release-tracker/pkg/models"

	"github.com/gofiber/fiber/v2"
)

// ListGames supports ?genres=a,b&platforms=x&status=UPCOMING&search=q&after=2026-01-02
func (h *Handler) ListGames(c *fiber.Ctx) error {
	filter := service.GameFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  getQueryInt(c, "limit", 20, 1, 100),
		Offset: getQueryInt(c, "offset", 0, 0, 100000),
	}

	if genres := c.Query("genres"); genres != "" {
		filter.Genres = splitCSV(genres)
	}
	if platforms := c.Query("platforms"); platforms != "" {
		filter.Platforms = splitCSV(platforms)
	}
	if status := c.Query("status"); status != "" {
		switch models.GameStatus(strings.ToUpper(status)) {
		case models.GameStatusUpcoming, models.GameStatusReleased, models.GameStatusDelayed, models.GameStatusCanceled:
			filter.Status = models.GameStatus(strings.ToUpper(status))
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status"})
		}
	}
	if after := c.Query("after"); after != "" {
		t, err := time.Parse("2006-01-02", after)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid after date (YYYY-MM-DD)"})
		}
		filter.AfterDate = &t
	}

	games, err := h.gameService.GetFilteredGames(c.Context(), filter)
	if err != nil {
		return serviceError(c, "ListGames", err)
	}
	return c.JSON(fiber.Map{"games": games})
}

func (h *Handler) GetGame(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid game id"})
	}
	game, err := h.gameService.GetGameByID(c.Context(), id)
	if err != nil {
		return serviceError(c, "GetGame", err)
	}
	return c.JSON(fiber.Map{"game": game})
}

// TriggerSync — admin only
func (h *Handler) TriggerSync(c *fiber.Ctx) error {
	if err := h.syncService.UpdateGames(c.Context()); err != nil {
		return serviceError(c, "TriggerSync", err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "catalog sync completed"})
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
