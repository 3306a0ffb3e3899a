// internal/transport/http/wishlist.go
package http

import (
	"log"

	"github.com/1craig1/game-release-tracker/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetWishlist(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	games, err := h.wishlistSvc.GetWishlistGames(c.Context(), user.ID)
	if err != nil {
		return serviceError(c, "GetWishlist", err)
	}
	return c.JSON(fiber.Map{"games": games})
}

func (h *Handler) AddToWishlist(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	gameID, err := paramUint(c, "gameId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid game id"})
	}
	if err := h.wishlistSvc.AddWishlistItem(c.Context(), user.ID, gameID); err != nil {
		return serviceError(c, "AddToWishlist", err)
	}
	log.Printf("✅ [WISHLIST] User %d added game %d", user.ID, gameID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "message": "game added to wishlist"})
}

func (h *Handler) RemoveFromWishlist(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	gameID, err := paramUint(c, "gameId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid game id"})
	}
	if err := h.wishlistSvc.RemoveWishlistItem(c.Context(), user.ID, gameID); err != nil {
		return serviceError(c, "RemoveFromWishlist", err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "game removed from wishlist"})
}

func (h *Handler) CheckWishlist(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	gameID, err := paramUint(c, "gameId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid game id"})
	}
	inWishlist, err := h.wishlistSvc.IsGameInWishlist(c.Context(), user.ID, gameID)
	if err != nil {
		return serviceError(c, "CheckWishlist", err)
	}
	return c.JSON(fiber.Map{"in_wishlist": inWishlist})
}
