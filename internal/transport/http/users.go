// internal/transport/http/users.go
package http

import (
	"log"
	"strings"

	"github.com/1craig1/game-release-tracker/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type updateProfileRequest struct {
	Username            string `json:"username"`
	Email               string `json:"email"`
	EnableNotifications *bool  `json:"enable_notifications"`
}

type updatePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	enableNotifications := user.EnableNotifications
	if req.EnableNotifications != nil {
		enableNotifications = *req.EnableNotifications
	}

	updated, err := h.userService.UpdateProfile(c.Context(),
		user.ID, strings.TrimSpace(req.Username), strings.TrimSpace(req.Email), enableNotifications)
	if err != nil {
		return serviceError(c, "UpdateProfile", err)
	}

	log.Printf("✅ [USER] Profile updated for user %d", user.ID)
	return c.JSON(fiber.Map{"user": updated})
}

func (h *Handler) UpdatePassword(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var req updatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "new_password is required"})
	}
	if len(req.NewPassword) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password must be at least 8 characters"})
	}
	if req.NewPassword != req.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "passwords do not match"})
	}

	err := h.userService.UpdatePassword(c.Context(), user.ID, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return serviceError(c, "UpdatePassword", err)
	}

	log.Printf("✅ [USER] Password changed for user %d", user.ID)
	return c.JSON(fiber.Map{"status": "success", "message": "password updated"})
}
