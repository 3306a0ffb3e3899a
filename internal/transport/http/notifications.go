// internal/transport/http/notifications.go
package http

import (
	"github.com/1craig1/game-release-tracker/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetNotifications(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	notifications, err := h.notifService.GetUserNotifications(c.Context(), user.ID)
	if err != nil {
		return serviceError(c, "GetNotifications", err)
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

func (h *Handler) GetUnreadNotifications(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	notifications, err := h.notifService.GetUnreadNotifications(c.Context(), user.ID)
	if err != nil {
		return serviceError(c, "GetUnreadNotifications", err)
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

func (h *Handler) GetUnreadCount(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	count, err := h.notifService.GetUnreadNotificationCount(c.Context(), user.ID)
	if err != nil {
		return serviceError(c, "GetUnreadCount", err)
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification id"})
	}
	if err := h.notifService.MarkAsRead(c.Context(), id, user.ID); err != nil {
		return serviceError(c, "MarkNotificationRead", err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "notification marked as read"})
}

func (h *Handler) MarkNotificationUnread(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification id"})
	}
	if err := h.notifService.MarkAsNotRead(c.Context(), id, user.ID); err != nil {
		return serviceError(c, "MarkNotificationUnread", err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "notification marked as unread"})
}

func (h *Handler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	if err := h.notifService.MarkAllAsRead(c.Context(), user.ID); err != nil {
		return serviceError(c, "MarkAllNotificationsRead", err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "all notifications marked as read"})
}

func (h *Handler) DeleteNotification(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	id, err := paramUint(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification id"})
	}
	if err := h.notifService.DeleteNotification(c.Context(), id, user.ID); err != nil {
		return serviceError(c, "DeleteNotification", err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "notification deleted"})
}
