// internal/transport/http/routes.go
package http

import (
	"log"

	"github.com/1craig1/game-release-tracker/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts every API route group on the app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	requireAuth := middleware.RequireAuth(h.authService, h.sessionTTL(), h.rememberMeTTL())

	// 1. Public routes
	api := app.Group("/api/v1")
	api.Post("/auth/register", h.Register)
	api.Post("/auth/login", h.Login)
	api.Post("/auth/logout", h.Logout)
	api.Get("/games", h.ListGames)
	api.Get("/games/:id", h.GetGame)
	log.Println("✅ [ROUTES] Registered public routes: /api/v1/auth/*, /api/v1/games*")

	// 2. Authenticated routes
	authed := api.Group("", requireAuth)
	authed.Get("/auth/me", h.Me)
	authed.Put("/profile", h.UpdateProfile)
	authed.Put("/profile/password", h.UpdatePassword)
	authed.Get("/wishlist", h.GetWishlist)
	authed.Post("/wishlist/:gameId", h.AddToWishlist)
	authed.Delete("/wishlist/:gameId", h.RemoveFromWishlist)
	authed.Get("/wishlist/:gameId/status", h.CheckWishlist)
	authed.Get("/notifications", h.GetNotifications)
	authed.Get("/notifications/unread", h.GetUnreadNotifications)
	authed.Get("/notifications/unread/count", h.GetUnreadCount)
	authed.Post("/notifications/read-all", h.MarkAllNotificationsRead)
	authed.Post("/notifications/:id/read", h.MarkNotificationRead)
	authed.Post("/notifications/:id/unread", h.MarkNotificationUnread)
	authed.Delete("/notifications/:id", h.DeleteNotification)
	log.Println("✅ [ROUTES] Registered user routes: /api/v1/wishlist*, /api/v1/notifications*")

	// 3. Admin routes
	admin := api.Group("/admin", requireAuth, middleware.RequireAdmin())
	admin.Post("/sync", h.TriggerSync)
	log.Println("✅ [ROUTES] Registered admin routes: /api/v1/admin/*")
}
