// internal/transport/http/auth.go
package http

import (
	"log"
	"strings"

	"github.com/1craig1/game-release-tracker/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username, email and password are required"})
	}
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password must be at least 8 characters"})
	}

	user, err := h.userService.CreateUser(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return serviceError(c, "Register", err)
	}

	log.Printf("✅ [AUTH] Registered user '%s'", user.Username)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username and password are required"})
	}

	result, err := h.authService.Login(c.Context(), req.Username, req.Password, req.RememberMe)
	if err != nil {
		return serviceError(c, "Login", err)
	}

	middleware.SetSessionCookie(c, result.SessionToken, h.sessionTTL())
	if result.RememberToken != "" {
		middleware.SetRememberMeCookie(c, result.RememberToken, h.rememberMeTTL())
	}

	log.Printf("✅ [AUTH] User '%s' logged in", result.User.Username)
	return c.JSON(fiber.Map{"user": result.User})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	sessionToken := c.Cookies(middleware.SessionCookieName)
	rememberSeries := ""
	if cookie := c.Cookies(middleware.RememberMeCookieName); cookie != "" {
		if series, _, ok := strings.Cut(cookie, ":"); ok {
			rememberSeries = series
		}
	}

	if sessionToken != "" || rememberSeries != "" {
		if err := h.authService.Logout(c.Context(), sessionToken, rememberSeries); err != nil {
			log.Printf("⚠️ [AUTH] Logout cleanup failed: %v", err)
		}
	}

	middleware.ClearCookie(c, middleware.SessionCookieName)
	middleware.ClearCookie(c, middleware.RememberMeCookieName)
	return c.JSON(fiber.Map{"status": "success", "message": "logged out"})
}

// Me returns the authenticated user.
func (h *Handler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	return c.JSON(fiber.Map{"user": user})
}
