// internal/middleware/auth.go
package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/1craig1/game-release-tracker/internal/service"
	"github.com/1craig1/game-release-tracker/pkg/models"

	"github.com/gofiber/fiber/v2"
)

// Context keys for user information (Fiber Locals use string keys)
const (
	CurrentUserContextKey = "currentUser"

	SessionCookieName    = "session_token"
	RememberMeCookieName = "remember_me"
)

// RequireAuth resolves the session cookie into a user. When the session is
// missing or expired it falls back to the remember-me cookie, rotating the
// token and issuing a fresh session on success.
//
// On success:
//   - sets locals: currentUser (*models.User)
//   - continues
//
// On failure:
//   - returns 401
func RequireAuth(authService *service.AuthService, sessionTTL, rememberMeTTL time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Cookies(SessionCookieName); token != "" {
			user, err := authService.ResolveSession(c.Context(), token)
			if err == nil {
				c.Locals(CurrentUserContextKey, user)
				return c.Next()
			}
		}

		// Session gone; try the remember-me cookie.
		if cookie := c.Cookies(RememberMeCookieName); cookie != "" {
			series, token, ok := strings.Cut(cookie, ":")
			if ok {
				result, err := authService.RedeemRememberMe(c.Context(), series, token)
				if err == nil {
					SetSessionCookie(c, result.SessionToken, sessionTTL)
					SetRememberMeCookie(c, result.RememberToken, rememberMeTTL)
					c.Locals(CurrentUserContextKey, result.User)
					return c.Next()
				}
				log.Printf("⚠️ [AUTH] Remember-me redemption failed: %v", err)
				ClearCookie(c, RememberMeCookieName)
			}
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := GetCurrentUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		if user.Role.Name != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
		}
		return c.Next()
	}
}

func GetCurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(CurrentUserContextKey).(*models.User)
	return user, ok
}

func SetSessionCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func SetRememberMeCookie(c *fiber.Ctx, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     RememberMeCookieName,
		Value:    value,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func ClearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
