package middleware

import (
	"log"

	"bikinibottom/internal/models"
	"bikinibottom/internal/session"

	"github.com/gofiber/fiber/v2"
)

// LocalsUserKey is where LoadSession stores the current *models.PublicUser.
const LocalsUserKey = "user"

// LoadSession resolves the request's session once and exposes the user to
// later handlers and templates through c.Locals.
func LoadSession(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := sessions.Current(c)
		if err != nil {
			log.Printf("Session lookup failed: %v", err)
			user = nil
		}
		c.Locals(LocalsUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user LoadSession found, or nil.
func CurrentUser(c *fiber.Ctx) *models.PublicUser {
	user, _ := c.Locals(LocalsUserKey).(*models.PublicUser)
	return user
}

// RequireAuth sends visitors without a session to the login page.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Redirect("/auth/login")
		}
		return c.Next()
	}
}

// RequireGuest sends logged-in users away from the login and register pages.
func RequireGuest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) != nil {
			return c.Redirect("/profile")
		}
		return c.Next()
	}
}
