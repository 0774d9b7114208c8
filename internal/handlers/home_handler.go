package handlers

import (
	"time"

	"bikinibottom/internal/middleware"
	"bikinibottom/internal/views"

	"github.com/gofiber/fiber/v2"
)

// HomeHandler serves the landing page and the health check.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// RegisterRoutes registers the public routes.
func (h *HomeHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.ShowHome)
	router.Get("/health", h.HandleHealth)
}

// ShowHome renders the landing page.
func (h *HomeHandler) ShowHome(c *fiber.Ctx) error {
	return c.Render("index", views.Page{
		Title:   "Welcome to Bikini Bottom Portal",
		User:    middleware.CurrentUser(c),
		Success: c.Query(successParam),
		Error:   c.Query(errorParam),
	})
}

// HandleHealth reports liveness.
func (h *HomeHandler) HandleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
