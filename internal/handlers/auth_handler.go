package handlers

import (
	"log"

	"bikinibottom/internal/middleware"
	"bikinibottom/internal/services"
	"bikinibottom/internal/session"
	"bikinibottom/internal/views"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Get("/login", middleware.RequireGuest(), h.ShowLogin)
	authRoutes.Post("/login", middleware.RequireGuest(), h.HandleLogin)
	authRoutes.Get("/register", middleware.RequireGuest(), h.ShowRegister)
	authRoutes.Post("/register", middleware.RequireGuest(), h.HandleRegister)
	authRoutes.Get("/logout", h.HandleLogout)
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return c.Render("login", views.Page{
		Title:   "Welcome to Bikini Bottom",
		Success: c.Query(successParam),
		Error:   c.Query(errorParam),
	})
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	return c.Render("register", views.Page{
		Title: "Join Bikini Bottom",
		Error: c.Query(errorParam),
	})
}

// HandleRegister creates the account and sends the visitor to log in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return redirectError(c, "/auth/register", "Please fill in all required fields, me boy!")
	}

	if _, err := h.authService.Register(in); err != nil {
		return redirectFailure(c, "/auth/register", err, "Registration", genericFailureMessage)
	}
	return redirectSuccess(c, "/auth/login", "Registration successful! Welcome to Bikini Bottom!")
}

// HandleLogin checks the credentials and starts a session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := c.BodyParser(&in); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return redirectError(c, "/auth/login", "Please fill in all fields, me boy!")
	}

	user, err := h.authService.Login(in)
	if err != nil {
		return redirectFailure(c, "/auth/login", err, "Login", genericFailureMessage)
	}
	if err := h.sessions.Login(c, *user); err != nil {
		log.Printf("Error starting session for user %s: %v", user.Username, err)
		return redirectError(c, "/auth/login", genericFailureMessage)
	}
	h.authService.RecordLogin(user)
	return redirectSuccess(c, "/profile", "Welcome back to Bikini Bottom!")
}

// HandleLogout ends the session, whether or not there was one.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.sessions.Destroy(c); err != nil {
		log.Printf("Logout error: %v", err)
	}
	h.authService.Logout(user)
	return redirectSuccess(c, "/", "See you later, alligator!")
}
