package handlers

import (
	"errors"
	"log"

	"bikinibottom/internal/middleware"
	"bikinibottom/internal/models"
	"bikinibottom/internal/services"
	"bikinibottom/internal/session"
	"bikinibottom/internal/views"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles the logged-in user's profile pages and actions.
type ProfileHandler struct {
	profileService *services.ProfileService
	sessions       *session.Manager
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService, sessions *session.Manager) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		sessions:       sessions,
	}
}

// RegisterRoutes registers the profile routes; all of them need a session.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profile", middleware.RequireAuth())
	profileRoutes.Get("/", h.ShowProfile)
	profileRoutes.Post("/update", h.HandleUpdate)
	profileRoutes.Post("/add-jellyfish", h.HandleAddJellyfish)
	profileRoutes.Post("/eat-patty", h.HandleEatPatty)
}

// ShowProfile renders the stored profile, or returns it as JSON when the
// client asks for it.
func (h *ProfileHandler) ShowProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	profile, err := h.profileService.GetProfile(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return h.userVanished(c, err)
		}
		log.Printf("Profile error: %v", err)
		return redirectError(c, "/", genericFailureMessage)
	}

	if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
		return c.JSON(profile)
	}
	return c.Render("profile", views.Page{
		Title:   profile.FullName + "'s Profile",
		User:    profile,
		Profile: profile,
		Success: c.Query(successParam),
		Error:   c.Query(errorParam),
	})
}

// HandleUpdate applies the supplied profile fields.
func (h *ProfileHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.ProfileInput
	if err := c.BodyParser(&in); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return redirectError(c, "/profile", "No changes to update, me boy!")
	}
	return h.apply(c, func(id uint) (*models.PublicUser, error) {
		return h.profileService.UpdateProfile(id, in)
	}, "Profile updated successfully! You're the best, like no one ever was!", genericFailureMessage)
}

// HandleAddJellyfish adds one caught jellyfish.
func (h *ProfileHandler) HandleAddJellyfish(c *fiber.Ctx) error {
	return h.apply(c, h.profileService.AddJellyfish,
		"You caught a jellyfish!", "The jellyfish got away!")
}

// HandleEatPatty adds one eaten Krabby Patty.
func (h *ProfileHandler) HandleEatPatty(c *fiber.Ctx) error {
	return h.apply(c, h.profileService.EatPatty,
		"Yummy! Another Krabby Patty!", "The Krabby Patty fell in the water!")
}

// apply runs a profile mutation for the session's user, then copies the
// stored result into the session.
func (h *ProfileHandler) apply(c *fiber.Ctx, op func(id uint) (*models.PublicUser, error), success, failure string) error {
	user := middleware.CurrentUser(c)
	profile, err := op(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return h.userVanished(c, err)
		}
		return redirectFailure(c, "/profile", err, "Profile update", failure)
	}

	if err := h.sessions.Refresh(c, *profile); err != nil {
		log.Printf("Error refreshing session for user %d: %v", profile.ID, err)
	}
	return redirectSuccess(c, "/profile", success)
}

// userVanished handles a session whose user is no longer stored.
func (h *ProfileHandler) userVanished(c *fiber.Ctx, err error) error {
	if destroyErr := h.sessions.Destroy(c); destroyErr != nil {
		log.Printf("Error destroying session: %v", destroyErr)
	}
	msg, _ := services.UserMessage(err)
	return redirectError(c, "/auth/login", msg)
}
