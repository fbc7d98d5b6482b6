package server

import (
	"glimpse/internal/models"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetByID(c.UserContext(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":             user,
		"profile_complete": user.ProfileComplete(),
	})
}

// UpdateMyProfile handles PATCH /api/users/me/profile
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var update service.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), userID, update)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":             user,
		"profile_complete": user.ProfileComplete(),
	})
}

// CompleteMyProfile handles POST /api/users/me/profile, the one-time initial
// profile setup. Rejected once the profile is complete.
func (s *Server) CompleteMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var update service.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CompleteProfile(c.UserContext(), userID, update)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":             user,
		"profile_complete": user.ProfileComplete(),
	})
}

// GetMyNotificationPreferences handles GET /api/users/me/notifications
func (s *Server) GetMyNotificationPreferences(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetByID(c.UserContext(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"preferences": user.Preferences()})
}

// UpdateMyNotificationPreferences handles PATCH /api/users/me/notifications
func (s *Server) UpdateMyNotificationPreferences(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var update service.PreferencesUpdate
	if err := c.BodyParser(&update); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdatePreferences(c.UserContext(), userID, update)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"preferences": user.Preferences()})
}

// SearchUsers handles GET /api/users/search?q=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")

	users, err := s.userService.Search(c.UserContext(), query)
	if err != nil {
		return respondAppError(c, err)
	}

	profiles := make([]models.PublicProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Public())
	}
	return c.JSON(fiber.Map{"users": profiles})
}
