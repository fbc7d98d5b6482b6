package server

import (
	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePhoto handles POST /api/photos
func (s *Server) CreatePhoto(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		ImageURL string `json:"image_url"`
		Caption  string `json:"caption"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	photo, err := s.photoService.CreatePhoto(c.UserContext(), userID, req.ImageURL, req.Caption)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"photo": photo})
}

// GetFeed handles GET /api/photos/feed. Signed-out viewers get an empty feed.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.JSON(fiber.Map{"photos": []models.Photo{}})
	}

	photos, err := s.photoService.GetFeed(c.UserContext(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"photos": photos})
}

// GetPhoto handles GET /api/photos/:id
func (s *Server) GetPhoto(c *fiber.Ctx) error {
	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	photo, err := s.photoService.GetPhoto(c.UserContext(), photoID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"photo": photo})
}
