package server

import (
	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/upload?filename=...
// The image bytes are the raw request body. The processed blob's location is
// returned along with its pathname and content type.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	filename := c.Query("filename")
	if filename == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No filename supplied"))
	}

	result, err := s.imageService.Upload(c.UserContext(), userID, filename, c.Body())
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
