package server

import (
	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/photos/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), userID, photoID, req.Content)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

// GetComments handles GET /api/photos/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.GetComments(c.UserContext(), photoID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"comments": comments})
}
