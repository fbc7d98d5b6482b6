package server

import (
	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	friends, err := s.friendService.GetFriends(c.UserContext(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	profiles := make([]models.PublicProfile, 0, len(friends))
	for _, f := range friends {
		profiles = append(profiles, f.Public())
	}
	return c.JSON(fiber.Map{"friends": profiles})
}

// GetFriendRequests handles GET /api/friends/requests
func (s *Server) GetFriendRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	incoming, err := s.friendService.GetIncomingRequests(c.UserContext(), userID)
	if err != nil {
		return respondAppError(c, err)
	}
	sent, err := s.friendService.GetSentRequests(c.UserContext(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"incoming": incoming,
		"sent":     sent,
	})
}

// SendFriendRequest handles POST /api/friends/requests
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Target user ID is required"))
	}

	request, err := s.friendService.SendRequest(c.UserContext(), userID, req.UserID)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"request": request})
}

// RespondToFriendRequest handles POST /api/friends/requests/:id/respond
func (s *Server) RespondToFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	switch req.Action {
	case "accept":
		friendship, err := s.friendService.AcceptRequest(c.UserContext(), userID, requestID)
		if err != nil {
			return respondAppError(c, err)
		}
		return c.JSON(fiber.Map{"friendship": friendship})
	case "decline":
		if err := s.friendService.DeclineRequest(c.UserContext(), userID, requestID); err != nil {
			return respondAppError(c, err)
		}
		return c.JSON(fiber.Map{"declined": true})
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Action must be \"accept\" or \"decline\""))
	}
}
