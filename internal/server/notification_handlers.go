package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	limit := c.QueryInt("limit", 50)

	notifications, err := s.notificationService.GetNotifications(c.UserContext(), userID, limit)
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"notifications": notifications})
}

// MarkAllNotificationsRead handles POST /api/notifications/read
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.notificationService.MarkAllRead(c.UserContext(), userID); err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"read": true})
}
