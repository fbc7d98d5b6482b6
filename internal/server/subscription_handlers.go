package server

import (
	"net/url"
	"strings"

	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetVAPIDPublicKey handles GET /api/push-subscriptions/vapid-public-key
func (s *Server) GetVAPIDPublicKey(c *fiber.Ctx) error {
	if s.config.VAPIDPublicKey == "" {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("VAPID key", "public"))
	}
	return c.JSON(fiber.Map{"public_key": s.config.VAPIDPublicKey})
}

// SubscribePush handles POST /api/push-subscriptions
// The body mirrors the browser PushSubscription JSON shape.
func (s *Server) SubscribePush(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Endpoint string `json:"endpoint"`
		Keys     struct {
			P256dh string `json:"p256dh"`
			Auth   string `json:"auth"`
		} `json:"keys"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.Endpoint = strings.TrimSpace(req.Endpoint)
	if req.Endpoint == "" || req.Keys.P256dh == "" || req.Keys.Auth == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Endpoint and keys are required"))
	}
	if parsed, err := url.ParseRequestURI(req.Endpoint); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Endpoint must be a valid URL"))
	}

	sub := &models.PushSubscription{
		UserID:   userID,
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}
	if err := s.subRepo.Upsert(c.UserContext(), sub); err != nil {
		return respondAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"subscribed": true})
}

// UnsubscribePush handles DELETE /api/push-subscriptions
func (s *Server) UnsubscribePush(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Endpoint string `json:"endpoint"`
	}
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Endpoint) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Endpoint is required"))
	}

	if err := s.subRepo.DeleteByUserAndEndpoint(c.UserContext(), userID, strings.TrimSpace(req.Endpoint)); err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{"unsubscribed": true})
}
