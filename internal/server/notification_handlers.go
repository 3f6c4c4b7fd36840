package server

import (
	"github.com/gofiber/fiber/v2"
)

// ListNotifications handles GET /api/notifications
func (s *Server) ListNotifications(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	notifications, err := s.notifications.ListMine(c.Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(notifications)
}

// MarkNotificationRead handles POST /api/notifications/:id/read
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	notificationID, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.notifications.MarkRead(c.Context(), actor.ID, notificationID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllNotificationsRead handles POST /api/notifications/read-all
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.notifications.MarkAllRead(c.Context(), actor.ID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UnreadNotificationCount handles GET /api/notifications/unread-count
func (s *Server) UnreadNotificationCount(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	count, err := s.notifications.UnreadCount(c.Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"unread": count})
}
