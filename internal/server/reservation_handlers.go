package server

import (
	"github.com/gofiber/fiber/v2"
)

// ListMyReservations handles GET /api/reservations/mine
func (s *Server) ListMyReservations(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	reservations, err := s.handoffs.ListMine(c.Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(reservations)
}

// MarkPickedUp handles POST /api/reservations/:id/pickup
func (s *Server) MarkPickedUp(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	reservationID, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	reservation, err := s.handoffs.MarkPickedUp(c.Context(), actor, reservationID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(reservation)
}

// ApproveCompletion handles POST /api/reservations/:id/approve
func (s *Server) ApproveCompletion(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	reservationID, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	reservation, err := s.handoffs.ApproveCompletion(c.Context(), actor, reservationID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(reservation)
}
