package server

import (
	"github.com/gofiber/fiber/v2"
)

// CreateRequest handles POST /api/requests
func (s *Server) CreateRequest(c *fiber.Ctx) error {
	actor, err := s.ensureActor(c)
	if err != nil {
		return respondError(c, err)
	}

	var body struct {
		ListingID uint   `json:"listing_id"`
		Message   string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, err)
	}

	request, err := s.requests.Create(c.Context(), actor, body.ListingID, body.Message)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// CancelRequest handles DELETE /api/requests/:id
func (s *Server) CancelRequest(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	requestID, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.requests.Cancel(c.Context(), actor, requestID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListMyRequests handles GET /api/requests/mine
func (s *Server) ListMyRequests(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	requests, err := s.requests.ListMine(c.Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(requests)
}

// ListIncomingRequests handles GET /api/requests/incoming
func (s *Server) ListIncomingRequests(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	requests, err := s.requests.ListIncoming(c.Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(requests)
}

// AcceptRequest handles POST /api/requests/:id/accept
func (s *Server) AcceptRequest(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	requestID, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.matching.AcceptRequest(c.Context(), actor, requestID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}
