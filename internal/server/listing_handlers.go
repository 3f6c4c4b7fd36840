package server

import (
	"mealbridge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateListing handles POST /api/listings
func (s *Server) CreateListing(c *fiber.Ctx) error {
	actor, err := s.ensureActor(c)
	if err != nil {
		return respondError(c, err)
	}

	var input validation.ListingInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, err)
	}

	listing, err := s.listings.Create(c.Context(), actor, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(listing)
}

// UpdateListing handles PUT /api/listings/:id
func (s *Server) UpdateListing(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	listingID, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var input validation.ListingInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, err)
	}

	listing, err := s.listings.Update(c.Context(), actor, listingID, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(listing)
}

// DeleteListing handles DELETE /api/listings/:id
func (s *Server) DeleteListing(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	listingID, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.listings.Delete(c.Context(), actor, listingID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleListingVisibility handles POST /api/listings/:id/toggle
func (s *Server) ToggleListingVisibility(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	listingID, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	listing, err := s.listings.ToggleVisibility(c.Context(), actor, listingID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(listing)
}

// ListActiveListings handles GET /api/listings
func (s *Server) ListActiveListings(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	listings, err := s.listings.ListActive(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(listings)
}

// ListMyListings handles GET /api/listings/mine
func (s *Server) ListMyListings(c *fiber.Ctx) error {
	actor, err := s.resolveActor(c)
	if err != nil {
		return respondError(c, err)
	}

	listings, err := s.listings.ListByDonor(c.Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(listings)
}

// GetListing handles GET /api/listings/:id
func (s *Server) GetListing(c *fiber.Ctx) error {
	listingID, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	listing, err := s.listings.GetByID(c.Context(), listingID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(listing)
}
