package service

import (
	"context"
	"errors"
	"time"

	"mealbridge/internal/models"
	"mealbridge/internal/repository"
	"mealbridge/internal/validation"

	"gorm.io/gorm"
)

// ListingService governs a food listing's own lifecycle, independent of any
// requests targeting it.
type ListingService struct {
	db              *gorm.DB
	listingRepo     repository.ListingRepository
	reservationRepo repository.ReservationRepository
}

// NewListingService returns a new ListingService.
func NewListingService(db *gorm.DB, listingRepo repository.ListingRepository, reservationRepo repository.ReservationRepository) *ListingService {
	return &ListingService{
		db:              db,
		listingRepo:     listingRepo,
		reservationRepo: reservationRepo,
	}
}

// Create validates the input and inserts an ACTIVE listing owned by the donor.
func (s *ListingService) Create(ctx context.Context, donor *models.User, in validation.ListingInput) (*models.Listing, error) {
	expiry, verr := validation.ValidateListing(in, time.Now())
	if verr != nil {
		return nil, verr
	}

	listing := &models.Listing{
		DonorID:       donor.ID,
		Title:         in.Title,
		Description:   in.Description,
		FoodType:      models.FoodType(in.FoodType),
		Quantity:      in.Quantity,
		ExpiryTime:    expiry,
		PickupAddress: in.PickupAddress,
		PickupLat:     in.PickupLat,
		PickupLng:     in.PickupLng,
		ShowExactMap:  in.ShowExactMap,
		ContactPhone:  in.ContactPhone,
		Status:        models.ListingStatusActive,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Update edits the listing's descriptive fields. Only the owning donor may
// edit, and only while the listing is ACTIVE; a listing mid-negotiation or
// historical is immutable.
func (s *ListingService) Update(ctx context.Context, actor *models.User, listingID uint, in validation.ListingInput) (*models.Listing, error) {
	listing, err := s.getListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.DonorID != actor.ID {
		return nil, models.NewUnauthorizedError("Only the listing's donor can edit it")
	}
	if listing.Status != models.ListingStatusActive {
		return nil, models.NewInvalidStateError("Only active listings can be edited")
	}

	expiry, verr := validation.ValidateListing(in, time.Now())
	if verr != nil {
		return nil, verr
	}

	listing.Title = in.Title
	listing.Description = in.Description
	listing.FoodType = models.FoodType(in.FoodType)
	listing.Quantity = in.Quantity
	listing.ExpiryTime = expiry
	listing.PickupAddress = in.PickupAddress
	listing.PickupLat = in.PickupLat
	listing.PickupLng = in.PickupLng
	listing.ShowExactMap = in.ShowExactMap
	listing.ContactPhone = in.ContactPhone

	rows, err := s.listingRepo.UpdateDetails(ctx, listing)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, models.NewInvalidStateError("Only active listings can be edited")
	}
	return listing, nil
}

// Delete removes the listing and cascades deletion of its still-PENDING
// requests. A listing with a reservation, whatever the reservation's status,
// can never be deleted.
func (s *ListingService) Delete(ctx context.Context, actor *models.User, listingID uint) error {
	listing, err := s.getListing(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.DonorID != actor.ID {
		return models.NewUnauthorizedError("Only the listing's donor can delete it")
	}

	reservation, err := s.reservationRepo.GetByListingID(ctx, listingID)
	if err != nil {
		return err
	}
	if reservation != nil {
		return models.NewInvalidStateError("Listings with an existing pickup cannot be deleted")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("listing_id = ? AND status = ?", listingID, models.RequestStatusPending).
			Delete(&models.Request{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Listing{}, listingID).Error
	})
}

// ToggleVisibility flips the listing between ACTIVE and INACTIVE. Reserved
// and completed listings are immutable.
func (s *ListingService) ToggleVisibility(ctx context.Context, actor *models.User, listingID uint) (*models.Listing, error) {
	listing, err := s.getListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.DonorID != actor.ID {
		return nil, models.NewUnauthorizedError("Only the listing's donor can change its visibility")
	}

	var next models.ListingStatus
	switch listing.Status {
	case models.ListingStatusActive:
		next = models.ListingStatusInactive
	case models.ListingStatusInactive:
		next = models.ListingStatusActive
	default:
		return nil, models.NewInvalidStateError("Reserved or completed listings cannot be toggled")
	}

	if err := s.listingRepo.UpdateStatus(ctx, listingID, next); err != nil {
		return nil, err
	}
	listing.Status = next
	return listing, nil
}

// ListActive returns the feed of open listings: ACTIVE status with expiry in
// the future.
func (s *ListingService) ListActive(ctx context.Context, limit, offset int) ([]models.Listing, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.listingRepo.ListActive(ctx, time.Now(), limit, offset)
}

// ListByDonor returns all of the donor's listings regardless of status.
func (s *ListingService) ListByDonor(ctx context.Context, donorID uint) ([]models.Listing, error) {
	return s.listingRepo.ListByDonor(ctx, donorID)
}

// GetByID returns a single listing.
func (s *ListingService) GetByID(ctx context.Context, listingID uint) (*models.Listing, error) {
	return s.getListing(ctx, listingID)
}

func (s *ListingService) getListing(ctx context.Context, listingID uint) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Listing", listingID)
	}
	if err != nil {
		return nil, err
	}
	return listing, nil
}
