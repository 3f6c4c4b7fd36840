package repository

import (
	"context"
	"errors"

	"mealbridge/internal/models"

	"gorm.io/gorm"
)

// ReservationRepository defines the interface for reservation data operations
type ReservationRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Reservation, error)
	GetByListingID(ctx context.Context, listingID uint) (*models.Reservation, error)
	ListByParty(ctx context.Context, userID uint) ([]models.Reservation, error)
}

// reservationRepository implements ReservationRepository
type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Listing").
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetByListingID returns nil without error when the listing has no
// reservation.
func (r *reservationRepository) GetByListingID(ctx context.Context, listingID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		First(&reservation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListByParty returns reservations where the user is either the donor or
// the receiver.
func (r *reservationRepository) ListByParty(ctx context.Context, userID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Donor").
		Preload("Receiver").
		Where("donor_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}
