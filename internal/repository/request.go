package repository

import (
	"context"
	"errors"

	"mealbridge/internal/models"

	"gorm.io/gorm"
)

// RequestRepository defines the interface for pickup-request data operations
type RequestRepository interface {
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, id uint) (*models.Request, error)
	GetByListingAndReceiver(ctx context.Context, listingID, receiverID uint) (*models.Request, error)
	ListByReceiver(ctx context.Context, receiverID uint) ([]models.Request, error)
	ListIncoming(ctx context.Context, donorID uint) ([]models.Request, error)
	Delete(ctx context.Context, id uint) error
}

// requestRepository implements RequestRepository
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.Request, error) {
	var request models.Request
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Receiver").
		First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetByListingAndReceiver returns nil without error when no request exists
// for the pair.
func (r *requestRepository) GetByListingAndReceiver(ctx context.Context, listingID, receiverID uint) (*models.Request, error) {
	var request models.Request
	err := r.db.WithContext(ctx).
		Where("listing_id = ? AND receiver_id = ?", listingID, receiverID).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) ListByReceiver(ctx context.Context, receiverID uint) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Listing.Donor").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListIncoming returns all requests targeting the donor's listings, pending
// first, newest first within a status.
func (r *requestRepository) ListIncoming(ctx context.Context, donorID uint) ([]models.Request, error) {
	var requests []models.Request
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Receiver").
		Joins("JOIN listings ON listings.id = requests.listing_id").
		Where("listings.donor_id = ?", donorID).
		Order("CASE requests.status WHEN 'PENDING' THEN 0 ELSE 1 END, requests.created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Request{}, id).Error
}
