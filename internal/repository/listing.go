package repository

import (
	"context"
	"time"

	"mealbridge/internal/models"

	"gorm.io/gorm"
)

// ListingRepository defines the interface for listing data operations
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id uint) (*models.Listing, error)
	ListActive(ctx context.Context, now time.Time, limit, offset int) ([]models.Listing, error)
	ListByDonor(ctx context.Context, donorID uint) ([]models.Listing, error)
	UpdateDetails(ctx context.Context, listing *models.Listing) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.ListingStatus) error
}

// listingRepository implements ListingRepository
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.WithContext(ctx).Preload("Donor").First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// ListActive returns ACTIVE listings whose expiry is still in the future.
// Expired listings keep their status but drop out of the feed.
func (r *listingRepository) ListActive(ctx context.Context, now time.Time, limit, offset int) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Where("status = ? AND expiry_time > ?", models.ListingStatusActive, now).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&listings).Error
	return listings, err
}

func (r *listingRepository) ListByDonor(ctx context.Context, donorID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

// UpdateDetails rewrites the listing's editable fields, never its status.
// The write is conditional on the listing still being ACTIVE; zero rows
// affected means it changed state after the caller read it.
func (r *listingRepository) UpdateDetails(ctx context.Context, listing *models.Listing) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ? AND status = ?", listing.ID, models.ListingStatusActive).
		Updates(map[string]interface{}{
			"title":          listing.Title,
			"description":    listing.Description,
			"food_type":      listing.FoodType,
			"quantity":       listing.Quantity,
			"expiry_time":    listing.ExpiryTime,
			"pickup_address": listing.PickupAddress,
			"pickup_lat":     listing.PickupLat,
			"pickup_lng":     listing.PickupLng,
			"show_exact_map": listing.ShowExactMap,
			"contact_phone":  listing.ContactPhone,
		})
	return result.RowsAffected, result.Error
}

func (r *listingRepository) UpdateStatus(ctx context.Context, id uint, status models.ListingStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ?", id).
		Update("status", status).Error
}
