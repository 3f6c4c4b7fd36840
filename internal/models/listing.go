package models

import "time"

// ListingStatus represents the lifecycle status of a food listing.
type ListingStatus string

const (
	// ListingStatusActive means the listing is visible and accepts requests.
	ListingStatusActive ListingStatus = "ACTIVE"
	// ListingStatusInactive means the donor paused the listing.
	ListingStatusInactive ListingStatus = "INACTIVE"
	// ListingStatusReserved means a request was accepted and a pickup is in flight.
	ListingStatusReserved ListingStatus = "RESERVED"
	// ListingStatusCompleted means the handoff was approved by the donor.
	ListingStatusCompleted ListingStatus = "COMPLETED"
)

// FoodType classifies the food offered by a listing.
type FoodType string

const (
	FoodTypeVeg    FoodType = "VEG"
	FoodTypeNonVeg FoodType = "NON_VEG"
	FoodTypeBoth   FoodType = "BOTH"
)

// Listing represents a posted food-donation offer. The donor is immutable
// after creation; only ACTIVE listings accept requests, and a RESERVED or
// COMPLETED listing is immutable except for the engine-driven transition to
// COMPLETED.
type Listing struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	DonorID       uint          `gorm:"not null;index" json:"donor_id"`
	Title         string        `gorm:"not null" json:"title"`
	Description   string        `gorm:"not null" json:"description"`
	FoodType      FoodType      `gorm:"type:varchar(20);not null" json:"food_type"`
	Quantity      string        `gorm:"not null" json:"quantity"`
	ExpiryTime    time.Time     `gorm:"not null" json:"expiry_time"`
	PickupAddress string        `gorm:"not null" json:"pickup_address"`
	PickupLat     float64       `json:"pickup_lat"`
	PickupLng     float64       `json:"pickup_lng"`
	// ShowExactMap controls whether exact coordinates are exposed before
	// a request is accepted.
	ShowExactMap bool          `gorm:"default:true" json:"show_exact_map"`
	ContactPhone string        `gorm:"not null" json:"contact_phone"`
	Status       ListingStatus `gorm:"type:varchar(20);default:'ACTIVE';index" json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	// Relationships
	Donor    User      `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Requests []Request `gorm:"foreignKey:ListingID" json:"requests,omitempty"`
}

// TableName specifies the table name for GORM
func (Listing) TableName() string {
	return "listings"
}

// Expired reports whether the listing's expiry instant has passed. Expiry is
// evaluated at read time; no background sweep changes listing status.
func (l *Listing) Expired(now time.Time) bool {
	return !l.ExpiryTime.After(now)
}
