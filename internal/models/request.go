package models

import "time"

// RequestStatus represents the status of a pickup request.
type RequestStatus string

const (
	// RequestStatusPending indicates the donor has not acted on the request yet.
	RequestStatusPending RequestStatus = "PENDING"
	// RequestStatusAccepted indicates the request won the listing.
	RequestStatusAccepted RequestStatus = "ACCEPTED"
	// RequestStatusRejected indicates another request won the listing.
	RequestStatusRejected RequestStatus = "REJECTED"
)

// Request represents a receiver's bid to claim a listing. At most one
// request exists per (listing, receiver) pair, and a receiver never requests
// their own listing.
type Request struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	ListingID  uint          `gorm:"not null;index;uniqueIndex:idx_listing_receiver" json:"listing_id"`
	ReceiverID uint          `gorm:"not null;index;uniqueIndex:idx_listing_receiver" json:"receiver_id"`
	Message    string        `json:"message"`
	Status     RequestStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	// Relationships
	Listing  Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	Receiver User    `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// TableName specifies the table name for GORM
func (Request) TableName() string {
	return "requests"
}
