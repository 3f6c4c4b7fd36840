package models

import "time"

// ReservationStatus represents the status of an in-flight pickup handoff.
type ReservationStatus string

const (
	// ReservationStatusInProgress means the pickup has been agreed but not happened.
	ReservationStatusInProgress ReservationStatus = "IN_PROGRESS"
	// ReservationStatusWaitingApproval means the receiver marked the food picked up.
	ReservationStatusWaitingApproval ReservationStatus = "WAITING_APPROVAL"
	// ReservationStatusCompleted means the donor approved the handoff.
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
)

// Reservation is created exactly once per listing, at the moment a request
// is accepted. Its donor and receiver are fixed for its lifetime; the
// conversation identifier binds it to its message thread and is globally
// unique.
type Reservation struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	ListingID      uint              `gorm:"not null;uniqueIndex" json:"listing_id"`
	DonorID        uint              `gorm:"not null;index" json:"donor_id"`
	ReceiverID     uint              `gorm:"not null;index" json:"receiver_id"`
	ConversationID string            `gorm:"uniqueIndex;not null" json:"conversation_id"`
	Status         ReservationStatus `gorm:"type:varchar(20);default:'IN_PROGRESS'" json:"status"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// Relationships
	Listing  Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	Donor    User    `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Receiver User    `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// TableName specifies the table name for GORM
func (Reservation) TableName() string {
	return "reservations"
}
