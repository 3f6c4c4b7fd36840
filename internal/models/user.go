// Package models contains data structures for the application's domain models.
package models

import "time"

// UserRole is a hint about how the user primarily uses the platform.
type UserRole string

const (
	// RoleDonor marks a user who primarily posts surplus food.
	RoleDonor UserRole = "DONOR"
	// RoleReceiver marks a user who primarily requests pickups.
	RoleReceiver UserRole = "RECEIVER"
)

// User represents an account mirrored from the external identity provider.
// Rows are created lazily the first time an identity posts a listing or a
// request; they are never deleted by this service.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ExternalID   string    `gorm:"uniqueIndex;not null" json:"external_id"`
	Email        string    `gorm:"not null" json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Role         UserRole  `gorm:"type:varchar(20);default:'RECEIVER'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Listings []Listing `gorm:"foreignKey:DonorID" json:"listings,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
