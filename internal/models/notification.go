package models

import "time"

// NotificationKind categorizes a notification for presentation.
type NotificationKind string

const (
	NotificationInfo    NotificationKind = "INFO"
	NotificationSuccess NotificationKind = "SUCCESS"
	NotificationWarning NotificationKind = "WARNING"
)

// Notification is an advisory record addressed to one user. Lifecycle
// managers only ever append these; the recipient reads and mutates the read
// flag independently.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	Kind      NotificationKind `gorm:"type:varchar(20);default:'INFO'" json:"kind"`
	Message   string           `gorm:"not null" json:"message"`
	Link      string           `json:"link,omitempty"`
	Read      bool             `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time        `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}
