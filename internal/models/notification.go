package models

import "time"

// Notification is one entry in a user's persisted feed. Records are
// append-only: after creation only the Read flag ever changes, and it only
// moves from false to true.
type Notification struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Type          string    `gorm:"size:50;not null;index" json:"type"`
	Title         string    `gorm:"size:255" json:"title"`
	Message       string    `gorm:"type:text" json:"message"`
	AppointmentID *uint     `gorm:"index" json:"appointment_id,omitempty"`
	Read          bool      `gorm:"column:read;not null;default:false" json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
