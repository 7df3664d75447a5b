package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"user_id"`

	Title   string `gorm:"size:200;not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`
	Read    bool   `gorm:"not null;default:false" json:"read"`

	// SET NULL on appointment deletion
	AppointmentID *uint `json:"appointment_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
