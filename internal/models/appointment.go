package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StudentID uint `gorm:"not null" json:"student_id"`
	Student   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	SpecialistID uint `gorm:"not null" json:"specialist_id"`
	Specialist   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	SlotID uint     `gorm:"not null" json:"slot_id"`
	Slot   TimeSlot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Reason string `gorm:"type:text;not null" json:"reason"`
	Status string `gorm:"size:20;not null;default:'PENDING'" json:"status"`

	CalendarEventID *string `gorm:"size:255" json:"calendar_event_id,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy *uint      `json:"cancelled_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
