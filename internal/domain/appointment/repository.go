package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

type ListFilter struct {
	StudentID    *uint
	SpecialistID *uint
	Statuses     []Status
	From         *time.Time
	To           *time.Time
}

type Repository interface {
	// Transaction runs fn in one database transaction; fn receives a
	// repository bound to it. Any error rolls back.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Slot (inside booking / transitions) --------
	LockSlot(
		ctx context.Context,
		slotID uint,
	) (*models.TimeSlot, error)

	SetSlotAvailability(
		ctx context.Context,
		slotID uint,
		available bool,
	) error

	// -------- Appointment (create) --------
	HasActiveAppointment(
		ctx context.Context,
		studentID uint,
	) (bool, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	LockAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	ListConfirmedOn(
		ctx context.Context,
		date time.Time,
	) ([]models.Appointment, error)
}
