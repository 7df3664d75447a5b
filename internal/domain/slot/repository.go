package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

type Repository interface {
	CreateSlot(
		ctx context.Context,
		s *models.TimeSlot,
	) error

	SlotExists(
		ctx context.Context,
		specialistID uint,
		date time.Time,
		start string,
	) (bool, error)

	GetSlot(
		ctx context.Context,
		slotID uint,
	) (*models.TimeSlot, error)

	// ListAvailable returns available slots dated on or after from,
	// optionally restricted to one specialist.
	ListAvailable(
		ctx context.Context,
		from time.Time,
		specialistID *uint,
	) ([]models.TimeSlot, error)

	ListBySpecialist(
		ctx context.Context,
		specialistID uint,
	) ([]models.TimeSlot, error)

	ListAll(
		ctx context.Context,
	) ([]models.TimeSlot, error)

	CountAppointments(
		ctx context.Context,
		slotID uint,
	) (int64, error)

	DeleteSlot(
		ctx context.Context,
		slotID uint,
	) error
}
