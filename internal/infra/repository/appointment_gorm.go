package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

const (
	constraintActiveSlot    = "uq_appointments_active_slot"
	constraintActiveStudent = "uq_appointments_active_student"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Slot
// --------------------------------------------------

func (r *AppointmentGormRepository) LockSlot(
	ctx context.Context,
	slotID uint,
) (*models.TimeSlot, error) {

	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&slot, slotID).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *AppointmentGormRepository) SetSlotAvailability(
	ctx context.Context,
	slotID uint,
	available bool,
) error {
	return r.db.WithContext(ctx).
		Model(&models.TimeSlot{}).
		Where("id = ?", slotID).
		Updates(map[string]any{
			"available":  available,
			"updated_at": time.Now(),
		}).Error
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

func (r *AppointmentGormRepository) HasActiveAppointment(
	ctx context.Context,
	studentID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("student_id = ? AND status IN ?", studentID, statusStrings(domain.ActiveStatuses)).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
	switch {
	case httperr.IsUniqueViolation(err, constraintActiveSlot):
		return httperr.Conflict("slot_unavailable", "This slot is no longer available.")
	case httperr.IsUniqueViolation(err, constraintActiveStudent):
		return httperr.Conflict("active_appointment_exists", "You already have an active appointment.")
	}
	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) LockAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.withDetails(ctx).First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.withDetails(ctx)

	if filter.StudentID != nil {
		q = q.Where("appointments.student_id = ?", *filter.StudentID)
	}
	if filter.SpecialistID != nil {
		q = q.Where("appointments.specialist_id = ?", *filter.SpecialistID)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("appointments.status IN ?", statusStrings(filter.Statuses))
	}
	if filter.From != nil {
		q = q.Where("appointments.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("appointments.created_at < ?", *filter.To)
	}

	var apps []models.Appointment
	if err := q.
		Order("appointments.created_at DESC").
		Order("appointments.id DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListConfirmedOn(
	ctx context.Context,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.withDetails(ctx).
		Select("appointments.*").
		Joins("JOIN time_slots ON time_slots.id = appointments.slot_id").
		Where("appointments.status = ? AND time_slots.date = ?", string(domain.StatusConfirmed), date.Format("2006-01-02")).
		Order("time_slots.start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Student").
		Preload("Specialist").
		Preload("Slot")
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// IsNotFound reports whether err is gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
