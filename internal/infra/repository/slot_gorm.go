package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

const constraintSlotStart = "uq_time_slots_specialist_start"

type SlotGormRepository struct {
	db *gorm.DB
}

func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{db: db}
}

func (r *SlotGormRepository) CreateSlot(
	ctx context.Context,
	s *models.TimeSlot,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
	if httperr.IsUniqueViolation(err, constraintSlotStart) {
		return domain.ErrDuplicate()
	}
	return err
}

func (r *SlotGormRepository) SlotExists(
	ctx context.Context,
	specialistID uint,
	date time.Time,
	start string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TimeSlot{}).
		Where(
			"specialist_id = ? AND date = ? AND start_time = ?",
			specialistID, date.Format("2006-01-02"), start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *SlotGormRepository) GetSlot(
	ctx context.Context,
	slotID uint,
) (*models.TimeSlot, error) {

	var s models.TimeSlot
	if err := r.db.WithContext(ctx).
		Preload("Specialist").
		First(&s, slotID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SlotGormRepository) ListAvailable(
	ctx context.Context,
	from time.Time,
	specialistID *uint,
) ([]models.TimeSlot, error) {

	q := r.db.WithContext(ctx).
		Preload("Specialist").
		Where("available = ? AND date >= ?", true, from.Format("2006-01-02"))

	if specialistID != nil {
		q = q.Where("specialist_id = ?", *specialistID)
	}

	var slots []models.TimeSlot
	if err := ordered(q).Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SlotGormRepository) ListBySpecialist(
	ctx context.Context,
	specialistID uint,
) ([]models.TimeSlot, error) {

	var slots []models.TimeSlot
	if err := ordered(r.db.WithContext(ctx).
		Preload("Specialist").
		Where("specialist_id = ?", specialistID)).
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SlotGormRepository) ListAll(
	ctx context.Context,
) ([]models.TimeSlot, error) {

	var slots []models.TimeSlot
	if err := ordered(r.db.WithContext(ctx).Preload("Specialist")).
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SlotGormRepository) CountAppointments(
	ctx context.Context,
	slotID uint,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("slot_id = ?", slotID).
		Count(&count).Error
	return count, err
}

func (r *SlotGormRepository) DeleteSlot(
	ctx context.Context,
	slotID uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.TimeSlot{}, slotID)
	if res.Error != nil {
		if httperr.IsForeignKeyViolation(res.Error) {
			return httperr.Conflict("slot_has_appointments", "Slots referenced by appointments cannot be deleted.")
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func ordered(q *gorm.DB) *gorm.DB {
	return q.Order("date ASC").Order("start_time ASC")
}

// Compile-time check
var _ domain.Repository = (*SlotGormRepository)(nil)
