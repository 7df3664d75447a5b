package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/campus-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
	"github.com/BruksfildServices01/campus-scheduler/internal/notify"
	"github.com/BruksfildServices01/campus-scheduler/internal/timezone"
)

const maxReasonLength = 2000

var (
	errSlotUnavailable = httperr.Conflict("slot_unavailable", "This slot is no longer available.")
	errActiveExists    = httperr.Conflict("active_appointment_exists", "You already have an active appointment.")
)

type BookSlot struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    *audit.Dispatcher
	clock    timezone.Clock
	logger   *zap.Logger
}

func NewBookSlot(
	repo domain.Repository,
	notifier notify.Notifier,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	logger *zap.Logger,
) *BookSlot {
	return &BookSlot{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		clock:    clock,
		logger:   logger,
	}
}

// Execute books slotID for the calling student. The slot row is locked for
// the whole transaction; two students racing for one slot are serialized
// and the loser sees slot_unavailable.
func (uc *BookSlot) Execute(
	ctx context.Context,
	caller identity.Caller,
	slotID uint,
	reason string,
) (*models.Appointment, error) {

	if err := caller.Require(identity.RoleStudent); err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, httperr.Validation("reason_required", "Please describe the reason for the appointment.")
	}
	if len(reason) > maxReasonLength {
		return nil, httperr.Validation("reason_too_long", "Reason is too long.")
	}

	// advisory; the partial unique index is the real guard
	active, err := uc.repo.HasActiveAppointment(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, errActiveExists
	}

	today := timezone.Today(uc.clock())

	var ap *models.Appointment
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		slot, err := tx.LockSlot(ctx, slotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.NotFoundErr("slot_not_found", "Slot not found.")
			}
			return err
		}

		if !slot.Available || dayOf(slot, today).Before(today) {
			return errSlotUnavailable
		}

		if err := tx.SetSlotAvailability(ctx, slot.ID, false); err != nil {
			return err
		}

		ap = &models.Appointment{
			StudentID:    caller.UserID,
			SpecialistID: slot.SpecialistID,
			SlotID:       slot.ID,
			Reason:       reason,
			Status:       string(domain.InitialStatus()),
		}
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}
		ap.Slot = *slot
		return nil
	})
	if err != nil {
		if _, ok := httperr.AsBusiness(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("book slot %d: %w", slotID, err)
	}

	uc.logger.Info("appointment booked",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("slot_id", slotID),
		zap.Uint("student_id", caller.UserID),
	)

	uc.notifier.Notify(ctx, ap.SpecialistID,
		"New booking request",
		fmt.Sprintf("A student requested the %s %s slot.", ap.Slot.Date.Format(timezone.DateLayout), ap.Slot.StartTime),
		&ap.ID,
	)

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]uint{"slot_id": slotID},
	})

	return ap, nil
}
