package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
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

var errAppointmentNotFound = httperr.NotFoundErr("appointment_not_found", "Appointment not found.")

// TransitionAppointment applies a lifecycle event (confirm, reject,
// complete, cancel, no_show) to one appointment.
type TransitionAppointment struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    *audit.Dispatcher
	clock    timezone.Clock
	logger   *zap.Logger
}

func NewTransitionAppointment(
	repo domain.Repository,
	notifier notify.Notifier,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	logger *zap.Logger,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		clock:    clock,
		logger:   logger,
	}
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	caller identity.Caller,
	appointmentID uint,
	event string,
) (*models.Appointment, error) {

	ev, ok := domain.ParseEvent(event)
	if !ok {
		return nil, httperr.Validation("unknown_event", "Unknown appointment action.")
	}

	now := uc.clock()

	var from string
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.LockAppointment(ctx, appointmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errAppointmentNotFound
			}
			return err
		}
		from = ap.Status

		freesSlot, err := domain.Apply(ap, caller, ev, now)
		if err != nil {
			return err
		}

		if ev == domain.EventConfirm && ap.CalendarEventID == nil {
			ref := uuid.NewString()
			ap.CalendarEventID = &ref
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		if freesSlot {
			return tx.SetSlotAvailability(ctx, ap.SlotID, true)
		}
		return nil
	})
	if err != nil {
		if _, ok := httperr.AsBusiness(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("%s appointment %d: %w", ev, appointmentID, err)
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("reload appointment %d: %w", appointmentID, err)
	}

	uc.logger.Info("appointment transitioned",
		zap.Uint("appointment_id", ap.ID),
		zap.String("from", from),
		zap.String("to", ap.Status),
		zap.Uint("by", caller.UserID),
	)

	uc.notifyParties(ctx, caller, ev, ap)

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "appointment_" + string(ev),
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"from": from, "to": ap.Status},
	})

	return ap, nil
}

func (uc *TransitionAppointment) notifyParties(
	ctx context.Context,
	caller identity.Caller,
	ev domain.Event,
	ap *models.Appointment,
) {
	when := fmt.Sprintf("%s at %s", ap.Slot.Date.Format(timezone.DateLayout), ap.Slot.StartTime)

	switch ev {
	case domain.EventConfirm:
		uc.notifier.Notify(ctx, ap.StudentID, "Appointment confirmed",
			fmt.Sprintf("%s confirmed your appointment on %s.", ap.Specialist.FullName(), when), &ap.ID)
	case domain.EventReject:
		uc.notifier.Notify(ctx, ap.StudentID, "Appointment rejected",
			fmt.Sprintf("%s could not take your appointment on %s. You can book another slot.", ap.Specialist.FullName(), when), &ap.ID)
	case domain.EventComplete:
		uc.notifier.Notify(ctx, ap.StudentID, "Appointment completed",
			fmt.Sprintf("Your appointment on %s with %s was marked as completed.", when, ap.Specialist.FullName()), &ap.ID)
	case domain.EventCancel:
		if caller.UserID == ap.StudentID {
			uc.notifier.Notify(ctx, ap.SpecialistID, "Appointment cancelled",
				fmt.Sprintf("%s cancelled the appointment on %s.", ap.Student.FullName(), when), &ap.ID)
		} else {
			uc.notifier.Notify(ctx, ap.StudentID, "Appointment cancelled",
				fmt.Sprintf("%s cancelled your appointment on %s.", ap.Specialist.FullName(), when), &ap.ID)
		}
	}
}
