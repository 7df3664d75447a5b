package slot

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/campus-scheduler/internal/audit"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
)

// DeleteSlot removes a slot nobody ever booked. Slots referenced by any
// appointment, active or historical, are kept.
type DeleteSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteSlot(repo domain.Repository, audit *audit.Dispatcher) *DeleteSlot {
	return &DeleteSlot{repo: repo, audit: audit}
}

func (uc *DeleteSlot) Execute(
	ctx context.Context,
	caller identity.Caller,
	slotID uint,
) error {

	if err := caller.Require(identity.RoleAdmin); err != nil {
		return err
	}

	if _, err := uc.repo.GetSlot(ctx, slotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFoundErr("slot_not_found", "Slot not found.")
		}
		return err
	}

	n, err := uc.repo.CountAppointments(ctx, slotID)
	if err != nil {
		return err
	}
	if n > 0 {
		return httperr.Conflict("slot_has_appointments", "Slots referenced by appointments cannot be deleted.")
	}

	if err := uc.repo.DeleteSlot(ctx, slotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFoundErr("slot_not_found", "Slot not found.")
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "slot_deleted",
		Entity:   "time_slot",
		EntityID: &slotID,
	})

	return nil
}
