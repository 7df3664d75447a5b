package appointment

import (
	"time"

	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Authorize checks that caller may apply ev to ap. Every event belongs to
// the owning specialist; cancel is also open to the owning student.
func Authorize(ap *models.Appointment, caller identity.Caller, ev Event) error {
	if caller.Is(identity.RoleSpecialist) && ap.SpecialistID == caller.UserID {
		return nil
	}
	if StudentMayTrigger(ev) && caller.Is(identity.RoleStudent) && ap.StudentID == caller.UserID {
		return nil
	}
	return httperr.Forbidden("not_appointment_owner", "You are not allowed to change this appointment.")
}

// Apply authorizes and performs ev on ap, stamping the matching timestamp.
// It reports whether the slot must be released in the same transaction.
func Apply(ap *models.Appointment, caller identity.Caller, ev Event, now time.Time) (bool, error) {
	if err := Authorize(ap, caller, ev); err != nil {
		return false, err
	}

	next, err := Next(Status(ap.Status), ev)
	if err != nil {
		return false, err
	}

	ap.Status = string(next)
	switch next {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusRejected:
		ap.RejectedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
		by := caller.UserID
		ap.CancelledBy = &by
	}

	return FreesSlot(ev), nil
}

// CanView reports whether caller may read ap.
func CanView(ap *models.Appointment, caller identity.Caller) bool {
	switch caller.Role {
	case identity.RoleAdmin:
		return true
	case identity.RoleSpecialist:
		return ap.SpecialistID == caller.UserID
	case identity.RoleStudent:
		return ap.StudentID == caller.UserID
	}
	return false
}
