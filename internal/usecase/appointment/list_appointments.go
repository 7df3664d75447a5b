package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

// ScopeFor restricts a filter to what caller may see: students their own
// bookings, specialists the bookings on their slots, admins everything.
func ScopeFor(caller identity.Caller, f domain.ListFilter) (domain.ListFilter, error) {
	switch caller.Role {
	case identity.RoleStudent:
		f.StudentID = &caller.UserID
	case identity.RoleSpecialist:
		f.SpecialistID = &caller.UserID
	case identity.RoleAdmin:
	default:
		return f, httperr.Forbidden("role_not_allowed", "Your role cannot perform this action.")
	}
	return f, nil
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute returns the caller's appointments, newest first.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	caller identity.Caller,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	scoped, err := ScopeFor(caller, filter)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListAppointments(ctx, scoped)
}

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

// Execute hides appointments the caller may not view behind not-found.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	caller identity.Caller,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errAppointmentNotFound
		}
		return nil, err
	}

	if !domain.CanView(ap, caller) {
		return nil, errAppointmentNotFound
	}
	return ap, nil
}
