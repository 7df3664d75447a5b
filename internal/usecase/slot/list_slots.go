package slot

import (
	"context"

	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
	"github.com/BruksfildServices01/campus-scheduler/internal/timezone"
)

// ======================================================
// AVAILABLE (public)
// ======================================================

type ListAvailableSlots struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListAvailableSlots(repo domain.Repository, clock timezone.Clock) *ListAvailableSlots {
	return &ListAvailableSlots{repo: repo, clock: clock}
}

// Execute lists available slots dated on or after from. An empty from
// means today; dates before today are raised to today.
func (uc *ListAvailableSlots) Execute(
	ctx context.Context,
	from string,
	specialistID *uint,
) ([]models.TimeSlot, error) {

	now := uc.clock()
	asOf := timezone.Today(now)

	if from != "" {
		d, err := timezone.ParseDate(from, now.Location())
		if err != nil {
			return nil, httperr.Validation("invalid_date", "from must use YYYY-MM-DD.")
		}
		if d.After(asOf) {
			asOf = d
		}
	}

	return uc.repo.ListAvailable(ctx, asOf, specialistID)
}

// ======================================================
// OWN (specialist)
// ======================================================

type ListOwnSlots struct {
	repo domain.Repository
}

func NewListOwnSlots(repo domain.Repository) *ListOwnSlots {
	return &ListOwnSlots{repo: repo}
}

func (uc *ListOwnSlots) Execute(
	ctx context.Context,
	caller identity.Caller,
) ([]models.TimeSlot, error) {

	if err := caller.Require(identity.RoleSpecialist); err != nil {
		return nil, err
	}
	return uc.repo.ListBySpecialist(ctx, caller.UserID)
}

// ======================================================
// ALL (admin)
// ======================================================

type ListAllSlots struct {
	repo domain.Repository
}

func NewListAllSlots(repo domain.Repository) *ListAllSlots {
	return &ListAllSlots{repo: repo}
}

func (uc *ListAllSlots) Execute(
	ctx context.Context,
	caller identity.Caller,
) ([]models.TimeSlot, error) {

	if err := caller.Require(identity.RoleAdmin); err != nil {
		return nil, err
	}
	return uc.repo.ListAll(ctx)
}
