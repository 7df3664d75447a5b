package slot

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/campus-scheduler/internal/audit"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
	"github.com/BruksfildServices01/campus-scheduler/internal/timezone"
)

type CreateSlotInput struct {
	Date      string
	StartTime string
	EndTime   string
}

type CreateSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewCreateSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CreateSlot {
	return &CreateSlot{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *CreateSlot) Execute(
	ctx context.Context,
	caller identity.Caller,
	in CreateSlotInput,
) (*models.TimeSlot, error) {

	if err := caller.Require(identity.RoleSpecialist); err != nil {
		return nil, err
	}

	now := uc.clock()

	date, err := timezone.ParseDate(strings.TrimSpace(in.Date), now.Location())
	if err != nil {
		return nil, httperr.Validation("invalid_date", "Date must use YYYY-MM-DD.")
	}

	ns, err := domain.Validate(date, strings.TrimSpace(in.StartTime), strings.TrimSpace(in.EndTime), now)
	if err != nil {
		return nil, err
	}

	exists, err := uc.repo.SlotExists(ctx, caller.UserID, ns.Date, ns.Start)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate()
	}

	s := &models.TimeSlot{
		SpecialistID: caller.UserID,
		Date:         ns.Date,
		StartTime:    ns.Start,
		EndTime:      ns.End,
		Available:    true,
	}

	// the unique index still catches a concurrent duplicate
	if err := uc.repo.CreateSlot(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &caller.UserID,
		Action:   "slot_created",
		Entity:   "time_slot",
		EntityID: &s.ID,
		Metadata: map[string]string{
			"date":  ns.Date.Format(timezone.DateLayout),
			"start": ns.Start,
			"end":   ns.End,
		},
	})

	return s, nil
}
