package appointment

import (
	"context"
	"fmt"

	ics "github.com/arran4/golang-ical"

	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/timezone"
)

const calendarProductID = "-//Campus Scheduler//Appointments//EN"

// CalendarEvent renders a confirmed appointment as an iCalendar document.
// The event UID is the appointment's calendar reference, so re-importing
// updates the same entry.
type CalendarEvent struct {
	get   *GetAppointment
	clock timezone.Clock
}

func NewCalendarEvent(repo domain.Repository, clock timezone.Clock) *CalendarEvent {
	return &CalendarEvent{get: NewGetAppointment(repo), clock: clock}
}

func (uc *CalendarEvent) Execute(
	ctx context.Context,
	caller identity.Caller,
	appointmentID uint,
) (string, error) {

	ap, err := uc.get.Execute(ctx, caller, appointmentID)
	if err != nil {
		return "", err
	}

	if domain.Status(ap.Status) != domain.StatusConfirmed || ap.CalendarEventID == nil {
		return "", httperr.InvalidState(
			"appointment_not_confirmed",
			"Only confirmed appointments can be exported to a calendar.",
			ap.Status,
		)
	}

	now := uc.clock()
	loc := now.Location()

	start, err := timezone.At(ap.Slot.Date, ap.Slot.StartTime, loc)
	if err != nil {
		return "", err
	}
	end, err := timezone.At(ap.Slot.Date, ap.Slot.EndTime, loc)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)

	ev := cal.AddEvent(*ap.CalendarEventID)
	ev.SetDtStampTime(now)
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetStatus(ics.ObjectStatusConfirmed)
	ev.SetSummary(fmt.Sprintf("Appointment with %s", ap.Specialist.FullName()))
	ev.SetDescription(ap.Reason)
	ev.SetOrganizer("mailto:"+ap.Specialist.Email, ics.WithCN(ap.Specialist.FullName()))
	ev.AddAttendee("mailto:"+ap.Student.Email,
		ics.CalendarUserTypeIndividual,
		ics.ParticipationStatusAccepted,
		ics.WithCN(ap.Student.FullName()),
	)

	return cal.Serialize(), nil
}
