package appointment

import (
	"strings"

	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
	StatusCancelled Status = "CANCELLED"
)

// ActiveStatuses hold a slot and count against the one-active-per-student rule.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusNoShow, StatusCancelled:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusPending
}

// ParseStatus accepts a status name in any letter case.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCompleted, StatusNoShow, StatusCancelled:
		return st, true
	}
	return "", false
}

// ===============================
// Events
// ===============================

type Event string

const (
	EventConfirm  Event = "confirm"
	EventReject   Event = "reject"
	EventComplete Event = "complete"
	EventCancel   Event = "cancel"
	EventNoShow   Event = "no_show"
)

type transition struct {
	from      []Status
	to        Status
	freesSlot bool

	// student may trigger it on their own appointment
	studentAllowed bool
}

var transitions = map[Event]transition{
	EventConfirm:  {from: []Status{StatusPending}, to: StatusConfirmed},
	EventReject:   {from: []Status{StatusPending}, to: StatusRejected, freesSlot: true},
	EventComplete: {from: []Status{StatusConfirmed}, to: StatusCompleted},
	EventCancel:   {from: []Status{StatusPending, StatusConfirmed}, to: StatusCancelled, freesSlot: true, studentAllowed: true},
	EventNoShow:   {from: []Status{StatusConfirmed}, to: StatusNoShow},
}

func ParseEvent(s string) (Event, bool) {
	ev := Event(s)
	_, ok := transitions[ev]
	return ev, ok
}

// Next returns the status reached by applying ev to current.
func Next(current Status, ev Event) (Status, error) {
	tr, ok := transitions[ev]
	if !ok {
		return current, httperr.Validation("unknown_event", "Unknown appointment action.")
	}
	for _, f := range tr.from {
		if f == current {
			return tr.to, nil
		}
	}
	return current, httperr.InvalidState(
		"invalid_state",
		"This action is not allowed in the appointment's current status.",
		string(current),
	)
}

// FreesSlot reports whether ev releases the appointment's slot.
func FreesSlot(ev Event) bool {
	return transitions[ev].freesSlot
}

func StudentMayTrigger(ev Event) bool {
	return transitions[ev].studentAllowed
}
