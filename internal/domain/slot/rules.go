package slot

import (
	"time"

	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/timezone"
)

// NewSlot is a validated request to publish a slot.
type NewSlot struct {
	Date  time.Time
	Start string
	End   string
}

// Validate checks the creation rules against today (campus date) and
// returns start/end normalized to "HH:MM".
func Validate(date time.Time, start, end string, today time.Time) (NewSlot, error) {
	s, err := timezone.NormalizeHM(start)
	if err != nil {
		return NewSlot{}, httperr.Validation("invalid_start_time", "Start time must use HH:MM.")
	}
	e, err := timezone.NormalizeHM(end)
	if err != nil {
		return NewSlot{}, httperr.Validation("invalid_end_time", "End time must use HH:MM.")
	}

	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return NewSlot{}, httperr.Validation("weekend_not_allowed", "Slots can only be scheduled Monday to Friday.")
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, today.Location())
	if day.Before(timezone.Today(today)) {
		return NewSlot{}, httperr.Validation("date_in_past", "Slots cannot be created on past dates.")
	}

	// zero-padded HH:MM compares correctly as text
	if s >= e {
		return NewSlot{}, httperr.Validation("invalid_time_range", "Start time must be before end time.")
	}

	return NewSlot{Date: day, Start: s, End: e}, nil
}

func ErrDuplicate() error {
	return httperr.Validation("slot_already_exists", "A slot with the same date and start time already exists.")
}
