package appointment

import (
	"time"

	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

// dayOf places the slot's calendar date in today's location so the two
// can be compared as dates.
func dayOf(slot *models.TimeSlot, today time.Time) time.Time {
	return time.Date(slot.Date.Year(), slot.Date.Month(), slot.Date.Day(), 0, 0, 0, 0, today.Location())
}
