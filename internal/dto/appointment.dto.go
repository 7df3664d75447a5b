package dto

import (
	"time"

	"github.com/BruksfildServices01/campus-scheduler/internal/models"
	"github.com/BruksfildServices01/campus-scheduler/internal/timezone"
)

const (
	notProvided = "not provided"
	notAssigned = "N/A"
)

type SlotDetailsDTO struct {
	ID             uint   `json:"id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	SpecialistID   uint   `json:"specialist_id"`
	SpecialistName string `json:"specialist_name"`
}

type StudentDetailsDTO struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	StudentNumber string `json:"student_number"`
}

type AppointmentDTO struct {
	ID              uint              `json:"id"`
	Status          string            `json:"status"`
	Reason          string            `json:"reason"`
	StudentID       uint              `json:"student_id"`
	SpecialistID    uint              `json:"specialist_id"`
	SlotID          uint              `json:"slot_id"`
	CalendarEventID *string           `json:"calendar_event_id,omitempty"`
	SlotDetails     SlotDetailsDTO    `json:"slot_details"`
	StudentDetails  StudentDetailsDTO `json:"student_details"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy *uint      `json:"cancelled_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAppointmentDTO expects Slot, Student and Specialist to be loaded.
func NewAppointmentDTO(ap *models.Appointment) AppointmentDTO {
	phone := notProvided
	if ap.Student.Phone != nil && *ap.Student.Phone != "" {
		phone = *ap.Student.Phone
	}
	number := notAssigned
	if ap.Student.StudentNumber != nil && *ap.Student.StudentNumber != "" {
		number = *ap.Student.StudentNumber
	}

	return AppointmentDTO{
		ID:              ap.ID,
		Status:          ap.Status,
		Reason:          ap.Reason,
		StudentID:       ap.StudentID,
		SpecialistID:    ap.SpecialistID,
		SlotID:          ap.SlotID,
		CalendarEventID: ap.CalendarEventID,
		SlotDetails: SlotDetailsDTO{
			ID:             ap.SlotID,
			Date:           ap.Slot.Date.Format(timezone.DateLayout),
			StartTime:      ap.Slot.StartTime,
			EndTime:        ap.Slot.EndTime,
			SpecialistID:   ap.SpecialistID,
			SpecialistName: ap.Specialist.FullName(),
		},
		StudentDetails: StudentDetailsDTO{
			ID:            ap.StudentID,
			Name:          ap.Student.FullName(),
			Email:         ap.Student.Email,
			Phone:         phone,
			StudentNumber: number,
		},
		ConfirmedAt: ap.ConfirmedAt,
		RejectedAt:  ap.RejectedAt,
		CompletedAt: ap.CompletedAt,
		CancelledAt: ap.CancelledAt,
		CancelledBy: ap.CancelledBy,
		CreatedAt:   ap.CreatedAt,
		UpdatedAt:   ap.UpdatedAt,
	}
}

func NewAppointmentDTOs(apps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for i := range apps {
		out = append(out, NewAppointmentDTO(&apps[i]))
	}
	return out
}
