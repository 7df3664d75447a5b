package dto

import (
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
	"github.com/BruksfildServices01/campus-scheduler/internal/timezone"
)

type SlotDTO struct {
	ID             uint   `json:"id"`
	SpecialistID   uint   `json:"specialist_id"`
	SpecialistName string `json:"specialist_name,omitempty"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Available      bool   `json:"available"`
}

func NewSlotDTO(s *models.TimeSlot) SlotDTO {
	var name string
	if s.Specialist.ID != 0 {
		name = s.Specialist.FullName()
	}
	return SlotDTO{
		ID:             s.ID,
		SpecialistID:   s.SpecialistID,
		SpecialistName: name,
		Date:           s.Date.Format(timezone.DateLayout),
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		Available:      s.Available,
	}
}

func NewSlotDTOs(slots []models.TimeSlot) []SlotDTO {
	out := make([]SlotDTO, 0, len(slots))
	for i := range slots {
		out = append(out, NewSlotDTO(&slots[i]))
	}
	return out
}
