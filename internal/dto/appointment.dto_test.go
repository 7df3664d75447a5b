package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

func TestNewAppointmentDTO_Defaults(t *testing.T) {
	ap := &models.Appointment{
		ID:           3,
		StudentID:    10,
		SpecialistID: 20,
		SlotID:       7,
		Status:       "PENDING",
		Student:      models.User{ID: 10, FirstName: "Ana", LastName: "Lopez", Email: "ana@campus.edu"},
		Specialist:   models.User{ID: 20, FirstName: "Luis", LastName: "Mora"},
		Slot:         models.TimeSlot{ID: 7, Date: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), StartTime: "10:00", EndTime: "10:30"},
	}

	out := NewAppointmentDTO(ap)

	assert.Equal(t, "2026-10-19", out.SlotDetails.Date)
	assert.Equal(t, "Luis Mora", out.SlotDetails.SpecialistName)
	assert.Equal(t, "Ana Lopez", out.StudentDetails.Name)
	assert.Equal(t, "not provided", out.StudentDetails.Phone)
	assert.Equal(t, "N/A", out.StudentDetails.StudentNumber)

	phone, number := "555-0101", "A0123"
	ap.Student.Phone = &phone
	ap.Student.StudentNumber = &number
	out = NewAppointmentDTO(ap)
	assert.Equal(t, "555-0101", out.StudentDetails.Phone)
	assert.Equal(t, "A0123", out.StudentDetails.StudentNumber)
}

func TestNewUserDTO_AvatarURL(t *testing.T) {
	key := "avatars/1/v.webp"
	u := &models.User{ID: 1, FirstName: "Ana", LastName: "Lopez", AvatarKey: &key}

	out := NewUserDTO(u, func(k string) string { return "https://cdn.test/" + k })
	assert.Equal(t, "https://cdn.test/avatars/1/v.webp", out.AvatarURL)
	assert.Equal(t, "Ana Lopez", out.FullName)

	assert.Empty(t, NewUserDTO(u, nil).AvatarURL)
}
