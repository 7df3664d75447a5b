package dto

import "github.com/BruksfildServices01/campus-scheduler/internal/models"

type UserDTO struct {
	ID            uint    `json:"id"`
	Email         string  `json:"email"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	FullName      string  `json:"full_name"`
	Role          string  `json:"role"`
	StudentNumber *string `json:"student_number,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Department    *string `json:"department,omitempty"`
	EmailVerified bool    `json:"email_verified"`
	AvatarURL     string  `json:"avatar_url,omitempty"`
}

// NewUserDTO builds the profile view; avatarURL maps an object key to its
// public URL and may be nil.
func NewUserDTO(u *models.User, avatarURL func(key string) string) UserDTO {
	out := UserDTO{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		FullName:      u.FullName(),
		Role:          u.Role,
		StudentNumber: u.StudentNumber,
		Phone:         u.Phone,
		Department:    u.Department,
		EmailVerified: u.EmailVerified,
	}
	if u.AvatarKey != nil && avatarURL != nil {
		out.AvatarURL = avatarURL(*u.AvatarKey)
	}
	return out
}

// SpecialistDTO is the public listing of a specialist.
type SpecialistDTO struct {
	ID         uint    `json:"id"`
	FullName   string  `json:"full_name"`
	Department *string `json:"department,omitempty"`
	AvatarURL  string  `json:"avatar_url,omitempty"`
}

func NewSpecialistDTOs(users []models.User, avatarURL func(key string) string) []SpecialistDTO {
	out := make([]SpecialistDTO, 0, len(users))
	for i := range users {
		u := &users[i]
		s := SpecialistDTO{ID: u.ID, FullName: u.FullName(), Department: u.Department}
		if u.AvatarKey != nil && avatarURL != nil {
			s.AvatarURL = avatarURL(*u.AvatarKey)
		}
		out = append(out, s)
	}
	return out
}
