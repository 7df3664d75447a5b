package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	FirstName    string `gorm:"size:100;not null" json:"first_name"`
	LastName     string `gorm:"size:100;not null" json:"last_name"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:'STUDENT'" json:"role"`

	StudentNumber *string `gorm:"size:20;uniqueIndex" json:"student_number,omitempty"`
	Phone         *string `gorm:"size:20" json:"phone,omitempty"`
	Department    *string `gorm:"size:100" json:"department,omitempty"`

	EmailVerified bool    `gorm:"not null;default:false" json:"email_verified"`
	AvatarKey     *string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
