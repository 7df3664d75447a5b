package account

import (
	"net/mail"
	"strings"

	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
)

const MinPasswordLength = 8

type Registration struct {
	Email         string
	Password      string
	FirstName     string
	LastName      string
	StudentNumber string
	Phone         string
	Department    string
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Normalize trims every field and lower-cases the email in place.
func (r *Registration) Normalize() {
	r.Email = NormalizeEmail(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.StudentNumber = strings.TrimSpace(r.StudentNumber)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Department = strings.TrimSpace(r.Department)
}

// Validate checks a normalized registration. allowedDomain, when set,
// restricts sign-ups to one institutional email domain.
func (r Registration) Validate(allowedDomain string) error {
	if _, err := mail.ParseAddress(r.Email); err != nil || !strings.Contains(r.Email, "@") {
		return httperr.Validation("invalid_email", "Email address is not valid.")
	}
	if allowedDomain != "" && !strings.HasSuffix(r.Email, "@"+allowedDomain) {
		return httperr.Validation("email_domain_not_allowed", "Use your institutional email address (@"+allowedDomain+").")
	}
	if r.FirstName == "" || r.LastName == "" {
		return httperr.Validation("name_required", "First and last name are required.")
	}
	if len(r.Password) < MinPasswordLength {
		return httperr.Validation("password_too_short", "Password must have at least 8 characters.")
	}
	if len(r.StudentNumber) > 20 {
		return httperr.Validation("invalid_student_number", "Student number is too long.")
	}
	if len(r.Phone) > 20 {
		return httperr.Validation("invalid_phone", "Phone number is too long.")
	}
	return nil
}
