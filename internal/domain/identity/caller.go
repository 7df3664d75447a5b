package identity

import "github.com/BruksfildServices01/campus-scheduler/internal/httperr"

type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleSpecialist Role = "SPECIALIST"
	RoleAdmin      Role = "ADMIN"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleSpecialist, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Caller is the authenticated principal of a request. Core operations take
// it explicitly instead of reading request state.
type Caller struct {
	UserID uint
	Role   Role
}

func Student(id uint) Caller    { return Caller{UserID: id, Role: RoleStudent} }
func Specialist(id uint) Caller { return Caller{UserID: id, Role: RoleSpecialist} }
func Admin(id uint) Caller      { return Caller{UserID: id, Role: RoleAdmin} }

func (c Caller) Is(role Role) bool {
	return c.Role == role
}

// Require fails with a forbidden error unless the caller holds one of roles.
func (c Caller) Require(roles ...Role) error {
	for _, r := range roles {
		if c.Role == r {
			return nil
		}
	}
	return httperr.Forbidden("role_not_allowed", "Your role cannot perform this action.")
}
