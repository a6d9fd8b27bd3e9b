package entity

// Role is the closed set of account roles. Registration input is
// validated against this set; anything else is rejected.
type Role string

const (
	RoleAttendee  Role = "Attendee"
	RoleOrganizer Role = "Organizer"
	RoleAdmin     Role = "Admin"
)

// ParseRole maps an input string onto a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAttendee, RoleOrganizer, RoleAdmin:
		return Role(s), true
	}
	return "", false
}
