package constants

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleAnalyst   = "analyst"
	RoleModerator = "moderator"
)

// ValidRoles is the set of allowed DB values for user role.
var ValidRoles = []string{RoleUser, RoleAdmin, RoleAnalyst, RoleModerator}

// IsValidRole returns true if role is one of the allowed values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
