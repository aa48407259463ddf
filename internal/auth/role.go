package auth

// Role is the access tier a handler requires.
type Role int

const (
	RoleAnonymous Role = iota
	RoleUser
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// RoleOf returns the highest tier the flags grant to an authenticated user.
func RoleOf(isStaff, isSuperuser bool) Role {
	if isStaff || isSuperuser {
		return RoleAdmin
	}
	return RoleUser
}
