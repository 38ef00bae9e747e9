package user

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Principal is the authenticated caller resolved from an access token.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
