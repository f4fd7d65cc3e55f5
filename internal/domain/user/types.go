package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleEVOwner Role = "ev_owner"
	RoleBuyer   Role = "buyer"
	RoleCVA     Role = "cva"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleEVOwner, RoleBuyer, RoleCVA, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
