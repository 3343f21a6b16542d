package domain

import "fmt"

// Role is the closed set of actor roles. Roles are flat: no role implies
// another, every check is an explicit membership test.
type Role string

const (
	RoleTenant   Role = "tenant"
	RoleManager  Role = "manager"
	RoleOwner    Role = "owner"
	RoleVisitor  Role = "visitor"
	RoleSecurity Role = "security"
)

var roles = map[Role]struct{}{
	RoleTenant:   {},
	RoleManager:  {},
	RoleOwner:    {},
	RoleVisitor:  {},
	RoleSecurity: {},
}

// ParseRole validates s against the closed role set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := roles[r]
	return ok
}

// IsAdminGroup reports membership in {manager, owner, security}: the roles
// allowed to manage apartments and publish announcements.
func (r Role) IsAdminGroup() bool {
	return r == RoleManager || r == RoleOwner || r == RoleSecurity
}

// CanApproveMaintenance reports whether r may move a maintenance request out
// of pending.
func (r Role) CanApproveMaintenance() bool {
	return r == RoleManager
}

// CanDecideVisitor reports whether r may approve or deny a pending visitor.
func (r Role) CanDecideVisitor() bool {
	return r == RoleOwner || r == RoleTenant || r == RoleManager
}

// CanGuardVisitors reports whether r staffs the gate: checking visitors in,
// requesting resident approval and notifying residents.
func (r Role) CanGuardVisitors() bool {
	return r == RoleSecurity
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID   int64
	Username string
	Role     Role
}
