package users

import (
	"strings"

	"github.com/jrsteele09/go-budget-console/internal/errors"
)

// RoleType represents the single role a user holds
type RoleType string

const (
	RoleAdmin      RoleType = "admin"      // Full access including user management
	RoleLeader     RoleType = "leader"     // Views everything, runs simulations, approves
	RoleDepartment RoleType = "department" // Enters data for its own department
	RoleViewer     RoleType = "viewer"     // Read-only access
)

// AllRoles lists every role in descending order of privilege
var AllRoles = []RoleType{RoleAdmin, RoleLeader, RoleDepartment, RoleViewer}

// ParseRole converts a raw role string into a RoleType
func ParseRole(role string) (RoleType, error) {
	r := RoleType(strings.TrimSpace(role))
	if !r.Valid() {
		return "", errors.Wrapf(errors.ErrInvalidRole, "[users ParseRole] %q", role)
	}
	return r, nil
}

func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleLeader, RoleDepartment, RoleViewer:
		return true
	}
	return false
}

func (r RoleType) String() string {
	return string(r)
}

// In reports whether r is one of roles
func (r RoleType) In(roles ...RoleType) bool {
	for _, role := range roles {
		if role == r {
			return true
		}
	}
	return false
}
