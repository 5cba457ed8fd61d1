package users

import (
	"golang.org/x/crypto/bcrypt"
)

// Profile is the identity the backend returns alongside an access token.
// It is replaced wholesale on every login and never edited locally.
type Profile struct {
	ID         int      `json:"id"`
	Username   string   `json:"username"`
	FullName   string   `json:"full_name,omitempty"`
	Role       RoleType `json:"role"`
	Department *string  `json:"department,omitempty"`
	IsActive   bool     `json:"is_active,omitempty"`
	CreatedAt  string   `json:"created_at,omitempty"`
}

// IsAdmin is false for a nil profile
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// IsLeader reports leader-or-above
func (p *Profile) IsLeader() bool {
	return p != nil && p.Role.In(RoleAdmin, RoleLeader)
}

// CanEdit reports whether the profile may enter data
func (p *Profile) CanEdit() bool {
	return p != nil && p.Role.In(RoleAdmin, RoleLeader, RoleDepartment)
}

// Clone returns a deep copy so callers cannot alter a stored profile
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	if p.Department != nil {
		d := *p.Department
		c.Department = &d
	}
	return &c
}

// User is the backend's record of an account
type User struct {
	Profile
	PasswordHash string `json:"-"` // never serialize
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateRequest is the admin payload for a new account
type CreateRequest struct {
	Username   string   `json:"username"`
	FullName   string   `json:"full_name"`
	Password   string   `json:"password"`
	Role       RoleType `json:"role,omitempty"`
	Department *string  `json:"department,omitempty"`
}

// UpdateRequest only changes the fields that are set
type UpdateRequest struct {
	FullName   *string   `json:"full_name,omitempty"`
	Role       *RoleType `json:"role,omitempty"`
	Department *string   `json:"department,omitempty"`
	IsActive   *bool     `json:"is_active,omitempty"`
}
