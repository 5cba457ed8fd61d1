package session

import "github.com/jrsteele09/go-budget-console/users"

// Slot names in the persisted key-value substrate
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Session is a point-in-time view of who is logged in.
// Token is non-empty iff User is non-nil.
type Session struct {
	Token string
	User  *users.Profile

	// Corrupt is set when a persisted identity was found but could not be
	// decoded. Such a session is always unauthenticated.
	Corrupt bool
}

// IsLoggedIn reports whether both a token and a user are present
func (s Session) IsLoggedIn() bool {
	return s.Token != "" && s.User != nil
}

// Credentials is what a successful login exchange yields
type Credentials struct {
	Token string
	User  users.Profile
}
