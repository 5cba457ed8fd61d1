package errors

import (
	"errors"
	"fmt"
)

// Common error types for the budget console
var (
	// Request pipeline outcomes
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrServer          = errors.New("server error")
	ErrNetwork         = errors.New("network error")

	// Session errors
	ErrCorruptSessionData = errors.New("corrupt session data")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidLogin       = errors.New("invalid login response")

	// Navigation errors
	ErrRouteUnauthorized = errors.New("route not permitted for role")
	ErrInvalidRouteTable = errors.New("invalid route table")

	// Backend errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user is disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidRole        = errors.New("invalid role")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
