package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/users"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the authenticated *users.User
	ContextKeyUser ContextKey = "user"
)

const (
	detailNotAuthenticated = "Not authenticated"
	detailInvalidToken     = "Could not validate credentials"
	detailUserDisabled     = "account disabled"
	detailForbidden        = "Insufficient permissions"
)

// RequireAuth validates the Bearer access token and loads its user
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeDetail(w, http.StatusUnauthorized, detailNotAuthenticated)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeDetail(w, http.StatusUnauthorized, detailInvalidToken)
				return
			}

			user, err := s.userFromToken(parts[1])
			switch {
			case errors.Is(err, errors.ErrUserDisabled):
				writeDetail(w, http.StatusForbidden, detailUserDisabled)
				return
			case err != nil:
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("Rejected access token")
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeDetail(w, http.StatusUnauthorized, detailInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireRole must be chained after RequireAuth
func (s *Server) RequireRole(roles ...users.RoleType) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || !user.Role.In(roles...) {
				writeDetail(w, http.StatusForbidden, detailForbidden)
				return
			}
			next(w, r)
		}
	}
}

func UserFromContext(ctx context.Context) (*users.User, bool) {
	user, ok := ctx.Value(ContextKeyUser).(*users.User)
	return user, ok && user != nil
}

// userFromToken re-reads the user so role changes and deactivation apply to
// tokens already issued
func (s *Server) userFromToken(accessToken string) (*users.User, error) {
	claims, err := s.tokens.Parse(accessToken)
	if err != nil {
		return nil, err
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "[Server userFromToken] user %d: %v", id, err)
	}
	if !user.IsActive {
		return nil, errors.ErrUserDisabled
	}
	return user, nil
}
