// Package session holds the process-wide record of the logged in user and
// its bearer token, persisted so it survives restarts.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/kvstore"
	"github.com/jrsteele09/go-budget-console/metrics"
	"github.com/jrsteele09/go-budget-console/users"
	"github.com/rs/zerolog/log"
)

// Authenticator exchanges a username and password for credentials
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (Credentials, error)
}

// Store is the single writer of the persisted session slots.
// Token and user are always written and cleared together under one lock hold.
type Store struct {
	mu      sync.RWMutex
	kv      kvstore.Store
	auth    Authenticator
	token   string
	user    *users.Profile
	corrupt bool
}

// New rehydrates a store from kv. Absent or malformed data yields an
// unauthenticated store, never an error.
func New(kv kvstore.Store, auth Authenticator) *Store {
	s := &Store{kv: kv, auth: auth}
	s.Reload()
	return s
}

// SetAuthenticator breaks the construction cycle between the store and the
// request pipeline that carries its token.
func (s *Store) SetAuthenticator(auth Authenticator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = auth
}

// Reload replaces the in-memory session with whatever is persisted
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token, s.user, s.corrupt = "", nil, false

	token, hasToken, err := s.kv.Get(KeyToken)
	if err != nil {
		log.Err(err).Msg("Failed to read persisted token, starting logged out")
		return
	}
	rawUser, hasUser, err := s.kv.Get(KeyUser)
	if err != nil {
		log.Err(err).Msg("Failed to read persisted user, starting logged out")
		return
	}

	var user *users.Profile
	if hasUser {
		user, err = decodeUser(rawUser)
		if err != nil {
			log.Warn().Err(err).Msg("Persisted user is unreadable, starting logged out")
			s.corrupt = true
			s.clearPersisted()
			return
		}
	}

	if !hasToken || token == "" || user == nil {
		if hasToken || hasUser {
			log.Warn().Bool("token", hasToken).Bool("user", user != nil).Msg("Incomplete persisted session, starting logged out")
			s.clearPersisted()
		}
		return
	}

	s.token, s.user = token, user
	log.Debug().Str("username", user.Username).Str("role", user.Role.String()).Msg("Session rehydrated")
}

// Login calls the authenticator and, on success, stores and persists the
// token and user. Authenticator errors are returned unchanged.
func (s *Store) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return errors.ErrMissingCredentials
	}

	s.mu.RLock()
	auth := s.auth
	s.mu.RUnlock()
	if auth == nil {
		return fmt.Errorf("[Store Login] no authenticator configured")
	}

	creds, err := auth.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}
	if creds.Token == "" || creds.User.Username == "" {
		return errors.Wrapf(errors.ErrInvalidLogin, "[Store Login] missing token or user")
	}

	rawUser, err := json.Marshal(creds.User)
	if err != nil {
		return errors.Wrapf(err, "[Store Login] encode user")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(KeyToken, creds.Token); err != nil {
		return errors.Wrapf(err, "[Store Login] persist token")
	}
	if err := s.kv.Set(KeyUser, string(rawUser)); err != nil {
		s.restoreToken()
		return errors.Wrapf(err, "[Store Login] persist user")
	}

	s.token = creds.Token
	s.user = creds.User.Clone()
	s.corrupt = false

	log.Info().Str("username", s.user.Username).Str("role", s.user.Role.String()).Msg("Logged in")
	return nil
}

// Logout clears the session in memory and on disk. Calling it while logged
// out is a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user != nil {
		log.Info().Str("username", s.user.Username).Msg("Logged out")
	}
	return s.clear()
}

// Teardown is the system-initiated logout after the backend rejected the
// credential. It only clears, so a late rejection can never restore state.
func (s *Store) Teardown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		log.Warn().Msg("Credential rejected, clearing session")
	}
	metrics.RecordTeardown()
	return s.clear()
}

func (s *Store) clear() error {
	s.token, s.user, s.corrupt = "", nil, false

	tokenErr := s.kv.Remove(KeyToken)
	userErr := s.kv.Remove(KeyUser)
	if tokenErr != nil {
		return errors.Wrapf(tokenErr, "[Store clear] remove token")
	}
	if userErr != nil {
		return errors.Wrapf(userErr, "[Store clear] remove user")
	}
	return nil
}

// restoreToken puts the previous token back beside the untouched user slot
// after a failed login write. When that is not possible the session is
// cleared in memory and on disk so the two never disagree.
func (s *Store) restoreToken() {
	if s.token != "" {
		err := s.kv.Set(KeyToken, s.token)
		if err == nil {
			return
		}
		log.Err(err).Msg("Failed to restore previous token, clearing session")
	}
	s.token, s.user, s.corrupt = "", nil, false
	s.clearPersisted()
}

func (s *Store) clearPersisted() {
	if err := s.kv.Remove(KeyToken); err != nil {
		log.Err(err).Msg("Failed to remove persisted token")
	}
	if err := s.kv.Remove(KeyUser); err != nil {
		log.Err(err).Msg("Failed to remove persisted user")
	}
}

// Snapshot returns a copy of the current session
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Session{Token: s.token, User: s.user.Clone(), Corrupt: s.corrupt}
}

// Token returns the bearer token or "" when logged out
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current profile or nil when logged out
func (s *Store) User() *users.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// IsLoggedIn reports whether both a token and a user are held
func (s *Store) IsLoggedIn() bool {
	return s.Snapshot().IsLoggedIn()
}

// IsAdmin reports whether the current user is an admin
func (s *Store) IsAdmin() bool {
	return s.User().IsAdmin()
}

// IsLeader reports whether the current user is a leader
func (s *Store) IsLeader() bool {
	return s.User().IsLeader()
}

// CanEdit reports whether the current user may change data
func (s *Store) CanEdit() bool {
	return s.User().CanEdit()
}

func decodeUser(raw string) (*users.Profile, error) {
	var user *users.Profile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, errors.Wrapf(errors.ErrCorruptSessionData, "[session decodeUser] %v", err)
	}
	if user != nil && user.Username == "" {
		return nil, errors.Wrapf(errors.ErrCorruptSessionData, "[session decodeUser] user has no username")
	}
	return user, nil
}
