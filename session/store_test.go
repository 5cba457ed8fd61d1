package session_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/kvstore"
	"github.com/jrsteele09/go-budget-console/session"
	"github.com/jrsteele09/go-budget-console/users"
	"github.com/stretchr/testify/require"
)

const (
	testUsername = "alice"
	testPassword = "pw"
	testToken    = "t1"
)

// fakeAuthenticator accepts a single username/password pair
type fakeAuthenticator struct {
	creds session.Credentials
	err   error
	calls int
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, username, password string) (session.Credentials, error) {
	f.calls++
	if f.err != nil {
		return session.Credentials{}, f.err
	}
	if username != testUsername || password != testPassword {
		return session.Credentials{}, errors.ErrInvalidCredentials
	}
	return f.creds, nil
}

func adminCreds() session.Credentials {
	return session.Credentials{
		Token: testToken,
		User:  users.Profile{ID: 1, Username: testUsername, Role: users.RoleAdmin},
	}
}

// failingKV fails writes for a chosen key
type failingKV struct {
	*kvstore.InMemoryStore
	failKey string
}

func (f failingKV) Set(key, value string) error {
	if key == f.failKey {
		return fmt.Errorf("disk full")
	}
	return f.InMemoryStore.Set(key, value)
}

func requireInvariant(t *testing.T, s *session.Store) {
	t.Helper()
	snap := s.Snapshot()
	require.Equal(t, snap.Token != "", snap.User != nil, "token present iff user present")
}

func TestStore_FreshProcessIsLoggedOut(t *testing.T) {
	s := session.New(kvstore.NewInMemory(), nil)

	require.False(t, s.IsLoggedIn())
	require.False(t, s.IsAdmin())
	require.False(t, s.IsLeader())
	require.False(t, s.CanEdit())
	require.Empty(t, s.Token())
	require.Nil(t, s.User())
	requireInvariant(t, s)
}

func TestStore_Login(t *testing.T) {
	kv := kvstore.NewInMemory()
	auth := &fakeAuthenticator{creds: adminCreds()}
	s := session.New(kv, auth)

	require.NoError(t, s.Login(context.Background(), testUsername, testPassword))

	require.True(t, s.IsLoggedIn())
	require.True(t, s.IsAdmin())
	require.True(t, s.IsLeader())
	require.True(t, s.CanEdit())
	require.Equal(t, testToken, s.Token())
	requireInvariant(t, s)

	token, ok, err := kv.Get(session.KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, testToken, token)

	rawUser, ok, err := kv.Get(session.KeyUser)
	require.NoError(t, err)
	require.True(t, ok)
	var persisted users.Profile
	require.NoError(t, json.Unmarshal([]byte(rawUser), &persisted))
	require.Equal(t, adminCreds().User, persisted)
}

func TestStore_LoginFailures(t *testing.T) {
	t.Run("missing username", func(t *testing.T) {
		auth := &fakeAuthenticator{creds: adminCreds()}
		s := session.New(kvstore.NewInMemory(), auth)
		err := s.Login(context.Background(), "  ", testPassword)
		require.ErrorIs(t, err, errors.ErrMissingCredentials)
		require.Zero(t, auth.calls)
	})

	t.Run("authenticator error propagates unchanged", func(t *testing.T) {
		backendErr := fmt.Errorf("invalid username or password")
		s := session.New(kvstore.NewInMemory(), &fakeAuthenticator{err: backendErr})
		err := s.Login(context.Background(), testUsername, testPassword)
		require.Same(t, backendErr, err)
		require.False(t, s.IsLoggedIn())
	})

	t.Run("no authenticator", func(t *testing.T) {
		s := session.New(kvstore.NewInMemory(), nil)
		require.Error(t, s.Login(context.Background(), testUsername, testPassword))
	})

	t.Run("response without token", func(t *testing.T) {
		creds := adminCreds()
		creds.Token = ""
		s := session.New(kvstore.NewInMemory(), &fakeAuthenticator{creds: creds})
		err := s.Login(context.Background(), testUsername, testPassword)
		require.ErrorIs(t, err, errors.ErrInvalidLogin)
		require.False(t, s.IsLoggedIn())
	})

	t.Run("persisting user fails leaves nothing behind", func(t *testing.T) {
		kv := failingKV{InMemoryStore: kvstore.NewInMemory(), failKey: session.KeyUser}
		s := session.New(kv, &fakeAuthenticator{creds: adminCreds()})
		require.Error(t, s.Login(context.Background(), testUsername, testPassword))
		require.False(t, s.IsLoggedIn())
		_, ok, _ := kv.Get(session.KeyToken)
		require.False(t, ok)
	})

	t.Run("failed re-login keeps the previous session", func(t *testing.T) {
		kv := &failingKV{InMemoryStore: kvstore.NewInMemory()}
		auth := &fakeAuthenticator{creds: adminCreds()}
		s := session.New(kv, auth)
		require.NoError(t, s.Login(context.Background(), testUsername, testPassword))

		kv.failKey = session.KeyUser
		auth.creds = session.Credentials{
			Token: "t2",
			User:  users.Profile{ID: 7, Username: "bob", Role: users.RoleViewer},
		}
		require.Error(t, s.Login(context.Background(), testUsername, testPassword))

		requireInvariant(t, s)
		require.Equal(t, testToken, s.Token())
		require.True(t, s.IsAdmin())

		reloaded := session.New(kv, nil)
		require.True(t, reloaded.IsLoggedIn())
		require.Equal(t, testToken, reloaded.Token())
		require.Equal(t, testUsername, reloaded.User().Username)
	})
}

func TestStore_LogoutIsIdempotent(t *testing.T) {
	kv := kvstore.NewInMemory()
	s := session.New(kv, &fakeAuthenticator{creds: adminCreds()})
	require.NoError(t, s.Login(context.Background(), testUsername, testPassword))

	require.NoError(t, s.Logout())
	require.False(t, s.IsLoggedIn())
	requireInvariant(t, s)

	require.NoError(t, s.Logout())
	require.Equal(t, session.Session{}, s.Snapshot())

	_, ok, _ := kv.Get(session.KeyToken)
	require.False(t, ok)
	_, ok, _ = kv.Get(session.KeyUser)
	require.False(t, ok)
}

func TestStore_TeardownClearsSession(t *testing.T) {
	kv := kvstore.NewInMemory()
	s := session.New(kv, &fakeAuthenticator{creds: adminCreds()})
	require.NoError(t, s.Login(context.Background(), testUsername, testPassword))

	require.NoError(t, s.Teardown())
	require.Equal(t, session.Session{}, s.Snapshot())

	// A second rejection arriving late is harmless
	require.NoError(t, s.Teardown())
	require.False(t, s.IsLoggedIn())
}

func TestStore_RoundTrip(t *testing.T) {
	kv := kvstore.NewInMemory()
	dept := "mining"
	creds := session.Credentials{
		Token: "t9",
		User:  users.Profile{ID: 7, Username: "dora", FullName: "Dora", Role: users.RoleDepartment, Department: &dept, IsActive: true},
	}
	s := session.New(kv, &fakeAuthenticator{creds: creds})
	require.NoError(t, s.Login(context.Background(), testUsername, testPassword))

	rehydrated := session.New(kv, nil)
	require.Equal(t, s.Snapshot(), rehydrated.Snapshot())
	require.True(t, rehydrated.CanEdit())
	require.False(t, rehydrated.IsLeader())
}

func TestStore_RehydrateTolerance(t *testing.T) {
	validUser := `{"id":1,"username":"alice","role":"admin"}`

	tests := []struct {
		name        string
		token       *string
		user        *string
		wantCorrupt bool
	}{
		{name: "nothing persisted"},
		{name: "corrupted user", token: strPtr("t1"), user: strPtr("{corrupted"), wantCorrupt: true},
		{name: "user without username", token: strPtr("t1"), user: strPtr(`{"id":1}`), wantCorrupt: true},
		{name: "null user", token: strPtr("t1"), user: strPtr("null")},
		{name: "token without user", token: strPtr("t1")},
		{name: "user without token", user: strPtr(validUser)},
		{name: "empty token", token: strPtr(""), user: strPtr(validUser)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := kvstore.NewInMemory()
			if tt.token != nil {
				require.NoError(t, kv.Set(session.KeyToken, *tt.token))
			}
			if tt.user != nil {
				require.NoError(t, kv.Set(session.KeyUser, *tt.user))
			}

			s := session.New(kv, nil)
			snap := s.Snapshot()
			require.False(t, snap.IsLoggedIn())
			require.Empty(t, snap.Token)
			require.Nil(t, snap.User)
			require.Equal(t, tt.wantCorrupt, snap.Corrupt)

			// Inconsistent slots are removed so the next start is clean
			_, ok, _ := kv.Get(session.KeyToken)
			require.False(t, ok)
			_, ok, _ = kv.Get(session.KeyUser)
			require.False(t, ok)
		})
	}
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := session.New(kvstore.NewInMemory(), &fakeAuthenticator{creds: adminCreds()})
	require.NoError(t, s.Login(context.Background(), testUsername, testPassword))

	snap := s.Snapshot()
	snap.User.Role = users.RoleViewer
	require.True(t, s.IsAdmin())
}

func strPtr(s string) *string {
	return &s
}
