package token_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/token"
	"github.com/jrsteele09/go-budget-console/users"
	"github.com/stretchr/testify/require"
)

type testSecurity struct {
	secret string
	issuer string
}

func (s testSecurity) GetTokenSecret() string              { return s.secret }
func (s testSecurity) GetAccessTokenExpiry() time.Duration { return time.Hour }
func (s testSecurity) GetTokenIssuer() string              { return s.issuer }

func TestIssuer_IssueAndParse(t *testing.T) {
	issuer := token.NewIssuer(testSecurity{secret: "s1", issuer: "budget"})
	tokenString, err := issuer.Issue(&users.Profile{ID: 12, Username: "alice", Role: users.RoleLeader})
	require.NoError(t, err)

	claims, err := issuer.Parse(tokenString)
	require.NoError(t, err)
	require.Equal(t, users.RoleLeader, claims.Role)
	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, 12, id)
	require.NotEmpty(t, claims.ID)

	exp, ok := token.PeekExpiry(tokenString)
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
}

func TestIssuer_Rejects(t *testing.T) {
	issuer := token.NewIssuer(testSecurity{secret: "s1", issuer: "budget"})
	profile := &users.Profile{ID: 1, Username: "alice", Role: users.RoleAdmin}

	t.Run("other secret", func(t *testing.T) {
		other, err := token.NewIssuer(testSecurity{secret: "s2", issuer: "budget"}).Issue(profile)
		require.NoError(t, err)
		_, err = issuer.Parse(other)
		require.ErrorIs(t, err, errors.ErrInvalidToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		other, err := token.NewIssuer(testSecurity{secret: "s1", issuer: "elsewhere"}).Issue(profile)
		require.NoError(t, err)
		_, err = issuer.Parse(other)
		require.ErrorIs(t, err, errors.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token.NowTimeFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		expired, err := issuer.Issue(profile)
		token.NowTimeFunc = time.Now
		require.NoError(t, err)

		_, err = issuer.Parse(expired)
		require.ErrorIs(t, err, errors.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not-a-token")
		require.ErrorIs(t, err, errors.ErrInvalidToken)
		_, ok := token.PeekExpiry("not-a-token")
		require.False(t, ok)
	})
}
