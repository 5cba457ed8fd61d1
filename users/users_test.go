package users_test

import (
	"encoding/json"
	"testing"

	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/users"
	"github.com/stretchr/testify/require"
)

func TestProfilePredicates(t *testing.T) {
	tests := []struct {
		role     users.RoleType
		isAdmin  bool
		isLeader bool
		canEdit  bool
	}{
		{users.RoleAdmin, true, true, true},
		{users.RoleLeader, false, true, true},
		{users.RoleDepartment, false, false, true},
		{users.RoleViewer, false, false, false},
		{users.RoleType("superuser"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			p := &users.Profile{ID: 1, Username: "u", Role: tt.role}
			require.Equal(t, tt.isAdmin, p.IsAdmin())
			require.Equal(t, tt.isLeader, p.IsLeader())
			require.Equal(t, tt.canEdit, p.CanEdit())
		})
	}

	t.Run("nil profile is unprivileged", func(t *testing.T) {
		var p *users.Profile
		require.False(t, p.IsAdmin())
		require.False(t, p.IsLeader())
		require.False(t, p.CanEdit())
	})
}

func TestParseRole(t *testing.T) {
	role, err := users.ParseRole(" leader ")
	require.NoError(t, err)
	require.Equal(t, users.RoleLeader, role)

	_, err = users.ParseRole("root")
	require.ErrorIs(t, err, errors.ErrInvalidRole)
}

func TestProfileUnmarshalKeepsUnknownRole(t *testing.T) {
	var p users.Profile
	err := json.Unmarshal([]byte(`{"id":1,"username":"alice","role":"root"}`), &p)
	require.NoError(t, err)
	require.False(t, p.Role.Valid())
	require.False(t, p.CanEdit())
}

func TestProfileClone(t *testing.T) {
	dept := "mining"
	p := &users.Profile{ID: 2, Username: "bob", Role: users.RoleDepartment, Department: &dept}
	c := p.Clone()
	*c.Department = "civil"
	require.Equal(t, "mining", *p.Department)
}

func TestPasswordHash(t *testing.T) {
	hash, err := users.HashPassword("pw")
	require.NoError(t, err)
	require.True(t, users.CheckPasswordHash("pw", hash))
	require.False(t, users.CheckPasswordHash("other", hash))
}
