package navigation_test

import (
	"testing"

	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/internal/utils"
	"github.com/jrsteele09/go-budget-console/kvstore"
	"github.com/jrsteele09/go-budget-console/navigation"
	"github.com/jrsteele09/go-budget-console/notify"
	"github.com/jrsteele09/go-budget-console/notify/notifyfake"
	"github.com/jrsteele09/go-budget-console/session"
	"github.com/jrsteele09/go-budget-console/users"
	"github.com/stretchr/testify/require"
)

// fakeSessions substitutes for the session store
type fakeSessions struct {
	session session.Session
}

func (f fakeSessions) Snapshot() session.Session {
	return f.session
}

func loggedInAs(role users.RoleType) fakeSessions {
	return fakeSessions{session: session.Session{
		Token: "t1",
		User:  &users.Profile{ID: 1, Username: "u", Role: role},
	}}
}

func newGuard(t *testing.T, sessions navigation.SessionSource) (*navigation.Guard, *notifyfake.Recorder) {
	t.Helper()
	rec := notifyfake.NewRecorder()
	return navigation.NewGuard(navigation.DefaultTable(), sessions, rec), rec
}

func TestDecide(t *testing.T) {
	public := navigation.Route{Path: "/login", RequiresAuth: utils.Ptr(false)}
	private := navigation.Route{Path: "/profile"}
	leaderOnly := navigation.Route{Path: "/budget", Roles: []users.RoleType{users.RoleAdmin, users.RoleLeader}}
	publicWithRoles := navigation.Route{Path: "/help", RequiresAuth: utils.Ptr(false), Roles: []users.RoleType{users.RoleAdmin}}

	viewer := loggedInAs(users.RoleViewer).session
	leader := loggedInAs(users.RoleLeader).session
	unknownRole := loggedInAs(users.RoleType("auditor")).session
	corrupt := session.Session{Corrupt: true}
	tokenOnly := session.Session{Token: "t1"}

	tests := []struct {
		name    string
		route   navigation.Route
		session session.Session
		want    navigation.Decision
	}{
		{"public route logged out", public, session.Session{}, navigation.Allow},
		{"public route logged in", public, viewer, navigation.Allow},
		{"public route corrupt identity", public, corrupt, navigation.Allow},
		{"private route logged out", private, session.Session{}, navigation.RedirectLogin},
		{"private route logged in", private, viewer, navigation.Allow},
		{"restricted route logged out", leaderOnly, session.Session{}, navigation.RedirectLogin},
		{"restricted route allowed role", leaderOnly, leader, navigation.Allow},
		{"restricted route denied role", leaderOnly, viewer, navigation.RedirectDefault},
		{"restricted route unknown role", leaderOnly, unknownRole, navigation.RedirectDefault},
		{"restricted route token without identity", leaderOnly, tokenOnly, navigation.RedirectLogin},
		{"private route token without identity", private, tokenOnly, navigation.RedirectLogin},
		{"public restricted route corrupt identity", publicWithRoles, corrupt, navigation.RedirectLogin},
		{"public restricted route logged out", publicWithRoles, session.Session{}, navigation.Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, navigation.Decide(tt.route, tt.session))
		})
	}
}

func TestGuard_FreshProcessRedirectsToLogin(t *testing.T) {
	store := session.New(kvstore.NewInMemory(), nil)
	g, rec := newGuard(t, store)

	require.False(t, store.IsLoggedIn())
	res := g.Navigate("/dashboard")
	require.Equal(t, navigation.RedirectLogin, res.Decision)
	require.Equal(t, "/login", res.Path)
	require.Equal(t, "/login", g.Current())
	require.Empty(t, rec.Messages())
}

func TestGuard_AdminOpensUsers(t *testing.T) {
	g, rec := newGuard(t, loggedInAs(users.RoleAdmin))

	res := g.Navigate("/users")
	require.Equal(t, navigation.Allow, res.Decision)
	require.Equal(t, "/users", res.Path)
	require.Equal(t, "Users", res.Route.Name)
	require.Equal(t, "/users", g.Current())
	require.Empty(t, rec.Messages())
}

func TestGuard_ViewerDeniedBudget(t *testing.T) {
	g, rec := newGuard(t, loggedInAs(users.RoleViewer))

	res := g.Navigate("/budget")
	require.Equal(t, navigation.RedirectDefault, res.Decision)
	require.Equal(t, "/dashboard", res.Path)
	require.Equal(t, "/dashboard", g.Current())
	require.Equal(t, []notifyfake.Message{{Level: notify.LevelWarning, Text: notify.MsgNoRoutePermission}}, rec.Messages())
}

func TestGuard_LeaderOnlyRoutesNeverRenderForViewer(t *testing.T) {
	table := navigation.DefaultTable()
	g, rec := newGuard(t, loggedInAs(users.RoleViewer))

	checked := 0
	for _, r := range table.Routes {
		if !r.Restricted() || users.RoleViewer.In(r.Roles...) {
			continue
		}
		checked++
		rec.Reset()

		res := g.Navigate(r.Path)
		require.Equal(t, navigation.RedirectDefault, res.Decision, r.Path)
		require.Equal(t, table.Default, res.Path, r.Path)
		require.NotEqual(t, r.Path, g.Current())
		require.Len(t, rec.Messages(), 1, r.Path)
	}
	require.Equal(t, 3, checked) // budget, simulation, users
}

func TestGuard_UnknownRoleLandsOnLogin(t *testing.T) {
	g, rec := newGuard(t, loggedInAs(users.RoleType("auditor")))

	res := g.Navigate("/reports")
	require.Equal(t, navigation.RedirectDefault, res.Decision)
	require.Equal(t, "/login", res.Path)
	require.Len(t, rec.Messages(), 1)
}

func TestGuard_CorruptIdentityRedirectsToLogin(t *testing.T) {
	g, _ := newGuard(t, fakeSessions{session: session.Session{Corrupt: true}})

	require.Equal(t, "/login", g.Navigate("/projects").Path)

	res := g.Navigate("/login")
	require.Equal(t, navigation.Allow, res.Decision)
	require.Equal(t, "/login", res.Path)
}

func TestGuard_Resolution(t *testing.T) {
	g, rec := newGuard(t, loggedInAs(users.RoleDepartment))

	t.Run("root redirects to dashboard", func(t *testing.T) {
		res := g.Navigate("/")
		require.Equal(t, navigation.Allow, res.Decision)
		require.Equal(t, "/dashboard", res.Path)
	})

	t.Run("unknown path falls back to dashboard", func(t *testing.T) {
		res := g.Navigate("/does/not/exist")
		require.Equal(t, navigation.Allow, res.Decision)
		require.Equal(t, "/dashboard", res.Path)
	})

	t.Run("path parameters", func(t *testing.T) {
		res := g.Navigate("/projects/42?tab=costs")
		require.Equal(t, navigation.Allow, res.Decision)
		require.Equal(t, "/projects/42", res.Path)
		require.Equal(t, "ProjectDetail", res.Route.Name)
		require.Equal(t, navigation.Params{"id": "42"}, res.Params)
	})

	t.Run("trailing slash", func(t *testing.T) {
		require.Equal(t, "/alerts", g.Navigate("/alerts/").Path)
	})

	require.Empty(t, rec.Messages())
}

func TestGuard_ForceLogin(t *testing.T) {
	g, _ := newGuard(t, loggedInAs(users.RoleAdmin))
	g.Navigate("/users")
	g.ForceLogin()
	require.Equal(t, "/login", g.Current())
}

func TestGuard_Menu(t *testing.T) {
	titles := func(routes []navigation.Route) []string {
		var out []string
		for _, r := range routes {
			out = append(out, r.Name)
		}
		return out
	}

	g, _ := newGuard(t, loggedInAs(users.RoleViewer))
	require.Equal(t, []string{"Dashboard", "Projects", "Expenditures", "Alerts", "Reports"}, titles(g.Menu()))

	g, _ = newGuard(t, loggedInAs(users.RoleAdmin))
	require.Equal(t, []string{"Dashboard", "Projects", "Budget", "Expenditures", "Simulation", "Alerts", "Reports", "Users"}, titles(g.Menu()))

	g, _ = newGuard(t, fakeSessions{})
	require.Empty(t, g.Menu())
}

func TestResult_Err(t *testing.T) {
	g, _ := newGuard(t, loggedInAs(users.RoleViewer))

	require.NoError(t, g.Navigate("/reports").Err())

	err := g.Navigate("/users").Err()
	require.True(t, errors.Is(err, errors.ErrRouteUnauthorized))
	require.Contains(t, err.Error(), "/users")

	anon, _ := newGuard(t, fakeSessions{})
	require.True(t, errors.Is(anon.Navigate("/reports").Err(), errors.ErrNotLoggedIn))
}
