// Package navigation decides, before any screen is shown, whether the
// current session may see it.
package navigation

import (
	"sync"

	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/metrics"
	"github.com/jrsteele09/go-budget-console/notify"
	"github.com/jrsteele09/go-budget-console/session"
	"github.com/jrsteele09/go-budget-console/users"
	"github.com/rs/zerolog/log"
)

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectDefault
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectDefault:
		return "redirect_default"
	}
	return "unknown"
}

// Decide is the pure access rule for a single route, evaluated in order:
// missing token, role outside the allowed set, undecodable identity.
func Decide(route Route, s session.Session) Decision {
	if route.AuthRequired() && s.Token == "" {
		return RedirectLogin
	}

	if route.Restricted() && s.User != nil {
		role, err := users.ParseRole(s.User.Role.String())
		if err != nil || !role.In(route.Roles...) {
			return RedirectDefault
		}
	}

	if route.AuthRequired() || route.Restricted() {
		if s.Corrupt || (s.Token != "" && s.User == nil) {
			return RedirectLogin
		}
	}
	return Allow
}

// SessionSource gives the guard read-only access to the session
type SessionSource interface {
	Snapshot() session.Session
}

// Result describes where a navigation ended up
type Result struct {
	Requested string
	Path      string // the screen actually shown
	Route     Route
	Params    Params
	Decision  Decision
}

// Err explains a redirect; nil when the transition was allowed
func (r Result) Err() error {
	switch r.Decision {
	case RedirectLogin:
		return errors.ErrNotLoggedIn
	case RedirectDefault:
		return errors.Wrapf(errors.ErrRouteUnauthorized, "%s", r.Requested)
	}
	return nil
}

// Guard evaluates every transition against the route table. It only reads
// the session; the redirect and a warning are its only side effects.
type Guard struct {
	mu       sync.RWMutex
	table    *Table
	sessions SessionSource
	notifier notify.Notifier
	current  string
}

func NewGuard(table *Table, sessions SessionSource, notifier notify.Notifier) *Guard {
	return &Guard{
		table:    table,
		sessions: sessions,
		notifier: notifier,
	}
}

// Navigate resolves path, applies Decide and moves to the resulting screen.
// Unknown paths land on the default route. At most one notification is
// raised per call.
func (g *Guard) Navigate(path string) Result {
	snap := g.sessions.Snapshot()

	route, resolved, params, found := g.table.Match(path)
	if !found {
		log.Debug().Str("path", path).Str("fallback", resolved).Msg("Unknown route")
	}

	decision := Decide(route, snap)
	metrics.RecordNavigation(decision.String())

	result := Result{Requested: path, Path: resolved, Route: route, Params: params, Decision: decision}
	switch decision {
	case RedirectLogin:
		result = g.loginResult(result)
	case RedirectDefault:
		g.notifier.Warning(notify.MsgNoRoutePermission)
		def, _ := g.table.Lookup(g.table.Default)
		if Decide(def, snap) == Allow {
			result.Path, result.Route, result.Params = g.table.Default, def, Params{}
		} else {
			// Nowhere to land for this identity
			result = g.loginResult(result)
		}
	}

	log.Debug().
		Str("requested", path).
		Str("path", result.Path).
		Str("decision", decision.String()).
		Msg("Navigation")

	g.setCurrent(result.Path)
	return result
}

// ForceLogin moves to the login route without evaluation; the login route
// is always public.
func (g *Guard) ForceLogin() {
	g.setCurrent(g.table.Login)
}

// Current is the path of the screen being shown, "" before any navigation
func (g *Guard) Current() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current
}

// Menu lists the titled routes the current session may open, in table order
func (g *Guard) Menu() []Route {
	snap := g.sessions.Snapshot()
	var menu []Route
	for _, r := range g.table.Routes {
		if r.Title == "" || r.Redirect != "" || hasParams(r.Path) {
			continue
		}
		if Decide(r, snap) == Allow {
			menu = append(menu, r)
		}
	}
	return menu
}

func (g *Guard) loginResult(result Result) Result {
	login, _ := g.table.Lookup(g.table.Login)
	result.Path, result.Route, result.Params = g.table.Login, login, Params{}
	return result
}

func (g *Guard) setCurrent(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = path
}

func hasParams(path string) bool {
	for _, seg := range segments(path) {
		if len(seg) > 0 && seg[0] == ':' {
			return true
		}
	}
	return false
}
