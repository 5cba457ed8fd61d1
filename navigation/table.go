package navigation

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/users"
	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var defaultRoutes []byte

// maxRedirects bounds redirect chains in a route table
const maxRedirects = 8

// Route is one entry of the route table. Routes require authentication
// unless RequiresAuth is explicitly false; a nil Roles means any role.
type Route struct {
	Path         string           `yaml:"path"`
	Name         string           `yaml:"name,omitempty"`
	Title        string           `yaml:"title,omitempty"`
	RequiresAuth *bool            `yaml:"requiresAuth,omitempty"`
	Roles        []users.RoleType `yaml:"roles,omitempty"`
	Redirect     string           `yaml:"redirect,omitempty"`
}

func (r Route) AuthRequired() bool {
	return r.RequiresAuth == nil || *r.RequiresAuth
}

// Restricted reports whether the route declares an allowed-role set
func (r Route) Restricted() bool {
	return len(r.Roles) > 0
}

// Params holds values captured by ":name" path segments
type Params map[string]string

// Table is the ordered route table; the first matching entry wins
type Table struct {
	Login   string  `yaml:"login"`
	Default string  `yaml:"default"`
	Routes  []Route `yaml:"routes"`
}

// DefaultTable returns the built-in route table
func DefaultTable() *Table {
	t, err := LoadTable(bytes.NewReader(defaultRoutes))
	if err != nil {
		panic("invalid built-in route table: " + err.Error())
	}
	return t
}

// LoadTable decodes and validates a YAML route table
func LoadTable(r io.Reader) (*Table, error) {
	var t Table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidRouteTable, "[navigation LoadTable] decode: %v", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks the table is self-consistent: login and default routes
// exist, the login route is public, roles are known and redirects resolve.
func (t *Table) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", errors.ErrInvalidRouteTable, fmt.Sprintf(format, args...))
	}

	if len(t.Routes) == 0 {
		return invalid("no routes")
	}
	for i, r := range t.Routes {
		if !strings.HasPrefix(r.Path, "/") {
			return invalid("route %d: path %q must start with /", i, r.Path)
		}
		for _, role := range r.Roles {
			if !role.Valid() {
				return invalid("route %s: unknown role %q", r.Path, role)
			}
		}
		if r.Redirect != "" {
			if _, _, _, err := t.resolve(r.Redirect); err != nil {
				return invalid("route %s: %v", r.Path, err)
			}
		}
	}

	login, ok := t.lookup(t.Login)
	if !ok {
		return invalid("login route %q not found", t.Login)
	}
	if login.AuthRequired() || login.Restricted() {
		return invalid("login route %q must be public", t.Login)
	}
	if _, ok := t.lookup(t.Default); !ok {
		return invalid("default route %q not found", t.Default)
	}
	return nil
}

// Match finds the first route whose pattern matches path. Redirect entries
// are followed. ok is false when nothing matched and the default route was
// substituted.
func (t *Table) Match(path string) (route Route, resolved string, params Params, ok bool) {
	route, resolved, params, err := t.resolve(path)
	if err != nil {
		def, _ := t.lookup(t.Default)
		return def, t.Default, Params{}, false
	}
	return route, resolved, params, true
}

// Lookup returns the route registered under exactly path
func (t *Table) Lookup(path string) (Route, bool) {
	return t.lookup(path)
}

func (t *Table) lookup(path string) (Route, bool) {
	for _, r := range t.Routes {
		if r.Path == path && r.Redirect == "" {
			return r, true
		}
	}
	return Route{}, false
}

func (t *Table) resolve(path string) (Route, string, Params, error) {
	current := normalize(path)
	for hop := 0; hop <= maxRedirects; hop++ {
		route, params, ok := t.find(current)
		if !ok {
			return Route{}, "", nil, fmt.Errorf("no route for %q", current)
		}
		if route.Redirect == "" {
			return route, current, params, nil
		}
		current = normalize(route.Redirect)
	}
	return Route{}, "", nil, fmt.Errorf("too many redirects from %q", path)
}

func (t *Table) find(path string) (Route, Params, bool) {
	for _, r := range t.Routes {
		if params, ok := matchPattern(r.Path, path); ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}

func matchPattern(pattern, path string) (Params, bool) {
	patternSegs := segments(pattern)
	pathSegs := segments(path)
	if len(patternSegs) != len(pathSegs) {
		return nil, false
	}

	params := Params{}
	for i, seg := range patternSegs {
		if name, isParam := strings.CutPrefix(seg, ":"); isParam {
			if pathSegs[i] == "" {
				return nil, false
			}
			value, err := url.PathUnescape(pathSegs[i])
			if err != nil {
				return nil, false
			}
			params[name] = value
			continue
		}
		if seg != pathSegs[i] {
			return nil, false
		}
	}
	return params, true
}

func segments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// normalize drops query, fragment and trailing slashes
func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(path, "/")
	return path
}
