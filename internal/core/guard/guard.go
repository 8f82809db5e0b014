// Package guard classifies request paths and decides, per request, whether
// to let it through or redirect it. Decisions depend only on the path and
// the caller's session.
package guard

import (
	"strings"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// Class is the category a path falls into.
type Class string

const (
	ClassAPIAuth       Class = "api_auth"
	ClassPublic        Class = "public"
	ClassAuthPage      Class = "auth_page"
	ClassRoleProtected Class = "role_protected"
	ClassProtected     Class = "protected"
)

// Action is what the guard does with a request.
type Action string

const (
	ActionContinue          Action = "continue"
	ActionRedirectLanding   Action = "landing"
	ActionRedirectSignIn    Action = "sign_in"
	ActionRedirectForbidden Action = "forbidden"
)

// Table is the static route classification.
type Table struct {
	APIAuthPrefix string
	Public        []string
	// AuthPages are reachable only without a session. Matched exactly.
	AuthPages []string
	// RolePrefixes maps a path prefix to the roles allowed under it.
	RolePrefixes map[string]domain.RoleSet

	DefaultLanding string
	SignIn         string
	Forbidden      string
}

// DefaultTable returns the backoffice route table.
func DefaultTable() Table {
	return Table{
		APIAuthPrefix: "/api/auth",
		Public:        []string{"/", "/forbidden"},
		AuthPages:     []string{"/auth/sign-in", "/auth/sign-up", "/auth/forgot-password"},
		RolePrefixes: map[string]domain.RoleSet{
			"/admin": {domain.RoleAdmin},
		},
		DefaultLanding: "/dashboard",
		SignIn:         "/auth/sign-in",
		Forbidden:      "/forbidden",
	}
}

// Decision is the outcome of evaluating one request.
type Decision struct {
	Class    Class
	Action   Action
	Redirect string // empty when Action is ActionContinue
}

// Guard evaluates requests against a Table.
type Guard struct {
	t Table
}

// New returns a Guard for t. Empty redirect targets fall back to the
// defaults.
func New(t Table) *Guard {
	def := DefaultTable()
	if t.DefaultLanding == "" {
		t.DefaultLanding = def.DefaultLanding
	}
	if t.SignIn == "" {
		t.SignIn = def.SignIn
	}
	if t.Forbidden == "" {
		t.Forbidden = def.Forbidden
	}
	return &Guard{t: t}
}

// Table returns the table the guard evaluates.
func (g *Guard) Table() Table { return g.t }

// Classify returns the class of path and, for role-protected paths, the
// roles allowed.
func (g *Guard) Classify(path string) (Class, domain.RoleSet) {
	path = clean(path)

	if g.t.APIAuthPrefix != "" && hasPrefix(path, g.t.APIAuthPrefix) {
		return ClassAPIAuth, nil
	}
	for _, p := range g.t.Public {
		if path == clean(p) {
			return ClassPublic, nil
		}
	}
	for _, p := range g.t.AuthPages {
		if path == clean(p) {
			return ClassAuthPage, nil
		}
	}

	// Longest matching prefix wins.
	var (
		best  string
		roles domain.RoleSet
	)
	for prefix, rs := range g.t.RolePrefixes {
		if hasPrefix(path, prefix) && len(prefix) > len(best) {
			best, roles = prefix, rs
		}
	}
	if best != "" {
		return ClassRoleProtected, roles
	}
	return ClassProtected, nil
}

// Decide evaluates path for a caller holding sess, which is nil when the
// caller has no valid session.
func (g *Guard) Decide(path string, sess *domain.Session) Decision {
	class, roles := g.Classify(path)
	d := Decision{Class: class, Action: ActionContinue}

	switch class {
	case ClassAPIAuth, ClassPublic:
	case ClassAuthPage:
		if sess != nil {
			d.Action, d.Redirect = ActionRedirectLanding, g.t.DefaultLanding
		}
	case ClassRoleProtected:
		switch {
		case sess == nil:
			d.Action, d.Redirect = ActionRedirectSignIn, g.t.SignIn
		case !roles.Allows(sess.Role):
			d.Action, d.Redirect = ActionRedirectForbidden, g.t.Forbidden
		}
	default:
		if sess == nil {
			d.Action, d.Redirect = ActionRedirectSignIn, g.t.SignIn
		}
	}
	return d
}

// hasPrefix matches prefix on path segment boundaries, so /admin matches
// /admin and /admin/users but not /administrator.
func hasPrefix(path, prefix string) bool {
	prefix = clean(prefix)
	if prefix == "/" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

func clean(p string) string {
	if p == "" {
		return "/"
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return "/"
		}
	}
	return p
}
