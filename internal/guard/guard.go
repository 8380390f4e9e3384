// Package guard decides whether a navigation target is permitted for a
// principal. Evaluation is a pure function of role, path, and the tenant's
// module-row snapshot; it never returns an error, only allow or redirect.
package guard

import (
	"strings"

	"mobiq/internal/modules"
	id "mobiq/pkg/domain"
)

// Action is the navigation outcome.
type Action string

const (
	ActionAllow    Action = "allow"
	ActionRedirect Action = "redirect"
)

// RedirectTarget is where denied navigations land.
const RedirectTarget = "/"

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Action Action `json:"decision"`
	To     string `json:"to,omitempty"`
}

func allow() Decision    { return Decision{Action: ActionAllow} }
func redirect() Decision { return Decision{Action: ActionRedirect, To: RedirectTarget} }

// employeeAllowedRoots are the route roots an employee-role principal may
// visit. Matching is exact or segment-boundary prefix; "/policies-extra" does
// not match "/policies".
var employeeAllowedRoots = []string{
	"/",
	"/pre-travel",
	"/business-travel",
	"/documents",
	"/notifications",
}

// Snapshot is the tenant module-row state at evaluation time. A snapshot that
// has not loaded yet always allows (fail-open, avoids a redirect flash before
// data arrives).
type Snapshot struct {
	Loaded bool
	Rows   []modules.TenantModule
}

// Evaluate decides allow or redirect for a navigation, in order:
// role allow-list, route-to-module resolution, unmapped paths allow,
// not-yet-loaded rows allow, then module enablement.
func Evaluate(role id.Role, pathname string, snap Snapshot) Decision {
	pathname = normalizePath(pathname)

	if role == id.RoleEmployee && !employeeAllowed(pathname) {
		return redirect()
	}

	key, ok := modules.ResolveRoute(pathname)
	if !ok {
		// Dashboard, administrative, and unknown routes carry no module.
		return allow()
	}

	if !snap.Loaded {
		return allow()
	}

	rows := snap.Rows
	if rows == nil {
		rows = []modules.TenantModule{}
	}
	if !modules.IsEnabled(rows, key) {
		return redirect()
	}
	return allow()
}

func employeeAllowed(pathname string) bool {
	for _, root := range employeeAllowedRoots {
		if pathname == root {
			return true
		}
		if root != "/" && strings.HasPrefix(pathname, root+"/") {
			return true
		}
	}
	return false
}

// normalizePath strips query and fragment and guarantees a leading slash so
// matching operates on the path alone.
func normalizePath(pathname string) string {
	if i := strings.IndexAny(pathname, "?#"); i >= 0 {
		pathname = pathname[:i]
	}
	if pathname == "" {
		return "/"
	}
	if !strings.HasPrefix(pathname, "/") {
		pathname = "/" + pathname
	}
	if len(pathname) > 1 {
		pathname = strings.TrimSuffix(pathname, "/")
	}
	return pathname
}
