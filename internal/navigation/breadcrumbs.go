// Package navigation builds breadcrumb trails from URL paths. Labels come
// from a static segment table; unknown segments fall through as-is so new
// routes render without a code change.
package navigation

import "strings"

// Crumb is one entry in a breadcrumb trail. Href is the cumulative path up
// to and including this segment.
type Crumb struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

var segmentLabels = map[string]string{
	"simulations":     "Simulations",
	"policies":        "Policies",
	"tax-engine":      "Tax Engine",
	"employees":       "Employees",
	"pre-travel":      "Pre-Travel",
	"business-travel": "Business Travel",
	"compensation":    "Compensation",
	"payroll":         "Payroll",
	"reporting":       "Reporting",
	"analytics":       "Analytics",
	"documents":       "Documents",
	"lookup-tables":   "Lookup Tables",
	"field-library":   "Field Library",
	"notifications":   "Notifications",
	"audit-log":       "Audit Log",
	"invoicing":       "Invoicing",
	"cost-centers":    "Cost Centers",
	"assignments":     "Assignments",
	"vendors":         "Vendors",
	"integrations":    "Integrations",
	"settings":        "Settings",
	"admin":           "Admin",
	"new":             "New",
	"edit":            "Edit",
}

// Label returns the display label for a path segment, or the raw segment
// when it has no mapping. IDs and slugs therefore surface verbatim.
func Label(segment string) string {
	if label, ok := segmentLabels[segment]; ok {
		return label
	}
	return segment
}

// Breadcrumbs splits pathname into cumulative crumbs. The root path yields
// an empty trail; query strings and fragments are ignored.
func Breadcrumbs(pathname string) []Crumb {
	if i := strings.IndexAny(pathname, "?#"); i >= 0 {
		pathname = pathname[:i]
	}
	pathname = strings.Trim(pathname, "/")
	if pathname == "" {
		return []Crumb{}
	}

	segments := strings.Split(pathname, "/")
	crumbs := make([]Crumb, 0, len(segments))
	href := ""
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		href += "/" + seg
		crumbs = append(crumbs, Crumb{Label: Label(seg), Href: href})
	}
	return crumbs
}
