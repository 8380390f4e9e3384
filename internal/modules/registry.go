// Package modules defines the closed catalog of feature modules, the mapping
// from route paths to module keys, and per-tenant module enablement.
package modules

import "strings"

// Key identifies a togglable feature area of the product. The set is closed
// and defined at build time.
type Key string

const (
	KeySimulations    Key = "simulations"
	KeyPolicies       Key = "policies"
	KeyTaxEngine      Key = "tax_engine"
	KeyEmployees      Key = "employees"
	KeyPreTravel      Key = "pre_travel"
	KeyBusinessTravel Key = "business_travel"
	KeyCompensation   Key = "compensation"
	KeyPayroll        Key = "payroll"
	KeyReporting      Key = "reporting"
	KeyAnalytics      Key = "analytics"
	KeyDocuments      Key = "documents"
	KeyLookupTables   Key = "lookup_tables"
	KeyFieldLibrary   Key = "field_library"
	KeyNotifications  Key = "notifications"
	KeyAuditLog       Key = "audit_log"
	KeyInvoicing      Key = "invoicing"
	KeyCostCenters    Key = "cost_centers"
	KeyAssignments    Key = "assignments"
	KeyVendors        Key = "vendors"
	KeyIntegrations   Key = "integrations"
)

// AllKeys enumerates every module key in catalog order.
var AllKeys = []Key{
	KeySimulations,
	KeyPolicies,
	KeyTaxEngine,
	KeyEmployees,
	KeyPreTravel,
	KeyBusinessTravel,
	KeyCompensation,
	KeyPayroll,
	KeyReporting,
	KeyAnalytics,
	KeyDocuments,
	KeyLookupTables,
	KeyFieldLibrary,
	KeyNotifications,
	KeyAuditLog,
	KeyInvoicing,
	KeyCostCenters,
	KeyAssignments,
	KeyVendors,
	KeyIntegrations,
}

// labels maps every module key to its display string. Total over AllKeys.
var labels = map[Key]string{
	KeySimulations:    "Simulations",
	KeyPolicies:       "Policies",
	KeyTaxEngine:      "Tax Engine",
	KeyEmployees:      "Employees",
	KeyPreTravel:      "Pre-Travel",
	KeyBusinessTravel: "Business Travel",
	KeyCompensation:   "Compensation",
	KeyPayroll:        "Payroll",
	KeyReporting:      "Reporting",
	KeyAnalytics:      "Analytics",
	KeyDocuments:      "Documents",
	KeyLookupTables:   "Lookup Tables",
	KeyFieldLibrary:   "Field Library",
	KeyNotifications:  "Notifications",
	KeyAuditLog:       "Audit Log",
	KeyInvoicing:      "Invoicing",
	KeyCostCenters:    "Cost Centers",
	KeyAssignments:    "Assignments",
	KeyVendors:        "Vendors",
	KeyIntegrations:   "Integrations",
}

// Label returns the display string for a key, falling back to the raw key for
// anything outside the catalog.
func Label(k Key) string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

// Known reports whether the key belongs to the catalog.
func Known(k Key) bool {
	_, ok := labels[k]
	return ok
}

// RouteBinding maps a top-level feature route to its module key.
type RouteBinding struct {
	Path   string
	Module Key
}

// RouteTable binds feature routes to module keys. It is an ordered slice, not
// a map: prefix resolution walks it in declaration order and the first match
// wins, so overlapping prefixes resolve deterministically.
var RouteTable = []RouteBinding{
	{Path: "/simulations", Module: KeySimulations},
	{Path: "/policies", Module: KeyPolicies},
	{Path: "/tax-engine", Module: KeyTaxEngine},
	{Path: "/employees", Module: KeyEmployees},
	{Path: "/pre-travel", Module: KeyPreTravel},
	{Path: "/business-travel", Module: KeyBusinessTravel},
	{Path: "/compensation", Module: KeyCompensation},
	{Path: "/payroll", Module: KeyPayroll},
	{Path: "/reporting", Module: KeyReporting},
	{Path: "/analytics", Module: KeyAnalytics},
	{Path: "/documents", Module: KeyDocuments},
	{Path: "/lookup-tables", Module: KeyLookupTables},
	{Path: "/field-library", Module: KeyFieldLibrary},
	{Path: "/notifications", Module: KeyNotifications},
	{Path: "/audit-log", Module: KeyAuditLog},
	{Path: "/invoicing", Module: KeyInvoicing},
	{Path: "/cost-centers", Module: KeyCostCenters},
	{Path: "/assignments", Module: KeyAssignments},
	{Path: "/vendors", Module: KeyVendors},
	{Path: "/integrations", Module: KeyIntegrations},
}

// ResolveRoute finds the module key governing a path. Exact matches win, then
// the first binding whose path is a segment-boundary prefix of the given path.
// The dashboard root and unmapped paths have no module and return false.
func ResolveRoute(pathname string) (Key, bool) {
	for _, b := range RouteTable {
		if pathname == b.Path {
			return b.Module, true
		}
	}
	for _, b := range RouteTable {
		if b.Path == "/" {
			continue
		}
		if strings.HasPrefix(pathname, b.Path+"/") {
			return b.Module, true
		}
	}
	return "", false
}
