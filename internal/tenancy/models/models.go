// Package models holds tenancy domain types: memberships, tenant metadata,
// and the resolved tenant selection exposed to the rest of the system.
package models

import (
	"time"

	id "mobiq/pkg/domain"
)

// Membership grants a principal a role within a tenant. At most one row
// exists per (principal, tenant); granted server-side and read-only here.
type Membership struct {
	ID          id.MembershipID `json:"id"`
	UserID      id.UserID       `json:"user_id"`
	TenantID    id.TenantID     `json:"tenant_id"`
	SubTenantID *id.SubTenantID `json:"sub_tenant_id,omitempty"`
	Role        id.Role         `json:"role"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Tenant is display metadata for a tenant, joined onto memberships.
type Tenant struct {
	ID      id.TenantID `json:"id"`
	Name    string      `json:"name"`
	Slug    string      `json:"slug"`
	LogoURL string      `json:"logo_url,omitempty"`
}

// TenantSummary is a membership decorated with tenant display metadata.
type TenantSummary struct {
	TenantID    id.TenantID     `json:"tenant_id"`
	SubTenantID *id.SubTenantID `json:"sub_tenant_id,omitempty"`
	Role        id.Role         `json:"role"`
	Name        string          `json:"tenant_name,omitempty"`
	Slug        string          `json:"tenant_slug,omitempty"`
	LogoURL     string          `json:"tenant_logo_url,omitempty"`
}

// Resolution is the tenant resolver's output for one principal and client
// profile: all memberships plus the validated active selection.
type Resolution struct {
	Memberships    []TenantSummary `json:"memberships"`
	ActiveTenantID id.TenantID     `json:"active_tenant_id"`
}

// ActiveRole returns the caller's role within the active tenant.
func (r *Resolution) ActiveRole() id.Role {
	for _, m := range r.Memberships {
		if m.TenantID == r.ActiveTenantID {
			return m.Role
		}
	}
	return ""
}

// HasTenant reports whether the resolution includes a membership for tenantID.
func (r *Resolution) HasTenant(tenantID id.TenantID) bool {
	for _, m := range r.Memberships {
		if m.TenantID == tenantID {
			return true
		}
	}
	return false
}

// Preferences are the durable per-client-profile settings.
type Preferences struct {
	Theme string `json:"theme,omitempty"`
}
