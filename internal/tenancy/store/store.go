// Package store defines the persistence contracts for tenancy data.
package store

import (
	"context"

	"mobiq/internal/tenancy/models"
	id "mobiq/pkg/domain"
)

// MembershipStore reads a principal's tenant memberships.
//
// ListByUser returns memberships in a stable order: implementations order by
// (created_at, tenant_id). "First membership" in the selection-repair
// algorithm means the first element of this slice.
type MembershipStore interface {
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.Membership, error)
}

// TenantStore reads tenant display metadata.
type TenantStore interface {
	FindByIDs(ctx context.Context, ids []id.TenantID) (map[id.TenantID]*models.Tenant, error)
}

// MembershipWriter grants memberships. Used by seeding and the invite flow,
// not by the resolver, which is read-only.
type MembershipWriter interface {
	Create(ctx context.Context, m *models.Membership) error
}
