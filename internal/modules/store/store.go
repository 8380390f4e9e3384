// Package store persists per-tenant module governance rows.
package store

import (
	"context"

	"mobiq/internal/modules"
	id "mobiq/pkg/domain"
)

// Error Contract:
// All store methods follow this error pattern:
// - ListByTenant returns a non-nil (possibly empty) slice on success
// - Upsert replaces the row for (tenant, key) or creates it
// - Infrastructure failures are returned as wrapped errors with context
type Store interface {
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]modules.TenantModule, error)
	Upsert(ctx context.Context, row *modules.TenantModule) error
}
