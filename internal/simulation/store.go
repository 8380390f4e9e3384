package simulation

import (
	"context"

	id "mobiq/pkg/domain"
)

// Store persists simulations.
//
// Error Contract:
// - FindByID returns sentinel.ErrNotFound (wrapped) when no row matches the
//   (tenant, id) pair; cross-tenant reads are indistinguishable from absence.
// - ListByTenant returns a non-nil slice ordered by created_at descending.
type Store interface {
	Create(ctx context.Context, sim *Simulation) error
	Update(ctx context.Context, sim *Simulation) error
	Delete(ctx context.Context, tenantID id.TenantID, simID id.SimulationID) error
	FindByID(ctx context.Context, tenantID id.TenantID, simID id.SimulationID) (*Simulation, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*Simulation, error)
}

// AuditStore persists the append-only audit trail.
type AuditStore interface {
	Append(ctx context.Context, entry *AuditEntry) error
	ListBySimulation(ctx context.Context, tenantID id.TenantID, simID id.SimulationID) ([]*AuditEntry, error)
}
