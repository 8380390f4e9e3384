// Package simulation owns tenant-scoped mobility-cost simulations and their
// append-only audit trail.
package simulation

import (
	"time"

	"github.com/google/uuid"

	id "mobiq/pkg/domain"
)

// Status is the lifecycle state of a simulation.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusRunning, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Simulation is one mobility-cost scenario. Every read is scoped by tenant;
// sub-tenant narrows the scope further when present.
type Simulation struct {
	ID          id.SimulationID `json:"id"`
	TenantID    id.TenantID     `json:"tenant_id"`
	SubTenantID *id.SubTenantID `json:"sub_tenant_id,omitempty"`
	EmployeeID  *id.EmployeeID  `json:"employee_id,omitempty"`
	Name        string          `json:"name"`
	Status      Status          `json:"status"`
	CostTotal   int64           `json:"cost_total_cents"`
	Currency    string          `json:"currency"`
	CreatedBy   id.UserID       `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AuditAction labels audit log entries.
type AuditAction string

const (
	AuditCreated AuditAction = "simulation_created"
	AuditUpdated AuditAction = "simulation_updated"
	AuditDeleted AuditAction = "simulation_deleted"
)

// AuditEntry is one append-only audit log record for a simulation.
type AuditEntry struct {
	ID           uuid.UUID       `json:"id"`
	SimulationID id.SimulationID `json:"simulation_id"`
	TenantID     id.TenantID     `json:"tenant_id"`
	Action       AuditAction     `json:"action"`
	ActorID      id.UserID       `json:"actor_id"`
	Detail       string          `json:"detail,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
