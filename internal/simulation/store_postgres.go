package simulation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	id "mobiq/pkg/domain"
	"mobiq/pkg/sentinel"
)

// PostgresStore persists simulations in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, sim *Simulation) error {
	query := `
		INSERT INTO simulations (id, tenant_id, sub_tenant_id, employee_id, name, status, cost_total_cents, currency, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(sim.ID), uuid.UUID(sim.TenantID), nullableSubTenant(sim.SubTenantID),
		nullableEmployee(sim.EmployeeID), sim.Name, string(sim.Status), sim.CostTotal,
		sim.Currency, uuid.UUID(sim.CreatedBy), sim.CreatedAt, sim.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create simulation: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, sim *Simulation) error {
	query := `
		UPDATE simulations
		SET name = $3, status = $4, cost_total_cents = $5, currency = $6, employee_id = $7, updated_at = $8
		WHERE id = $1 AND tenant_id = $2
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(sim.ID), uuid.UUID(sim.TenantID), sim.Name, string(sim.Status),
		sim.CostTotal, sim.Currency, nullableEmployee(sim.EmployeeID), sim.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update simulation: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("simulation not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, tenantID id.TenantID, simID id.SimulationID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM simulations WHERE id = $1 AND tenant_id = $2`,
		uuid.UUID(simID), uuid.UUID(tenantID),
	)
	if err != nil {
		return fmt.Errorf("delete simulation: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("simulation not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, tenantID id.TenantID, simID id.SimulationID) (*Simulation, error) {
	query := `
		SELECT id, tenant_id, sub_tenant_id, employee_id, name, status, cost_total_cents, currency, created_by, created_at, updated_at
		FROM simulations
		WHERE id = $1 AND tenant_id = $2
	`
	sim, err := scanSimulation(s.db.QueryRowContext(ctx, query, uuid.UUID(simID), uuid.UUID(tenantID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("simulation not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find simulation: %w", err)
	}
	return sim, nil
}

func (s *PostgresStore) ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*Simulation, error) {
	query := `
		SELECT id, tenant_id, sub_tenant_id, employee_id, name, status, cost_total_cents, currency, created_by, created_at, updated_at
		FROM simulations
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(tenantID))
	if err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}
	defer rows.Close()

	out := make([]*Simulation, 0)
	for rows.Next() {
		sim, err := scanSimulation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan simulation: %w", err)
		}
		out = append(out, sim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate simulations: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSimulation(row rowScanner) (*Simulation, error) {
	var (
		sim       Simulation
		simID     uuid.UUID
		tenant    uuid.UUID
		subTenant uuid.NullUUID
		employee  uuid.NullUUID
		status    string
		createdBy uuid.UUID
	)
	err := row.Scan(&simID, &tenant, &subTenant, &employee, &sim.Name, &status,
		&sim.CostTotal, &sim.Currency, &createdBy, &sim.CreatedAt, &sim.UpdatedAt)
	if err != nil {
		return nil, err
	}
	sim.ID = id.SimulationID(simID)
	sim.TenantID = id.TenantID(tenant)
	sim.Status = Status(status)
	sim.CreatedBy = id.UserID(createdBy)
	if subTenant.Valid {
		st := id.SubTenantID(subTenant.UUID)
		sim.SubTenantID = &st
	}
	if employee.Valid {
		e := id.EmployeeID(employee.UUID)
		sim.EmployeeID = &e
	}
	return &sim, nil
}

func nullableSubTenant(v *id.SubTenantID) uuid.NullUUID {
	if v == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*v), Valid: true}
}

func nullableEmployee(v *id.EmployeeID) uuid.NullUUID {
	if v == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*v), Valid: true}
}

// PostgresAuditStore persists the audit trail in PostgreSQL.
type PostgresAuditStore struct {
	db *sql.DB
}

func NewPostgresAuditStore(db *sql.DB) *PostgresAuditStore {
	return &PostgresAuditStore{db: db}
}

func (s *PostgresAuditStore) Append(ctx context.Context, entry *AuditEntry) error {
	query := `
		INSERT INTO simulation_audit_log (id, simulation_id, tenant_id, action, actor_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		entry.ID, uuid.UUID(entry.SimulationID), uuid.UUID(entry.TenantID),
		string(entry.Action), uuid.UUID(entry.ActorID), entry.Detail, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (s *PostgresAuditStore) ListBySimulation(ctx context.Context, tenantID id.TenantID, simID id.SimulationID) ([]*AuditEntry, error) {
	query := `
		SELECT id, simulation_id, tenant_id, action, actor_id, detail, created_at
		FROM simulation_audit_log
		WHERE tenant_id = $1 AND simulation_id = $2
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(tenantID), uuid.UUID(simID))
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	out := make([]*AuditEntry, 0)
	for rows.Next() {
		var (
			e      AuditEntry
			sim    uuid.UUID
			tenant uuid.UUID
			action string
			actor  uuid.UUID
		)
		if err := rows.Scan(&e.ID, &sim, &tenant, &action, &actor, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.SimulationID = id.SimulationID(sim)
		e.TenantID = id.TenantID(tenant)
		e.Action = AuditAction(action)
		e.ActorID = id.UserID(actor)
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return out, nil
}
