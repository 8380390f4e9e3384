package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"mobiq/internal/modules"
	id "mobiq/pkg/domain"
)

// Postgres persists module governance rows in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed module store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) ListByTenant(ctx context.Context, tenantID id.TenantID) ([]modules.TenantModule, error) {
	query := `
		SELECT id, tenant_id, module_key, is_enabled, updated_at
		FROM tenant_modules
		WHERE tenant_id = $1
		ORDER BY module_key
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(tenantID))
	if err != nil {
		return nil, fmt.Errorf("list tenant modules: %w", err)
	}
	defer rows.Close()

	out := make([]modules.TenantModule, 0)
	for rows.Next() {
		var (
			row      modules.TenantModule
			rowID    uuid.UUID
			tenant   uuid.UUID
			keyValue string
		)
		if err := rows.Scan(&rowID, &tenant, &keyValue, &row.Enabled, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant module: %w", err)
		}
		row.ID = id.ModuleRowID(rowID)
		row.TenantID = id.TenantID(tenant)
		row.Key = modules.Key(keyValue)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tenant modules: %w", err)
	}
	return out, nil
}

func (s *Postgres) Upsert(ctx context.Context, row *modules.TenantModule) error {
	query := `
		INSERT INTO tenant_modules (id, tenant_id, module_key, is_enabled, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, module_key) DO UPDATE SET
			is_enabled = EXCLUDED.is_enabled,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`
	var rowID uuid.UUID
	err := s.db.QueryRowContext(ctx, query,
		uuid.UUID(row.ID), uuid.UUID(row.TenantID), string(row.Key), row.Enabled, row.UpdatedAt,
	).Scan(&rowID)
	if err != nil {
		return fmt.Errorf("upsert tenant module: %w", err)
	}
	row.ID = id.ModuleRowID(rowID)
	return nil
}
