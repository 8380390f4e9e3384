package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"mobiq/internal/tenancy/models"
	id "mobiq/pkg/domain"
)

// PostgresMemberships persists memberships in PostgreSQL (tenant_users).
type PostgresMemberships struct {
	db *sql.DB
}

func NewPostgresMemberships(db *sql.DB) *PostgresMemberships {
	return &PostgresMemberships{db: db}
}

func (s *PostgresMemberships) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Membership, error) {
	// Explicit ordering pins the "first membership" used by selection repair.
	query := `
		SELECT id, user_id, tenant_id, sub_tenant_id, role, created_at
		FROM tenant_users
		WHERE user_id = $1
		ORDER BY created_at, tenant_id
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var out []*models.Membership
	for rows.Next() {
		var (
			m         models.Membership
			rowID     uuid.UUID
			user      uuid.UUID
			tenant    uuid.UUID
			subTenant uuid.NullUUID
			role      string
		)
		if err := rows.Scan(&rowID, &user, &tenant, &subTenant, &role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		m.ID = id.MembershipID(rowID)
		m.UserID = id.UserID(user)
		m.TenantID = id.TenantID(tenant)
		m.Role = id.Role(role)
		if subTenant.Valid {
			st := id.SubTenantID(subTenant.UUID)
			m.SubTenantID = &st
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}
	return out, nil
}

func (s *PostgresMemberships) Create(ctx context.Context, m *models.Membership) error {
	query := `
		INSERT INTO tenant_users (id, user_id, tenant_id, sub_tenant_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	var subTenant uuid.NullUUID
	if m.SubTenantID != nil {
		subTenant = uuid.NullUUID{UUID: uuid.UUID(*m.SubTenantID), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(m.ID), uuid.UUID(m.UserID), uuid.UUID(m.TenantID), subTenant, string(m.Role), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create membership: %w", err)
	}
	return nil
}

// PostgresTenants reads tenant display metadata.
type PostgresTenants struct {
	db *sql.DB
}

func NewPostgresTenants(db *sql.DB) *PostgresTenants {
	return &PostgresTenants{db: db}
}

func (s *PostgresTenants) FindByIDs(ctx context.Context, ids []id.TenantID) (map[id.TenantID]*models.Tenant, error) {
	if len(ids) == 0 {
		return map[id.TenantID]*models.Tenant{}, nil
	}

	raw := make([]uuid.UUID, len(ids))
	for i, tenantID := range ids {
		raw[i] = uuid.UUID(tenantID)
	}

	query := `
		SELECT id, name, slug, COALESCE(logo_url, '')
		FROM tenants
		WHERE id = ANY($1)
	`
	rows, err := s.db.QueryContext(ctx, query, raw)
	if err != nil {
		return nil, fmt.Errorf("find tenants: %w", err)
	}
	defer rows.Close()

	out := make(map[id.TenantID]*models.Tenant, len(ids))
	for rows.Next() {
		var (
			t     models.Tenant
			rowID uuid.UUID
		)
		if err := rows.Scan(&rowID, &t.Name, &t.Slug, &t.LogoURL); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		t.ID = id.TenantID(rowID)
		out[t.ID] = &t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tenants: %w", err)
	}
	return out, nil
}
