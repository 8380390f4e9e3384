// Package service orchestrates module governance for tenants.
package service

import (
	"context"

	"mobiq/internal/modules"
	"mobiq/internal/modules/store"
	id "mobiq/pkg/domain"
	dErrors "mobiq/pkg/domain-errors"
	"mobiq/pkg/requestcontext"
)

// Service reads and writes tenant module governance rows.
type Service struct {
	store store.Store
}

func New(s store.Store) *Service {
	return &Service{store: s}
}

// ListTenantModules returns the governance rows for a tenant. The result is
// non-nil even when no row exists; absence of a row means enabled.
func (s *Service) ListTenantModules(ctx context.Context, tenantID id.TenantID) ([]modules.TenantModule, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant ID is required")
	}
	rows, err := s.store.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tenant modules")
	}
	if rows == nil {
		rows = []modules.TenantModule{}
	}
	return rows, nil
}

// SetEnabled upserts the governance row for (tenant, key).
func (s *Service) SetEnabled(ctx context.Context, tenantID id.TenantID, key modules.Key, enabled bool) (*modules.TenantModule, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant ID is required")
	}
	if !modules.Known(key) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown module key")
	}

	row := &modules.TenantModule{
		ID:        id.NewModuleRowID(),
		TenantID:  tenantID,
		Key:       key,
		Enabled:   enabled,
		UpdatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.Upsert(ctx, row); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update tenant module")
	}
	return row, nil
}
