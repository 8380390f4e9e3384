package modules

import (
	"time"

	id "mobiq/pkg/domain"
)

// TenantModule is a per-tenant governance row for one module key.
// Zero or one row exists per (tenant, key); absence means enabled.
type TenantModule struct {
	ID        id.ModuleRowID `json:"id"`
	TenantID  id.TenantID    `json:"tenant_id"`
	Key       Key            `json:"module_key"`
	Enabled   bool           `json:"is_enabled"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// IsEnabled decides whether a module key is enabled for a tenant given its
// governance rows.
//
// Fail-open by design: a nil slice (rows not yet loaded) and a missing row
// both mean enabled. Only an explicit is_enabled=false row blocks access.
// Callers that have loaded an empty row set must pass a non-nil empty slice;
// the result is the same, but the distinction keeps load-state handling honest.
func IsEnabled(rows []TenantModule, key Key) bool {
	if rows == nil {
		return true
	}
	for _, row := range rows {
		if row.Key == key {
			return row.Enabled
		}
	}
	return true
}
