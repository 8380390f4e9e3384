package service

import (
	"context"
	"testing"

	"mobiq/internal/modules"
	"mobiq/internal/modules/store"
	id "mobiq/pkg/domain"
	dErrors "mobiq/pkg/domain-errors"
)

func TestListReturnsNonNilForUnknownTenant(t *testing.T) {
	svc := New(store.NewInMemory())

	rows, err := svc.ListTenantModules(context.Background(), id.NewTenantID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows == nil {
		t.Fatalf("rows must be non-nil: empty means loaded, nil means not loaded")
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestSetEnabledRejectsUnknownKey(t *testing.T) {
	svc := New(store.NewInMemory())

	_, err := svc.SetEnabled(context.Background(), id.NewTenantID(), modules.Key("bogus"), true)
	if !dErrors.HasCode(err, dErrors.CodeInvalidInput) {
		t.Fatalf("expected invalid input for unknown key, got %v", err)
	}
}

func TestSetEnabledUpserts(t *testing.T) {
	svc := New(store.NewInMemory())
	tenantID := id.NewTenantID()

	row, err := svc.SetEnabled(context.Background(), tenantID, modules.KeyTaxEngine, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.Enabled {
		t.Fatalf("expected disabled row")
	}

	// Upsert flips the flag in place instead of creating a second row.
	if _, err := svc.SetEnabled(context.Background(), tenantID, modules.KeyTaxEngine, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := svc.ListTenantModules(context.Background(), tenantID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected a single row after upsert, got %d", len(rows))
	}
	if !rows[0].Enabled {
		t.Fatalf("expected flag flipped to enabled")
	}
}
