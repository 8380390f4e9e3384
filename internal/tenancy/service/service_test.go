package service

import (
	"context"
	"testing"
	"time"

	"mobiq/internal/tenancy/models"
	"mobiq/internal/tenancy/preferences"
	"mobiq/internal/tenancy/scope"
	"mobiq/internal/tenancy/store"
	id "mobiq/pkg/domain"
	dErrors "mobiq/pkg/domain-errors"
)

type fixture struct {
	svc     *Service
	prefs   *preferences.InMemory
	barrier *scope.Barrier
	userID  id.UserID
	tenants []id.TenantID
}

// newFixture seeds a user with memberships in the given roles, one tenant
// per role, in insertion order.
func newFixture(t *testing.T, roles ...id.Role) *fixture {
	t.Helper()

	memberships := store.NewInMemoryMemberships()
	tenants := store.NewInMemoryTenants()
	prefs := preferences.NewInMemory()
	barrier := scope.NewBarrier()

	userID := id.NewUserID()
	var tenantIDs []id.TenantID
	for i, role := range roles {
		tenantID := id.NewTenantID()
		tenantIDs = append(tenantIDs, tenantID)

		if err := tenants.Save(context.Background(), &models.Tenant{
			ID:   tenantID,
			Name: "Tenant " + string(rune('A'+i)),
			Slug: "tenant-" + string(rune('a'+i)),
		}); err != nil {
			t.Fatalf("seeding tenant: %v", err)
		}
		if err := memberships.Create(context.Background(), &models.Membership{
			ID:        id.NewMembershipID(),
			UserID:    userID,
			TenantID:  tenantID,
			Role:      role,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("seeding membership: %v", err)
		}
	}

	return &fixture{
		svc:     New(memberships, tenants, prefs, barrier),
		prefs:   prefs,
		barrier: barrier,
		userID:  userID,
		tenants: tenantIDs,
	}
}

func TestResolveNoMemberships(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Resolve(context.Background(), f.userID, "profile-1")
	if !dErrors.HasCode(err, dErrors.CodeForbidden) {
		t.Fatalf("expected forbidden for user with no memberships, got %v", err)
	}
}

func TestResolveDefaultsToFirstMembership(t *testing.T) {
	f := newFixture(t, id.RoleAdmin, id.RoleEmployee)

	res, err := f.svc.Resolve(context.Background(), f.userID, "profile-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ActiveTenantID != f.tenants[0] {
		t.Fatalf("expected first membership as default, got %v", res.ActiveTenantID)
	}
	if len(res.Memberships) != 2 {
		t.Fatalf("expected 2 memberships, got %d", len(res.Memberships))
	}
	if res.Memberships[0].Name != "Tenant A" {
		t.Fatalf("expected decorated metadata, got %+v", res.Memberships[0])
	}

	// The default must have been persisted for next time.
	persisted, found, err := f.prefs.GetActiveTenant(context.Background(), "profile-1")
	if err != nil || !found || persisted != f.tenants[0] {
		t.Fatalf("expected default selection persisted, got %v, %v, %v", persisted, found, err)
	}
}

func TestResolveKeepsValidSelection(t *testing.T) {
	f := newFixture(t, id.RoleAdmin, id.RoleEmployee)

	if err := f.prefs.SetActiveTenant(context.Background(), "profile-1", f.tenants[1]); err != nil {
		t.Fatalf("seeding selection: %v", err)
	}

	res, err := f.svc.Resolve(context.Background(), f.userID, "profile-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ActiveTenantID != f.tenants[1] {
		t.Fatalf("expected persisted selection kept, got %v", res.ActiveTenantID)
	}
}

func TestResolveRepairsStaleSelection(t *testing.T) {
	f := newFixture(t, id.RoleAdmin, id.RoleEmployee)

	// Selection points at a tenant the user is no longer a member of.
	if err := f.prefs.SetActiveTenant(context.Background(), "profile-1", id.NewTenantID()); err != nil {
		t.Fatalf("seeding selection: %v", err)
	}

	res, err := f.svc.Resolve(context.Background(), f.userID, "profile-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ActiveTenantID != f.tenants[0] {
		t.Fatalf("expected repair to first membership, got %v", res.ActiveTenantID)
	}

	persisted, _, _ := f.prefs.GetActiveTenant(context.Background(), "profile-1")
	if persisted != f.tenants[0] {
		t.Fatalf("expected repaired selection persisted, got %v", persisted)
	}
}

func TestSwitchTenantBumpsBarrier(t *testing.T) {
	f := newFixture(t, id.RoleAdmin, id.RoleEmployee)

	before := f.barrier.Current()

	res, err := f.svc.SwitchTenant(context.Background(), f.userID, "profile-1", f.tenants[1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ActiveTenantID != f.tenants[1] {
		t.Fatalf("expected new selection, got %v", res.ActiveTenantID)
	}
	if f.barrier.Current() != before+1 {
		t.Fatalf("expected barrier bump on switch, epoch %d -> %d", before, f.barrier.Current())
	}
}

func TestSwitchTenantRequiresMembership(t *testing.T) {
	f := newFixture(t, id.RoleAdmin)

	before := f.barrier.Current()

	_, err := f.svc.SwitchTenant(context.Background(), f.userID, "profile-1", id.NewTenantID())
	if !dErrors.HasCode(err, dErrors.CodeForbidden) {
		t.Fatalf("expected forbidden for non-member tenant, got %v", err)
	}
	if f.barrier.Current() != before {
		t.Fatalf("failed switch must not bump the barrier")
	}

	// The persisted selection must be untouched.
	if _, found, _ := f.prefs.GetActiveTenant(context.Background(), "profile-1"); found {
		t.Fatalf("failed switch must not persist a selection")
	}
}

func TestActiveTenantReportsRole(t *testing.T) {
	f := newFixture(t, id.RoleHR)

	tenantID, role, err := f.svc.ActiveTenant(context.Background(), f.userID, "profile-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tenantID != f.tenants[0] || role != id.RoleHR {
		t.Fatalf("ActiveTenant = %v, %v", tenantID, role)
	}
}

func TestThemePreferences(t *testing.T) {
	f := newFixture(t, id.RoleAdmin)

	if err := f.svc.SetTheme(context.Background(), "profile-1", "dark"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prefs, err := f.svc.Preferences(context.Background(), "profile-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.Theme != "dark" {
		t.Fatalf("expected theme persisted, got %q", prefs.Theme)
	}

	// Profiles are isolated from each other.
	other, err := f.svc.Preferences(context.Background(), "profile-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.Theme == "dark" {
		t.Fatalf("theme must not leak across profiles")
	}
}
