package preferences

import (
	"context"
	"testing"

	id "mobiq/pkg/domain"
)

func TestActiveTenantRoundTrip(t *testing.T) {
	s := NewInMemory()
	tenantID := id.NewTenantID()

	if _, found, err := s.GetActiveTenant(context.Background(), "p1"); err != nil || found {
		t.Fatalf("expected no selection initially, got found=%v err=%v", found, err)
	}

	if err := s.SetActiveTenant(context.Background(), "p1", tenantID); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, found, err := s.GetActiveTenant(context.Background(), "p1")
	if err != nil || !found || got != tenantID {
		t.Fatalf("get = %v, %v, %v", got, found, err)
	}

	// Other profiles see nothing.
	if _, found, _ := s.GetActiveTenant(context.Background(), "p2"); found {
		t.Fatalf("selection must not leak across profiles")
	}
}

func TestThemeRoundTrip(t *testing.T) {
	s := NewInMemory()

	theme, err := s.GetTheme(context.Background(), "p1")
	if err != nil || theme != "" {
		t.Fatalf("expected empty theme initially, got %q, %v", theme, err)
	}

	if err := s.SetTheme(context.Background(), "p1", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	theme, err = s.GetTheme(context.Background(), "p1")
	if err != nil || theme != "dark" {
		t.Fatalf("get = %q, %v", theme, err)
	}
}
