package impersonation

import (
	"testing"

	id "mobiq/pkg/domain"
)

func TestStartReplacesWithoutStacking(t *testing.T) {
	m := NewManager()

	first := ImpersonatedUser{ID: id.NewUserID(), DisplayName: "First", Role: id.RoleEmployee}
	second := ImpersonatedUser{ID: id.NewUserID(), DisplayName: "Second", Role: id.RoleManager}

	m.Start("sess-1", first)
	m.Start("sess-1", second)

	got, ok := m.Current("sess-1")
	if !ok {
		t.Fatalf("expected active impersonation")
	}
	if got.ID != second.ID || got.DisplayName != "Second" {
		t.Fatalf("expected second impersonation to replace first, got %+v", got)
	}

	// One Stop ends it; there is no stack to pop back to.
	m.Stop("sess-1")
	if _, ok := m.Current("sess-1"); ok {
		t.Fatalf("expected no impersonation after stop")
	}
}

func TestStopWithoutStartIsHarmless(t *testing.T) {
	m := NewManager()
	m.Stop("sess-1")

	if _, ok := m.Current("sess-1"); ok {
		t.Fatalf("expected no impersonation")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewManager()

	m.Start("sess-1", ImpersonatedUser{ID: id.NewUserID(), Role: id.RoleEmployee})

	if _, ok := m.Current("sess-2"); ok {
		t.Fatalf("impersonation must not leak across sessions")
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	m := NewManager()
	userID := id.NewUserID()

	m.Start("sess-1", ImpersonatedUser{ID: userID, DisplayName: "Orig", Role: id.RoleEmployee})

	got, _ := m.Current("sess-1")
	got.DisplayName = "Mutated"

	again, _ := m.Current("sess-1")
	if again.DisplayName != "Orig" {
		t.Fatalf("caller mutation must not affect stored state, got %q", again.DisplayName)
	}
}
