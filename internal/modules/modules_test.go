package modules

import (
	"testing"

	id "mobiq/pkg/domain"
)

func TestResolveRouteExactMatch(t *testing.T) {
	key, ok := ResolveRoute("/simulations")
	if !ok || key != KeySimulations {
		t.Fatalf("ResolveRoute(/simulations) = %v, %v", key, ok)
	}

	key, ok = ResolveRoute("/tax-engine")
	if !ok || key != KeyTaxEngine {
		t.Fatalf("ResolveRoute(/tax-engine) = %v, %v", key, ok)
	}
}

func TestResolveRouteSegmentPrefix(t *testing.T) {
	key, ok := ResolveRoute("/simulations/abc/edit")
	if !ok || key != KeySimulations {
		t.Fatalf("expected nested path to resolve to simulations, got %v, %v", key, ok)
	}

	// A hyphenated sibling is not a child of the shorter route.
	if _, ok := ResolveRoute("/simulations-archive"); ok {
		t.Fatalf("expected /simulations-archive not to resolve")
	}
}

func TestResolveRouteMisses(t *testing.T) {
	for _, path := range []string{"/", "/settings", "/profile/me", "/unknown"} {
		if key, ok := ResolveRoute(path); ok {
			t.Fatalf("expected %q not to resolve, got %v", path, key)
		}
	}
}

func TestKnownAndLabel(t *testing.T) {
	if !Known(KeyLookupTables) {
		t.Fatalf("expected lookup_tables to be a known key")
	}
	if Known(Key("bogus")) {
		t.Fatalf("expected bogus key to be unknown")
	}

	if got := Label(KeyLookupTables); got != "Lookup Tables" {
		t.Fatalf("Label(lookup_tables) = %q", got)
	}
	// Unknown keys surface raw rather than invisibly.
	if got := Label(Key("custom_thing")); got != "custom_thing" {
		t.Fatalf("Label(custom_thing) = %q", got)
	}
}

func TestIsEnabledFailOpen(t *testing.T) {
	// Nil rows means the governance table never loaded: everything is on.
	if !IsEnabled(nil, KeySimulations) {
		t.Fatalf("expected nil rows to enable all modules")
	}

	// A loaded but empty table also enables everything.
	if !IsEnabled([]TenantModule{}, KeySimulations) {
		t.Fatalf("expected empty rows to enable all modules")
	}

	rows := []TenantModule{
		{ID: id.NewModuleRowID(), Key: KeyTaxEngine, Enabled: false},
		{ID: id.NewModuleRowID(), Key: KeyPayroll, Enabled: true},
	}

	if IsEnabled(rows, KeyTaxEngine) {
		t.Fatalf("expected explicit disable to win")
	}
	if !IsEnabled(rows, KeyPayroll) {
		t.Fatalf("expected explicit enable to win")
	}
	// No row for the key: enabled by default.
	if !IsEnabled(rows, KeySimulations) {
		t.Fatalf("expected absent row to default to enabled")
	}
}
