package guard

import (
	"testing"

	"mobiq/internal/modules"
	id "mobiq/pkg/domain"
)

func loadedSnap(rows ...modules.TenantModule) Snapshot {
	if rows == nil {
		rows = []modules.TenantModule{}
	}
	return Snapshot{Loaded: true, Rows: rows}
}

func row(key modules.Key, enabled bool) modules.TenantModule {
	return modules.TenantModule{ID: id.NewModuleRowID(), Key: key, Enabled: enabled}
}

func TestEmployeeAllowList(t *testing.T) {
	cases := []struct {
		name string
		path string
		want Action
	}{
		{"root", "/", ActionAllow},
		{"pre-travel root", "/pre-travel", ActionAllow},
		{"pre-travel child", "/pre-travel/123", ActionAllow},
		{"business travel", "/business-travel/trip/9", ActionAllow},
		{"documents", "/documents", ActionAllow},
		{"policies denied", "/policies", ActionRedirect},
		{"simulations denied", "/simulations", ActionRedirect},
		{"prefix is not a boundary", "/pre-travel-other", ActionRedirect},
		{"settings denied", "/settings", ActionRedirect},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(id.RoleEmployee, tc.path, loadedSnap())
			if got.Action != tc.want {
				t.Fatalf("Evaluate(employee, %q) = %v, want %v", tc.path, got.Action, tc.want)
			}
		})
	}
}

func TestRedirectTargetsRoot(t *testing.T) {
	d := Evaluate(id.RoleEmployee, "/policies", loadedSnap())
	if d.Action != ActionRedirect || d.To != "/" {
		t.Fatalf("expected redirect to /, got %+v", d)
	}
}

func TestDisabledModuleRedirects(t *testing.T) {
	snap := loadedSnap(row(modules.KeyTaxEngine, false))

	d := Evaluate(id.RoleAdmin, "/tax-engine", snap)
	if d.Action != ActionRedirect {
		t.Fatalf("expected redirect for disabled module, got %+v", d)
	}

	d = Evaluate(id.RoleAdmin, "/tax-engine/rates/2026", snap)
	if d.Action != ActionRedirect {
		t.Fatalf("expected redirect for nested path under disabled module, got %+v", d)
	}
}

func TestMissingRowAllows(t *testing.T) {
	snap := loadedSnap(row(modules.KeyTaxEngine, false))

	d := Evaluate(id.RoleManager, "/simulations", snap)
	if d.Action != ActionAllow {
		t.Fatalf("expected allow when module has no governance row, got %+v", d)
	}
}

func TestExplicitlyEnabledRowAllows(t *testing.T) {
	snap := loadedSnap(row(modules.KeySimulations, true))

	d := Evaluate(id.RoleHR, "/simulations/abc", snap)
	if d.Action != ActionAllow {
		t.Fatalf("expected allow for enabled module, got %+v", d)
	}
}

func TestNotLoadedAllows(t *testing.T) {
	// Rows not loaded yet must never cause a redirect flash.
	d := Evaluate(id.RoleAdmin, "/tax-engine", Snapshot{})
	if d.Action != ActionAllow {
		t.Fatalf("expected allow while rows are loading, got %+v", d)
	}
}

func TestUnmappedRouteAllows(t *testing.T) {
	snap := loadedSnap(row(modules.KeySimulations, false))

	for _, path := range []string{"/", "/settings", "/profile", "/totally-unknown"} {
		d := Evaluate(id.RoleAdmin, path, snap)
		if d.Action != ActionAllow {
			t.Fatalf("expected allow for unmapped route %q, got %+v", path, d)
		}
	}
}

func TestPathNormalization(t *testing.T) {
	snap := loadedSnap(row(modules.KeyTaxEngine, false))

	for _, path := range []string{"/tax-engine/", "/tax-engine?tab=rates", "/tax-engine#top", "tax-engine"} {
		d := Evaluate(id.RoleAdmin, path, snap)
		if d.Action != ActionRedirect {
			t.Fatalf("expected redirect for %q after normalization, got %+v", path, d)
		}
	}
}
