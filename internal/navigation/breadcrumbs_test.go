package navigation

import (
	"reflect"
	"testing"
)

func TestBreadcrumbsKnownSegments(t *testing.T) {
	got := Breadcrumbs("/lookup-tables")
	want := []Crumb{{Label: "Lookup Tables", Href: "/lookup-tables"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Breadcrumbs = %+v, want %+v", got, want)
	}
}

func TestBreadcrumbsNestedPath(t *testing.T) {
	got := Breadcrumbs("/simulations/abc-123/edit")
	want := []Crumb{
		{Label: "Simulations", Href: "/simulations"},
		{Label: "abc-123", Href: "/simulations/abc-123"},
		{Label: "Edit", Href: "/simulations/abc-123/edit"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Breadcrumbs = %+v, want %+v", got, want)
	}
}

func TestBreadcrumbsUnknownSegmentFallsThrough(t *testing.T) {
	got := Breadcrumbs("/xyz")
	if len(got) != 1 || got[0].Label != "xyz" {
		t.Fatalf("expected raw segment fallback, got %+v", got)
	}
}

func TestBreadcrumbsRootIsEmpty(t *testing.T) {
	for _, path := range []string{"/", "", "//"} {
		if got := Breadcrumbs(path); len(got) != 0 {
			t.Fatalf("Breadcrumbs(%q) = %+v, want empty", path, got)
		}
	}
}

func TestBreadcrumbsIgnoresQueryAndFragment(t *testing.T) {
	got := Breadcrumbs("/reporting?range=q1#summary")
	want := []Crumb{{Label: "Reporting", Href: "/reporting"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Breadcrumbs = %+v, want %+v", got, want)
	}
}
