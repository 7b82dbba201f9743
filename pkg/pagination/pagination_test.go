package pagination

import "testing"

func TestNormalizeClampsBounds(t *testing.T) {
	p := Params{Page: 0, PerPage: 0}.Normalize()
	if p.Page != 1 || p.PerPage != DefaultPerPage {
		t.Fatalf("unexpected defaults: %+v", p)
	}

	p = Params{Page: 3, PerPage: 10_000}.Normalize()
	if p.PerPage != MaxPerPage {
		t.Fatalf("expected per_page capped at %d, got %d", MaxPerPage, p.PerPage)
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 1, PerPage: 50}).Offset(); got != 0 {
		t.Fatalf("expected offset 0 for first page, got %d", got)
	}
	if got := (Params{Page: 3, PerPage: 20}).Offset(); got != 40 {
		t.Fatalf("expected offset 40, got %d", got)
	}
}

func TestTotalPages(t *testing.T) {
	if got := TotalPages(0, 50); got != 0 {
		t.Fatalf("expected 0 pages for empty set, got %d", got)
	}
	if got := TotalPages(101, 50); got != 3 {
		t.Fatalf("expected 3 pages, got %d", got)
	}
}
