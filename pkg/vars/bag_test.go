package vars

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFlattenNestedMaps(t *testing.T) {
	t.Parallel()

	got := Flatten(Bag{
		"student": map[string]any{
			"name": "Alice",
			"address": map[string]any{
				"city": "Lyon",
			},
		},
		"amount": 100,
	})

	want := Bag{
		"student.name":         "Alice",
		"student.address.city": "Lyon",
		"amount":               100,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenKeepsLeaves(t *testing.T) {
	t.Parallel()

	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []any{map[string]any{"name": "A"}}

	got := Flatten(Bag{
		"signed_at": when,
		"rows":      rows,
		"missing":   nil,
	})

	if !got["signed_at"].(time.Time).Equal(when) {
		t.Fatalf("expected time leaf, got %v", got["signed_at"])
	}
	if diff := cmp.Diff(rows, got["rows"]); diff != "" {
		t.Fatalf("slice leaf mismatch (-want +got):\n%s", diff)
	}
	if v, ok := got["missing"]; !ok || v != nil {
		t.Fatalf("expected nil leaf to survive, got %v (present=%v)", v, ok)
	}
}

func TestFlattenIdentityOnFlatBag(t *testing.T) {
	t.Parallel()

	flat := Bag{"a": 1, "b.c": "x", "d": nil}
	if diff := cmp.Diff(flat, Flatten(flat)); diff != "" {
		t.Fatalf("expected identity (-want +got):\n%s", diff)
	}
}

func TestFlattenEmptyMapProducesNoKeys(t *testing.T) {
	t.Parallel()

	got := Flatten(Bag{"empty": map[string]any{}})
	if len(got) != 0 {
		t.Fatalf("expected empty bag, got %v", got)
	}
}

func TestLookupPrefersExactDottedKey(t *testing.T) {
	t.Parallel()

	bag := Bag{
		"cta.headline": "flat wins",
		"cta":          map[string]any{"headline": "nested"},
	}
	v, ok := Lookup(bag, "cta.headline")
	if !ok || v != "flat wins" {
		t.Fatalf("expected exact key match, got %v (ok=%v)", v, ok)
	}
}

func TestLookupTraversesNested(t *testing.T) {
	t.Parallel()

	bag := Bag{"school": map[string]any{"name": "Acme"}}
	v, ok := Lookup(bag, "school.name")
	if !ok || v != "Acme" {
		t.Fatalf("expected traversal, got %v (ok=%v)", v, ok)
	}

	if _, ok := Lookup(bag, "school.phone"); ok {
		t.Fatalf("expected miss for absent leaf")
	}
}

func TestMergeLaterBagsWin(t *testing.T) {
	t.Parallel()

	got := Merge(Bag{"a": 1, "b": 1}, Bag{"b": 2})
	want := Bag{"a": 1, "b": 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Merge mismatch (-want +got):\n%s", diff)
	}
}
