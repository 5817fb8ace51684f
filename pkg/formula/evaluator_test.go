package formula

import (
	"testing"

	"github.com/goliatone/go-docgen/pkg/vars"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	got, err := Evaluate("quantity * price * (1 - discount)", map[string]any{
		"quantity": 3,
		"price":    "100",
		"discount": 0.1,
	})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if got != 270 {
		t.Fatalf("expected 270, got %v", got)
	}
}

func TestEvaluateRejectsEmptyAndMalformed(t *testing.T) {
	t.Parallel()

	if _, err := Evaluate("", nil); err == nil {
		t.Fatalf("expected error for empty expression")
	}
	if _, err := Evaluate("1 +* 2", nil); err == nil {
		t.Fatalf("expected error for malformed expression")
	}
}

func TestResolveTagsSumAvgCount(t *testing.T) {
	t.Parallel()

	bag := vars.Bag{
		"items": []any{
			map[string]any{"total": 100},
			map[string]any{"total": "50"},
			map[string]any{"total": nil},
		},
	}

	got := ResolveTags("Total: {SUM items.total} / Moyenne: {AVG items.total} / Lignes: {COUNT items}", bag)
	want := "Total: 150 / Moyenne: 50 / Lignes: 3"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveTagsCalc(t *testing.T) {
	t.Parallel()

	got := ResolveTags("{CALC montant_ht * 1.2}", vars.Bag{"montant_ht": 100})
	if got != "120" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveTagsCalcReplacesWholeIdentifiers(t *testing.T) {
	t.Parallel()

	bag := vars.Bag{"prix": 10, "prix_total": 100}
	if got := ResolveTags("{CALC prix + prix_total}", bag); got != "110" {
		t.Fatalf("got %q", got)
	}

	// A bound name must not rewrite part of a longer unbound one.
	if got := ResolveTags("a{CALC prix + prix_unitaire}b", vars.Bag{"prix": 10}); got != "ab" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveTagsUnresolvableRemoved(t *testing.T) {
	t.Parallel()

	got := ResolveTags("x{SUM missing.total}y{CALC nope * 2}z", vars.Bag{})
	if got != "xyz" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveTagsLeavesOtherPlaceholders(t *testing.T) {
	t.Parallel()

	source := "{name} and {IF x}y{ENDIF}"
	if got := ResolveTags(source, vars.Bag{"name": "n"}); got != source {
		t.Fatalf("got %q", got)
	}
}
