package chrome

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	theme "github.com/goliatone/go-theme"
)

func TestCSSVarsFor(t *testing.T) {
	t.Parallel()

	selection := &theme.Selection{
		Variant: "dark",
		Manifest: &theme.Manifest{
			Tokens: map[string]string{
				"brand":      "#123456",
				"text.muted": "#6B7280",
			},
			Variants: map[string]theme.Variant{
				"dark": {
					Tokens: map[string]string{
						"brand": "#654321",
					},
				},
			},
		},
	}

	got := CSSVarsFor(selection, "dark")
	want := map[string]string{
		"--brand":      "#654321",
		"--text-muted": "#6B7280",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("CSSVarsFor mismatch (-want +got):\n%s", diff)
	}
}

func TestCSSVarsForWithoutVariant(t *testing.T) {
	t.Parallel()

	selection := &theme.Selection{
		Manifest: &theme.Manifest{
			Tokens: map[string]string{"brand": "#123456"},
		},
	}

	got := CSSVarsFor(selection, "")
	if got["--brand"] != "#123456" {
		t.Fatalf("manifest tokens not mapped: %v", got)
	}
}

func TestCSSVarsForNilSelection(t *testing.T) {
	t.Parallel()

	if got := CSSVarsFor(nil, "dark"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestCSSVarsStyle(t *testing.T) {
	t.Parallel()

	got := CSSVarsStyle(map[string]string{
		"--text":  "#111827",
		"--brand": "#123456",
	})
	want := ":root {\n--brand: #123456;\n--text: #111827;\n}"
	if got != want {
		t.Fatalf("CSSVarsStyle = %q, want %q", got, want)
	}

	if CSSVarsStyle(nil) != "" {
		t.Fatalf("empty vars should produce empty style")
	}
}

func TestWrapStandardChrome(t *testing.T) {
	t.Parallel()

	c, err := New("standard", "standard")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	out, err := c.Wrap(context.Background(), Document{
		Title:  "Facture 2024-001",
		Header: "<h1>ACME Formation</h1>",
		Body:   "<p>Corps du document</p>",
		Footer: "<span>Page 1</span>",
	})
	if err != nil {
		t.Fatalf("Wrap returned error: %v", err)
	}

	for _, fragment := range []string{
		"<title>Facture 2024-001</title>",
		"size: A4;",
		"margin: 20mm 15mm 20mm 15mm;",
		"font-size: 11pt;",
		"padding: 76px 57px 76px 57px;",
		`<div class="document-header"><h1>ACME Formation</h1></div>`,
		`<div class="document-content"><p>Corps du document</p></div>`,
		`<div class="document-footer"><span>Page 1</span></div>`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("output missing %q:\n%s", fragment, out)
		}
	}
}

func TestWrapOmitsEmptyHeaderAndFooter(t *testing.T) {
	t.Parallel()

	c, err := New("standard", "standard")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	out, err := c.Wrap(context.Background(), Document{Body: "<p>seul</p>"})
	if err != nil {
		t.Fatalf("Wrap returned error: %v", err)
	}
	if strings.Contains(out, "document-header") || strings.Contains(out, "document-footer") {
		t.Fatalf("empty header/footer should be omitted:\n%s", out)
	}
}

func TestWrapInjectsCSSVars(t *testing.T) {
	t.Parallel()

	c, err := New("premium", "premium")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	out, err := c.Wrap(context.Background(), Document{
		Body:    "<p>x</p>",
		CSSVars: map[string]string{"--brand": "#0055AA"},
	})
	if err != nil {
		t.Fatalf("Wrap returned error: %v", err)
	}
	if !strings.Contains(out, "--brand: #0055AA;") {
		t.Fatalf("css vars block missing:\n%s", out)
	}
}

func TestWrapCanceledContext(t *testing.T) {
	t.Parallel()

	c, err := New("standard", "standard")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Wrap(ctx, Document{Body: "x"}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	registry, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry returned error: %v", err)
	}

	want := []string{"premium", "standard"}
	if diff := cmp.Diff(want, registry.List()); diff != "" {
		t.Fatalf("registry contents mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("standard") {
		t.Fatalf("standard chrome missing")
	}
	if _, err := registry.Get("unknown"); err == nil {
		t.Fatalf("expected error for unknown chrome")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	c, err := New("standard", "standard")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := registry.Register(c); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := registry.Register(c); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
