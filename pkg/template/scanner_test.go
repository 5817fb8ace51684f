package template

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatchBraceNested(t *testing.T) {
	t.Parallel()

	input := "{a && {b}}"
	end, ok := matchBrace(input, 0)
	if !ok || end != len(input)-1 {
		t.Fatalf("expected match at %d, got %d (ok=%v)", len(input)-1, end, ok)
	}
}

func TestMatchBraceQuotedBracesAreOpaque(t *testing.T) {
	t.Parallel()

	input := `{a && "}" && x}`
	end, ok := matchBrace(input, 0)
	if !ok || end != len(input)-1 {
		t.Fatalf("expected quoted brace to be skipped, got %d (ok=%v)", end, ok)
	}
}

func TestMatchBraceUnterminated(t *testing.T) {
	t.Parallel()

	if _, ok := matchBrace("{never closes", 0); ok {
		t.Fatalf("expected no match")
	}
}

func TestSplitTopLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		body string
		want []string
	}{
		{"a && b && payload", []string{"a ", " b ", " payload"}},
		{`a && "x && y"`, []string{"a ", ` "x && y"`}},
		{"a && {b && c}", []string{"a ", " {b && c}"}},
		{"plain", []string{"plain"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, splitTopLevel(tc.body, "&&")); diff != "" {
			t.Fatalf("splitTopLevel(%q) mismatch (-want +got):\n%s", tc.body, diff)
		}
	}
}

func TestScanLoopTokens(t *testing.T) {
	t.Parallel()

	tokens := scan("a{{#table rows}}b{{/table}}c")
	kinds := make([]tokKind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.kind)
	}
	want := []tokKind{tokText, tokLoopOpen, tokText, tokLoopClose, tokText}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
	if tokens[1].body != "rows" || tokens[1].loop != loopTable {
		t.Fatalf("unexpected loop open token: %+v", tokens[1])
	}
}
