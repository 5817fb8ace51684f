package template

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docgen/pkg/vars"
)

func render(t *testing.T, source string, bag vars.Bag) string {
	t.Helper()
	tpl, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return tpl.Render(bag)
}

func TestRenderSubstitution(t *testing.T) {
	t.Parallel()

	got := render(t, "Hello {name}, you owe {amount}", vars.Bag{
		"name":   "Alice",
		"amount": 100,
	})
	if got != "Hello Alice, you owe 100" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderMissingVariableStaysVerbatim(t *testing.T) {
	t.Parallel()

	got := render(t, "Hello {name}", vars.Bag{})
	if got != "Hello {name}" {
		t.Fatalf("unexpected output: %q", got)
	}

	got = render(t, "Hello {name}", vars.Bag{"name": nil})
	if got != "Hello {name}" {
		t.Fatalf("expected nil value to keep the placeholder, got %q", got)
	}
}

func TestRenderDottedPath(t *testing.T) {
	t.Parallel()

	got := render(t, "{student.name} from {school.city}", vars.Bag{
		"student.name": "Alice",
		"school":       map[string]any{"city": "Lyon"},
	})
	if got != "Alice from Lyon" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderInlineGuard(t *testing.T) {
	t.Parallel()

	bag := vars.Bag{"premium": true, "discount": "10%"}
	got := render(t, "Price {premium && discount && (remise {discount})}", bag)
	if got != "Price (remise 10%)" {
		t.Fatalf("unexpected output: %q", got)
	}

	got = render(t, "Price{premium && missing && (remise {discount})}", bag)
	if got != "Price" {
		t.Fatalf("expected dropped payload, got %q", got)
	}
}

func TestRenderGuardFalsyValues(t *testing.T) {
	t.Parallel()

	for _, v := range []any{nil, "", "0", 0, false} {
		got := render(t, "{flag && shown}", vars.Bag{"flag": v})
		if got != "" {
			t.Fatalf("expected %#v to drop the payload, got %q", v, got)
		}
	}
}

func TestRenderGuardPayloadWithQuotesAndBraces(t *testing.T) {
	t.Parallel()

	got := render(t, `{show && <span class="note">{msg}</span>}`, vars.Bag{
		"show": true,
		"msg":  "hello",
	})
	if got != `<span class="note">hello</span>` {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderIfElse(t *testing.T) {
	t.Parallel()

	source := "{IF age >= 18}adult{ELSE}minor{ENDIF}"
	if got := render(t, source, vars.Bag{"age": 20}); got != "adult" {
		t.Fatalf("age 20: got %q", got)
	}
	if got := render(t, source, vars.Bag{"age": 10}); got != "minor" {
		t.Fatalf("age 10: got %q", got)
	}
	if got := render(t, source, vars.Bag{"age": 18}); got != "adult" {
		t.Fatalf("age 18: got %q", got)
	}
}

func TestRenderIfTruthiness(t *testing.T) {
	t.Parallel()

	source := "{IF paid}merci{ENDIF}"
	if got := render(t, source, vars.Bag{"paid": true}); got != "merci" {
		t.Fatalf("unexpected output: %q", got)
	}
	if got := render(t, source, vars.Bag{}); got != "" {
		t.Fatalf("expected empty output for missing condition variable, got %q", got)
	}
}

func TestRenderIfStringComparison(t *testing.T) {
	t.Parallel()

	source := `{IF status == "active"}ok{ELSE}ko{ENDIF}`
	if got := render(t, source, vars.Bag{"status": "active"}); got != "ok" {
		t.Fatalf("unexpected output: %q", got)
	}
	if got := render(t, source, vars.Bag{"status": "closed"}); got != "ko" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderIfCaseInsensitiveKeywords(t *testing.T) {
	t.Parallel()

	got := render(t, "{if ok}yes{else}no{endif}", vars.Bag{"ok": 1})
	if got != "yes" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderNestedIf(t *testing.T) {
	t.Parallel()

	source := "{IF a}{IF b}both{ELSE}only-a{ENDIF}{ELSE}none{ENDIF}"
	if got := render(t, source, vars.Bag{"a": 1, "b": 1}); got != "both" {
		t.Fatalf("unexpected output: %q", got)
	}
	if got := render(t, source, vars.Bag{"a": 1}); got != "only-a" {
		t.Fatalf("unexpected output: %q", got)
	}
	if got := render(t, source, vars.Bag{}); got != "none" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderTableLoop(t *testing.T) {
	t.Parallel()

	got := render(t, "{{#table rows}}{name}: {qty}\n{{/table}}", vars.Bag{
		"rows": []any{
			map[string]any{"name": "A", "qty": 1},
			map[string]any{"name": "B", "qty": 2},
		},
	})
	if got != "A: 1\nB: 2\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderTableIndexIsOneBased(t *testing.T) {
	t.Parallel()

	got := render(t, "{{#table rows}}{index}-{row_number};{{/table}}", vars.Bag{
		"rows": []any{map[string]any{}, map[string]any{}},
	})
	if got != "1-1;2-2;" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderEachIndexIsZeroBased(t *testing.T) {
	t.Parallel()

	got := render(t, "{{#each items}}{index}:{@index}:{this};{{/each}}", vars.Bag{
		"items": []any{"a", "b"},
	})
	if got != "0:0:a;1:1:b;" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderEachPrimitives(t *testing.T) {
	t.Parallel()

	got := render(t, "{{#each names}}<li>{.}</li>{{/each}}", vars.Bag{
		"names": []any{"x", "y"},
	})
	if got != "<li>x</li><li>y</li>" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderLoopFromJSONString(t *testing.T) {
	t.Parallel()

	got := render(t, "{{#table items}}{label} {total};{{/table}}", vars.Bag{
		"items": `[{"label":"Formation","total":1200},{"label":"Frais","total":50}]`,
	})
	if got != "Formation 1200;Frais 50;" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderLoopMalformedJSONExpandsEmpty(t *testing.T) {
	t.Parallel()

	for _, value := range []any{nil, "", "not json", "{}", []any{}} {
		got := render(t, "before{{#table items}}{label}{{/table}}after", vars.Bag{"items": value})
		if got != "beforeafter" {
			t.Fatalf("value %#v: expected empty expansion, got %q", value, got)
		}
	}
}

func TestRenderLoopNilFieldBecomesEmpty(t *testing.T) {
	t.Parallel()

	got := render(t, "{{#table rows}}[{name}]{{/table}}", vars.Bag{
		"rows": []any{map[string]any{"name": nil}},
	})
	if got != "[]" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderLoopItemPrefix(t *testing.T) {
	t.Parallel()

	got := render(t, "{{#table rows}}{item.name};{{/table}}", vars.Bag{
		"rows": []any{map[string]any{"name": "A"}},
	})
	if got != "A;" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderLoopSeesOuterVariables(t *testing.T) {
	t.Parallel()

	got := render(t, "{{#each items}}{this}@{school};{{/each}}", vars.Bag{
		"items":  []any{"a"},
		"school": "Acme",
	})
	if got != "a@Acme;" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderIdentityOnPlainHTML(t *testing.T) {
	t.Parallel()

	source := `<div class="page" style="width: 100%">plain { text &amp; more</div>`
	if got := render(t, source, vars.Bag{}); got != source {
		t.Fatalf("expected identity, got %q", got)
	}
}

func TestRenderUnclosedConstructsStayVerbatim(t *testing.T) {
	t.Parallel()

	cases := []string{
		"{IF a}no endif",
		"{{#table rows}}no close",
		"{ELSE}",
		"{ENDIF}",
		"{{/table}}",
	}
	for _, source := range cases {
		if got := render(t, source, vars.Bag{"a": 1, "rows": []any{}}); got != source {
			t.Fatalf("source %q: expected verbatim, got %q", source, got)
		}
	}
}

func TestRenderValueFilter(t *testing.T) {
	t.Parallel()

	tpl, err := Parse("{name} and {name}")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	got := tpl.RenderWithOptions(vars.Bag{"name": "<b>"}, RenderOptions{
		ValueFilter: func(_, value string) string {
			return strings.ReplaceAll(value, "<", "&lt;")
		},
	})
	if got != "&lt;b> and &lt;b>" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestVariables(t *testing.T) {
	t.Parallel()

	tpl, err := Parse("{name}{IF age >= 18}x{ENDIF}{flag && {bonus}}{{#table rows}}{qty}{{/table}}")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := []string{"age", "bonus", "flag", "name", "rows"}
	if diff := cmp.Diff(want, tpl.Variables()); diff != "" {
		t.Fatalf("Variables mismatch (-want +got):\n%s", diff)
	}
}
