package template

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-docgen/pkg/vars"
)

// RenderOptions tune how values reach the output.
type RenderOptions struct {
	// ValueFilter, when set, is applied to every substituted variable value
	// before it is written. The render pipeline uses it for HTML escaping
	// and raw-HTML sanitizing; the verbatim placeholder fallback for missing
	// variables is never filtered.
	ValueFilter func(name, value string) string
}

// Render evaluates the template against the bag and returns the produced
// text. Missing or nil variables stay as verbatim placeholders; guards and
// IF blocks resolve structurally; loops bound to missing, empty or
// unparsable arrays expand to nothing.
func (t *Template) Render(bag vars.Bag) string {
	return t.RenderWithOptions(bag, RenderOptions{})
}

// RenderWithOptions is Render with output filtering hooks.
func (t *Template) RenderWithOptions(bag vars.Bag, opts RenderOptions) string {
	var sb strings.Builder
	renderNodes(&sb, t.nodes, bag, opts)
	return sb.String()
}

func renderNodes(sb *strings.Builder, nodes []node, bag vars.Bag, opts RenderOptions) {
	for _, n := range nodes {
		switch typed := n.(type) {
		case literalNode:
			sb.WriteString(typed.text)
		case variableNode:
			renderVariable(sb, typed, bag, opts)
		case guardNode:
			if guardHolds(typed.conditions, bag) {
				renderNodes(sb, typed.payload, bag, opts)
			}
		case ifNode:
			if typed.cond.eval(bag) {
				renderNodes(sb, typed.thenBody, bag, opts)
			} else {
				renderNodes(sb, typed.elseBody, bag, opts)
			}
		case loopNode:
			renderLoop(sb, typed, bag, opts)
		}
	}
}

func renderVariable(sb *strings.Builder, v variableNode, bag vars.Bag, opts RenderOptions) {
	value, ok := vars.Lookup(bag, v.name)
	if !ok || value == nil {
		sb.WriteString(v.raw)
		return
	}
	text := vars.Stringify(value)
	if opts.ValueFilter != nil {
		text = opts.ValueFilter(v.name, text)
	}
	sb.WriteString(text)
}

func guardHolds(conditions []condition, bag vars.Bag) bool {
	for _, c := range conditions {
		if !c.eval(bag) {
			return false
		}
	}
	return true
}

func renderLoop(sb *strings.Builder, loop loopNode, bag vars.Bag, opts RenderOptions) {
	items := resolveItems(bag, loop.name)
	for i, item := range items {
		scope := loopScope(bag, loop.kind, i, item)
		renderNodes(sb, loop.body, scope, opts)
	}
}

// resolveItems binds a loop variable to its rows. String values are parsed
// as JSON arrays; a parse failure or a non-array value yields no rows, so a
// bad payload silently removes the block instead of erroring the document.
func resolveItems(bag vars.Bag, name string) []any {
	value, ok := vars.Lookup(bag, name)
	if !ok || value == nil {
		return nil
	}
	switch typed := value.(type) {
	case []any:
		return typed
	case []map[string]any:
		out := make([]any, len(typed))
		for i, m := range typed {
			out[i] = m
		}
		return out
	case []string:
		out := make([]any, len(typed))
		for i, s := range typed {
			out[i] = s
		}
		return out
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return nil
		}
		var parsed []any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
			return nil
		}
		return parsed
	default:
		return nil
	}
}

// loopScope builds the per-row bag. Table rows get a 1-based index exposed
// as `{index}` and `{row_number}`; each items a 0-based `{index}` and
// `{@index}`. Object rows expose their fields directly and under `item.`;
// nil fields become empty strings so cells never print placeholders.
// Primitive items are reachable as `{this}` and `{.}`.
func loopScope(bag vars.Bag, kind loopKind, i int, item any) vars.Bag {
	scope := vars.Clone(bag)

	switch kind {
	case loopTable:
		scope["index"] = strconv.Itoa(i + 1)
		scope["row_number"] = strconv.Itoa(i + 1)
	case loopEach:
		scope["index"] = strconv.Itoa(i)
		scope["@index"] = strconv.Itoa(i)
	}

	if fields, ok := item.(map[string]any); ok {
		clean := make(map[string]any, len(fields))
		for key, value := range fields {
			if value == nil {
				clean[key] = ""
			} else {
				clean[key] = value
			}
			scope[key] = clean[key]
		}
		scope["item"] = clean
		return scope
	}

	scope["this"] = item
	scope["."] = item
	return scope
}

// Variables returns the distinct variable names the template reads: plain
// placeholders, guard and IF condition identifiers, and loop bindings.
// Loop-local names (index, this, item fields) are excluded.
func (t *Template) Variables() []string {
	seen := map[string]struct{}{}
	collectVariables(t.nodes, false, seen)

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectVariables(nodes []node, inLoop bool, seen map[string]struct{}) {
	for _, n := range nodes {
		switch typed := n.(type) {
		case variableNode:
			if !inLoop && !isLoopLocal(typed.name) {
				seen[typed.name] = struct{}{}
			}
		case guardNode:
			for _, c := range typed.conditions {
				collectConditionVariables(c, seen)
			}
			collectVariables(typed.payload, inLoop, seen)
		case ifNode:
			collectConditionVariables(typed.cond, seen)
			collectVariables(typed.thenBody, inLoop, seen)
			collectVariables(typed.elseBody, inLoop, seen)
		case loopNode:
			seen[typed.name] = struct{}{}
			collectVariables(typed.body, true, seen)
		}
	}
}

func collectConditionVariables(c condition, seen map[string]struct{}) {
	for _, o := range []operand{c.left, c.right} {
		if o.kind == operandIdentifier && o.raw != "" && !isLoopLocal(o.raw) {
			seen[o.raw] = struct{}{}
		}
	}
}

func isLoopLocal(name string) bool {
	switch name {
	case "index", "row_number", "@index", "this", ".", "item":
		return true
	}
	return strings.HasPrefix(name, "item.")
}
