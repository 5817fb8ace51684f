package template

import (
	"strings"
)

// Template is a parsed document template. Parse it once and call Render for
// each variable bag; the tree is immutable after parsing.
type Template struct {
	source string
	nodes  []node
}

// Parse builds a Template from source text. The grammar is forgiving:
// anything that does not form a complete construct (an `{IF}` with no
// `{ENDIF}`, a loop with no close tag, an unbalanced brace) stays in the
// output verbatim, so arbitrary HTML passes through unchanged.
func Parse(source string) (*Template, error) {
	tokens := scan(source)
	p := &parser{tokens: tokens}
	return &Template{source: source, nodes: p.parseBody(nil)}, nil
}

// MustParse is a convenience for wiring literal templates.
func MustParse(source string) *Template {
	tpl, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return tpl
}

// Source returns the original template text.
func (t *Template) Source() string { return t.source }

type parser struct {
	tokens []tok
	pos    int
}

// parseBody consumes tokens until stop matches (nil means run to the end).
// The stopping token is left unconsumed for the caller.
func (p *parser) parseBody(stop func(tok) bool) []node {
	var nodes []node
	for p.pos < len(p.tokens) {
		current := p.tokens[p.pos]
		if stop != nil && stop(current) {
			return nodes
		}
		switch current.kind {
		case tokText:
			p.pos++
			nodes = append(nodes, literalNode{text: current.raw})
		case tokLoopClose:
			// No matching opener at this level; verbatim.
			p.pos++
			nodes = append(nodes, literalNode{text: current.raw})
		case tokLoopOpen:
			nodes = append(nodes, p.parseLoop(current))
		case tokTag:
			nodes = append(nodes, p.parseTag(current)...)
		}
	}
	return nodes
}

func (p *parser) parseLoop(open tok) node {
	if open.body == "" || !p.hasLoopClose(open.loop) {
		p.pos++
		return literalNode{text: open.raw}
	}

	p.pos++
	body := p.parseBody(func(t tok) bool {
		return t.kind == tokLoopClose && t.loop == open.loop
	})
	p.pos++ // consume the close tag; hasLoopClose guaranteed it exists
	return loopNode{kind: open.loop, name: open.body, body: body}
}

// hasLoopClose checks that a close tag for the loop kind remains ahead,
// accounting for nested loops of the same kind.
func (p *parser) hasLoopClose(kind loopKind) bool {
	depth := 0
	for i := p.pos + 1; i < len(p.tokens); i++ {
		t := p.tokens[i]
		if t.kind == tokLoopOpen && t.loop == kind {
			depth++
		}
		if t.kind == tokLoopClose && t.loop == kind {
			if depth == 0 {
				return true
			}
			depth--
		}
	}
	return false
}

func (p *parser) parseTag(current tok) []node {
	upper := strings.ToUpper(current.body)
	switch {
	case upper == "ELSE" || upper == "ENDIF":
		// Reached outside an IF block; verbatim.
		p.pos++
		return []node{literalNode{text: current.raw}}
	case upper == "IF" || strings.HasPrefix(upper, "IF "):
		return p.parseIf(current)
	}

	if parts := splitTopLevel(current.body, "&&"); len(parts) >= 2 {
		conditions := make([]condition, 0, len(parts)-1)
		for _, part := range parts[:len(parts)-1] {
			conditions = append(conditions, parseCondition(part))
		}
		payload := parsePayload(strings.TrimSpace(parts[len(parts)-1]))
		p.pos++
		return []node{guardNode{conditions: conditions, payload: payload}}
	}

	if isVariableName(current.body) {
		p.pos++
		return []node{variableNode{name: current.body, raw: current.raw}}
	}

	p.pos++
	return []node{literalNode{text: current.raw}}
}

func (p *parser) parseIf(open tok) []node {
	if !p.hasEndIf() {
		p.pos++
		return []node{literalNode{text: open.raw}}
	}

	cond := parseCondition(strings.TrimSpace(open.body[2:]))

	p.pos++
	thenBody := p.parseBody(func(t tok) bool {
		return t.kind == tokTag && isIfDelimiter(t.body)
	})

	var elseBody []node
	if p.pos < len(p.tokens) && strings.EqualFold(p.tokens[p.pos].body, "ELSE") {
		p.pos++
		elseBody = p.parseBody(func(t tok) bool {
			return t.kind == tokTag && strings.EqualFold(t.body, "ENDIF")
		})
	}
	if p.pos < len(p.tokens) && strings.EqualFold(p.tokens[p.pos].body, "ENDIF") {
		p.pos++
	}
	return []node{ifNode{cond: cond, thenBody: thenBody, elseBody: elseBody}}
}

// hasEndIf checks that a matching ENDIF remains ahead, skipping over nested
// IF blocks.
func (p *parser) hasEndIf() bool {
	depth := 0
	for i := p.pos + 1; i < len(p.tokens); i++ {
		t := p.tokens[i]
		if t.kind != tokTag {
			continue
		}
		upper := strings.ToUpper(t.body)
		if upper == "IF" || strings.HasPrefix(upper, "IF ") {
			depth++
			continue
		}
		if upper == "ENDIF" {
			if depth == 0 {
				return true
			}
			depth--
		}
	}
	return false
}

func isIfDelimiter(body string) bool {
	return strings.EqualFold(body, "ELSE") || strings.EqualFold(body, "ENDIF")
}

// parsePayload re-parses guard payload text, which may contain nested
// placeholders of its own.
func parsePayload(payload string) []node {
	p := &parser{tokens: scan(payload)}
	return p.parseBody(nil)
}

func isVariableName(body string) bool {
	if body == "" {
		return false
	}
	if body == "." {
		return true
	}
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case ch >= 'a' && ch <= 'z':
		case ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9':
		case ch == '_' || ch == '.' || ch == '@' || ch == '-':
		default:
			return false
		}
	}
	return true
}
