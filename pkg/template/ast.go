// Package template implements the placeholder grammar used by stored
// document templates: `{var}` substitution, `{cond && payload}` inline
// guards, `{IF ...}{ELSE}{ENDIF}` blocks, and `{{#table}}` / `{{#each}}`
// loops. Templates are parsed once into a node tree and evaluated in a
// single pass; a parsed Template is immutable and safe for concurrent use.
package template

// node is a parsed fragment of a template.
type node interface {
	isNode()
}

// literalNode is verbatim text, including any brace sequences that did not
// form a recognized construct.
type literalNode struct {
	text string
}

// variableNode is a `{name}` placeholder. When the bag has no non-nil value
// for the name the placeholder is emitted verbatim.
type variableNode struct {
	name string
	raw  string
}

// guardNode is an inline `{a && b && payload}` guard. The payload is kept
// only when every condition holds.
type guardNode struct {
	conditions []condition
	payload    []node
}

// ifNode is an `{IF cond}then{ELSE}else{ENDIF}` block.
type ifNode struct {
	cond     condition
	thenBody []node
	elseBody []node
}

// loopKind distinguishes the two loop constructs. Table rows expose a
// 1-based `{index}`, each items a 0-based one.
type loopKind int

const (
	loopTable loopKind = iota
	loopEach
)

// loopNode is a `{{#table name}}` or `{{#each name}}` block bound to an
// array-valued variable.
type loopNode struct {
	kind loopKind
	name string
	body []node
}

func (literalNode) isNode()  {}
func (variableNode) isNode() {}
func (guardNode) isNode()    {}
func (ifNode) isNode()       {}
func (loopNode) isNode()     {}
