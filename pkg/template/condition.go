package template

import (
	"strings"

	"github.com/goliatone/go-docgen/pkg/vars"
)

// condition is a parsed guard or IF test: either a bare operand checked for
// truthiness, or `left op right` with one of == != >= <= > <.
type condition struct {
	op    string
	left  operand
	right operand
}

type operandKind int

const (
	operandIdentifier operandKind = iota
	operandString
	operandNumber
)

// operand is one side of a comparison. Identifiers resolve against the bag
// and fall back to their literal text when the lookup misses.
type operand struct {
	kind operandKind
	raw  string
}

// comparison operators, two-character forms first so `>=` never tokenizes
// as `>` followed by a stray `=`.
var conditionOps = []string{"==", "!=", ">=", "<=", ">", "<"}

func parseCondition(text string) condition {
	text = strings.TrimSpace(text)

	if op, at := findTopLevelOp(text); op != "" {
		return condition{
			op:    op,
			left:  parseOperand(text[:at]),
			right: parseOperand(text[at+len(op):]),
		}
	}
	return condition{left: parseOperand(text)}
}

// findTopLevelOp locates the first comparison operator outside quoted runs.
func findTopLevelOp(text string) (string, int) {
	var quote byte
	escaped := false

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if quote != 0 {
			if escaped {
				escaped = false
				continue
			}
			switch ch {
			case '\\':
				escaped = true
			case quote:
				quote = 0
			}
			continue
		}
		if ch == '"' || ch == '\'' {
			quote = ch
			continue
		}
		for _, op := range conditionOps {
			if strings.HasPrefix(text[i:], op) {
				return op, i
			}
		}
	}
	return "", -1
}

func parseOperand(text string) operand {
	text = strings.TrimSpace(text)
	if len(text) >= 2 {
		if (text[0] == '"' && text[len(text)-1] == '"') || (text[0] == '\'' && text[len(text)-1] == '\'') {
			return operand{kind: operandString, raw: text[1 : len(text)-1]}
		}
	}
	if _, ok := vars.CoerceNumber(text); ok && text != "" {
		return operand{kind: operandNumber, raw: text}
	}
	return operand{kind: operandIdentifier, raw: text}
}

// eval applies the condition against the bag. A bare operand is a truthiness
// test; a missing identifier is false. Relational operators compare as
// numbers and are false when either side is not numeric. Equality compares
// numerically when both sides parse as numbers, as strings otherwise.
func (c condition) eval(bag vars.Bag) bool {
	if c.op == "" {
		if c.left.kind == operandIdentifier {
			value, ok := vars.Lookup(bag, c.left.raw)
			return ok && vars.Truthy(value)
		}
		return vars.Truthy(c.left.resolve(bag))
	}

	left := c.left.resolve(bag)
	right := c.right.resolve(bag)

	switch c.op {
	case ">", "<", ">=", "<=":
		ln, lok := vars.CoerceNumber(left)
		rn, rok := vars.CoerceNumber(right)
		if !lok || !rok {
			return false
		}
		switch c.op {
		case ">":
			return ln > rn
		case "<":
			return ln < rn
		case ">=":
			return ln >= rn
		default:
			return ln <= rn
		}
	case "==", "!=":
		equal := looseEqual(left, right)
		if c.op == "==" {
			return equal
		}
		return !equal
	}
	return false
}

// resolve produces the operand value. Identifiers prefer the bag value and
// fall back to their own text, matching how stored templates compare against
// unquoted words.
func (o operand) resolve(bag vars.Bag) any {
	switch o.kind {
	case operandString:
		return o.raw
	case operandNumber:
		n, _ := vars.CoerceNumber(o.raw)
		return n
	default:
		if value, ok := vars.Lookup(bag, o.raw); ok {
			return value
		}
		return o.raw
	}
}

func looseEqual(left, right any) bool {
	ln, lok := vars.CoerceNumber(left)
	rn, rok := vars.CoerceNumber(right)
	if lok && rok {
		return ln == rn
	}
	return vars.CoerceString(left) == vars.CoerceString(right)
}
