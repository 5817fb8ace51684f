// Package formula evaluates arithmetic expressions found in document
// templates and interactive form fields. Expressions run through govaluate,
// never through dynamically built code.
package formula

import (
	"fmt"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/goliatone/go-docgen/pkg/vars"
)

// Evaluate computes an arithmetic expression against the given parameters
// and returns the numeric result.
func Evaluate(expression string, params map[string]any) (float64, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return 0, fmt.Errorf("formula: expression is required")
	}

	expr, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return 0, fmt.Errorf("formula: parse %q: %w", expression, err)
	}

	result, err := expr.Evaluate(normalizeParams(params))
	if err != nil {
		return 0, fmt.Errorf("formula: evaluate %q: %w", expression, err)
	}

	value, ok := vars.CoerceNumber(result)
	if !ok {
		return 0, fmt.Errorf("formula: expression %q did not produce a number", expression)
	}
	return value, nil
}

// normalizeParams coerces bag values to float64 where possible so templates
// holding numbers as strings still compute. Non-numeric values pass through
// untouched for string-aware expressions.
func normalizeParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for key, value := range params {
		if n, ok := vars.CoerceNumber(value); ok {
			out[key] = n
			continue
		}
		out[key] = value
	}
	return out
}
