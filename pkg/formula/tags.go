package formula

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-docgen/pkg/vars"
)

// Calculated-variable tags understood inside document bodies:
//
//	{SUM items.total}    sum of a field across an array variable
//	{AVG items.total}    arithmetic mean of a field
//	{COUNT items}        number of rows in an array variable
//	{CALC expr}          arbitrary arithmetic over bag variables
//
// Tags that cannot be resolved are removed from the output.
var (
	sumTagPattern   = regexp.MustCompile(`\{SUM\s+([\w.]+)\}`)
	avgTagPattern   = regexp.MustCompile(`\{AVG\s+([\w.]+)\}`)
	countTagPattern = regexp.MustCompile(`\{COUNT\s+([\w.]+)\}`)
	calcTagPattern  = regexp.MustCompile(`\{CALC\s+([^{}]+)\}`)
	identPattern    = regexp.MustCompile(`[A-Za-z_][\w.]*`)
)

// ResolveTags replaces every calculated-variable tag in the document with
// its computed value.
func ResolveTags(doc string, bag vars.Bag) string {
	doc = sumTagPattern.ReplaceAllStringFunc(doc, func(match string) string {
		path := sumTagPattern.FindStringSubmatch(match)[1]
		values, ok := fieldValues(bag, path)
		if !ok {
			return ""
		}
		return formatNumber(sum(values))
	})

	doc = avgTagPattern.ReplaceAllStringFunc(doc, func(match string) string {
		path := avgTagPattern.FindStringSubmatch(match)[1]
		values, ok := fieldValues(bag, path)
		if !ok || len(values) == 0 {
			return ""
		}
		return formatNumber(sum(values) / float64(len(values)))
	})

	doc = countTagPattern.ReplaceAllStringFunc(doc, func(match string) string {
		name := countTagPattern.FindStringSubmatch(match)[1]
		items, ok := arrayValue(bag, name)
		if !ok {
			return ""
		}
		return strconv.Itoa(len(items))
	})

	doc = calcTagPattern.ReplaceAllStringFunc(doc, func(match string) string {
		expression := strings.TrimSpace(calcTagPattern.FindStringSubmatch(match)[1])
		result, err := Evaluate(inlineBagValues(expression, bag), nil)
		if err != nil {
			return ""
		}
		return formatNumber(result)
	})

	return doc
}

// inlineBagValues substitutes numeric bag variables into the expression
// text before evaluation. Each identifier is replaced as a whole token, so
// a bound name never rewrites part of a longer one.
func inlineBagValues(expression string, bag vars.Bag) string {
	return identPattern.ReplaceAllStringFunc(expression, func(name string) string {
		value, ok := vars.Lookup(bag, name)
		if !ok {
			return name
		}
		n, ok := vars.CoerceNumber(value)
		if !ok {
			return name
		}
		return formatNumber(n)
	})
}

// fieldValues collects the numeric values of `list.field` across an array
// variable. Non-numeric and missing fields count as zero.
func fieldValues(bag vars.Bag, path string) ([]float64, bool) {
	dot := strings.LastIndex(path, ".")
	if dot <= 0 || dot == len(path)-1 {
		return nil, false
	}
	name, field := path[:dot], path[dot+1:]

	items, ok := arrayValue(bag, name)
	if !ok {
		return nil, false
	}

	out := make([]float64, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			out = append(out, 0)
			continue
		}
		n, _ := vars.CoerceNumber(fields[field])
		out = append(out, n)
	}
	return out, true
}

func arrayValue(bag vars.Bag, name string) ([]any, bool) {
	value, ok := vars.Lookup(bag, name)
	if !ok || value == nil {
		return nil, false
	}
	switch typed := value.(type) {
	case []any:
		return typed, true
	case []map[string]any:
		out := make([]any, len(typed))
		for i, m := range typed {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
