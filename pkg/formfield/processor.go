// Package formfield makes form controls inside generated documents
// functional: default values, placeholders and labels pick up bag
// variables, and documents with interactive fields get the calculation
// and validation runtime appended.
package formfield

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/goliatone/go-docgen/pkg/vars"
)

//go:embed assets/calculation.js
var calculationScript string

//go:embed assets/validation.js
var validationScript string

var (
	valuePattern       = regexp.MustCompile(`value="\{([^}]+)\}"`)
	placeholderPattern = regexp.MustCompile(`placeholder="\{([^}]+)\}"`)
	labelPattern       = regexp.MustCompile(`>\{([^}]+)\}</label>`)
)

const (
	calculationMarker = "data-calculation-formula"
	interactiveMarker = "form-field-interactive"
)

// Process rewrites form field attributes from the bag and appends the
// client runtime when the document uses calculated or interactive fields.
// Missing variables become empty values and placeholders; a label with no
// matching variable keeps the variable name as its text.
func Process(html string, bag vars.Bag) string {
	out := valuePattern.ReplaceAllStringFunc(html, func(match string) string {
		name := valuePattern.FindStringSubmatch(match)[1]
		return `value="` + bagText(bag, name, "") + `"`
	})

	out = placeholderPattern.ReplaceAllStringFunc(out, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		return `placeholder="` + bagText(bag, name, "") + `"`
	})

	out = labelPattern.ReplaceAllStringFunc(out, func(match string) string {
		name := labelPattern.FindStringSubmatch(match)[1]
		return ">" + bagText(bag, name, strings.TrimSpace(name)) + "</label>"
	})

	if strings.Contains(out, calculationMarker) {
		out += "\n<script>\n" + calculationScript + "</script>\n"
	}
	if strings.Contains(out, interactiveMarker) {
		out += "\n<script>\n" + validationScript + "</script>\n"
	}
	return out
}

func bagText(bag vars.Bag, name, fallback string) string {
	value, ok := vars.Lookup(bag, strings.TrimSpace(name))
	if !ok || value == nil {
		return fallback
	}
	text := vars.Stringify(value)
	if text == "" {
		return fallback
	}
	return text
}
