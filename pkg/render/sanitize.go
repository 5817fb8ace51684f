package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy
)

// ValueSanitizer filters substituted variable values. Plain variables are
// HTML-escaped; keys registered as raw-HTML carriers (server-built table
// rows, module listings) keep their markup but go through a sanitizer
// policy.
type ValueSanitizer struct {
	rawHTMLKeys map[string]struct{}
}

// DefaultRawHTMLKeys are the variables templates historically fill with
// pre-built markup.
var DefaultRawHTMLKeys = []string{"modules_lignes", "students_table_rows"}

// NewValueSanitizer builds a sanitizer allowing raw HTML for the given keys.
func NewValueSanitizer(rawKeys ...string) *ValueSanitizer {
	keys := make(map[string]struct{}, len(rawKeys))
	for _, key := range rawKeys {
		key = strings.TrimSpace(key)
		if key != "" {
			keys[key] = struct{}{}
		}
	}
	return &ValueSanitizer{rawHTMLKeys: keys}
}

// Filter implements the template engine's value filter hook.
func (s *ValueSanitizer) Filter(name, value string) string {
	if _, ok := s.rawHTMLKeys[name]; ok {
		return sanitizeFragment(value)
	}
	return html.EscapeString(value)
}

func sanitizeFragment(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return fragmentSanitizer().Sanitize(raw)
}

func fragmentSanitizer() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements("table", "thead", "tbody", "tfoot", "tr", "td", "th", "colgroup", "col")
		policy.AllowAttrs("style", "class", "colspan", "rowspan").OnElements(
			"table", "thead", "tbody", "tfoot", "tr", "td", "th", "div", "span", "p",
		)
		fragmentPolicy = policy
	})
	return fragmentPolicy
}
