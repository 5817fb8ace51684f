package render

import (
	"fmt"
	"regexp"
	"strings"
)

// Dynamic hyperlink tags supported inside document bodies. Variables inside
// the tag body are resolved by the substitution stage before this pass runs.
//
//	{LINK https://example.org Texte du lien}
//	{EMAIL contact@ecole.fr}
//	{PHONE +33 1 23 45 67 89}
//	{SMS +33612345678}
var (
	linkTagPattern  = regexp.MustCompile(`\{LINK\s+(\S+)(?:\s+([^{}]+?))?\}`)
	emailTagPattern = regexp.MustCompile(`\{EMAIL\s+([^\s{}]+)\}`)
	phoneTagPattern = regexp.MustCompile(`\{PHONE\s+([^{}]+?)\}`)
	smsTagPattern   = regexp.MustCompile(`\{SMS\s+([^\s{}]+)\}`)
)

// Hyperlinks turns link tags into anchors.
func Hyperlinks(doc string) string {
	doc = linkTagPattern.ReplaceAllStringFunc(doc, func(match string) string {
		parts := linkTagPattern.FindStringSubmatch(match)
		url := parts[1]
		text := strings.TrimSpace(parts[2])
		if text == "" {
			text = url
		}
		return fmt.Sprintf(`<a href="%s">%s</a>`, url, text)
	})

	doc = emailTagPattern.ReplaceAllStringFunc(doc, func(match string) string {
		addr := emailTagPattern.FindStringSubmatch(match)[1]
		return fmt.Sprintf(`<a href="mailto:%s">%s</a>`, addr, addr)
	})

	doc = phoneTagPattern.ReplaceAllStringFunc(doc, func(match string) string {
		number := strings.TrimSpace(phoneTagPattern.FindStringSubmatch(match)[1])
		return fmt.Sprintf(`<a href="tel:%s">%s</a>`, strings.ReplaceAll(number, " ", ""), number)
	})

	return smsTagPattern.ReplaceAllStringFunc(doc, func(match string) string {
		number := smsTagPattern.FindStringSubmatch(match)[1]
		return fmt.Sprintf(`<a href="sms:%s">%s</a>`, number, number)
	})
}
