package render

import (
	"regexp"
	"strings"
)

var (
	remainingTagPattern   = regexp.MustCompile(`\{[a-zA-Z_][a-zA-Z0-9_.]*\}`)
	remainingGuardPattern = regexp.MustCompile(`\{[a-zA-Z_][a-zA-Z0-9_.]*(\s*&&[^{}]*)+\}`)
)

// Cleanup removes placeholder tags that survived substitution, so unmatched
// variables never reach the final document. IF/ELSE/ENDIF keywords stay put;
// they only appear here when a conditional block was malformed, and removing
// them would silently change the visible text.
func Cleanup(doc string) string {
	doc = remainingGuardPattern.ReplaceAllString(doc, "")
	return remainingTagPattern.ReplaceAllStringFunc(doc, func(match string) string {
		name := match[1 : len(match)-1]
		switch strings.ToUpper(name) {
		case "IF", "ELSE", "ENDIF":
			return match
		}
		return ""
	})
}
