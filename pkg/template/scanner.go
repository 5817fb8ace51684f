package template

import "strings"

type tokKind int

const (
	tokText tokKind = iota
	tokTag
	tokLoopOpen
	tokLoopClose
)

// tok is a raw scanned segment. Tags keep their full source text so the
// parser can fall back to verbatim output whenever a construct turns out to
// be malformed.
type tok struct {
	kind tokKind
	raw  string
	body string
	loop loopKind
}

const (
	tableOpen  = "{{#table"
	eachOpen   = "{{#each"
	tableClose = "{{/table}}"
	eachClose  = "{{/each}}"
)

// scan splits template text into literal runs, loop delimiters and
// single-brace tags. Tag bodies are found by brace-depth matching that
// ignores braces inside quoted runs, so guard payloads may contain quotes
// and nested placeholders. A `{` that never closes is literal text.
func scan(input string) []tok {
	var (
		out  []tok
		text strings.Builder
	)

	flush := func() {
		if text.Len() > 0 {
			out = append(out, tok{kind: tokText, raw: text.String()})
			text.Reset()
		}
	}

	i := 0
	for i < len(input) {
		ch := input[i]
		if ch != '{' {
			text.WriteByte(ch)
			i++
			continue
		}

		rest := input[i:]
		if name, raw, ok := scanLoopOpen(rest, tableOpen); ok {
			flush()
			out = append(out, tok{kind: tokLoopOpen, raw: raw, body: name, loop: loopTable})
			i += len(raw)
			continue
		}
		if name, raw, ok := scanLoopOpen(rest, eachOpen); ok {
			flush()
			out = append(out, tok{kind: tokLoopOpen, raw: raw, body: name, loop: loopEach})
			i += len(raw)
			continue
		}
		if strings.HasPrefix(rest, tableClose) {
			flush()
			out = append(out, tok{kind: tokLoopClose, raw: tableClose, loop: loopTable})
			i += len(tableClose)
			continue
		}
		if strings.HasPrefix(rest, eachClose) {
			flush()
			out = append(out, tok{kind: tokLoopClose, raw: eachClose, loop: loopEach})
			i += len(eachClose)
			continue
		}

		end, ok := matchBrace(input, i)
		if !ok {
			text.WriteByte(ch)
			i++
			continue
		}

		flush()
		out = append(out, tok{
			kind: tokTag,
			raw:  input[i : end+1],
			body: strings.TrimSpace(input[i+1 : end]),
		})
		i = end + 1
	}

	flush()
	return out
}

// scanLoopOpen matches `{{#table name}}` style openers. The name runs to the
// closing `}}` on the same construct; a missing close means no match.
func scanLoopOpen(input, marker string) (name, raw string, ok bool) {
	if !strings.HasPrefix(input, marker) {
		return "", "", false
	}
	rest := input[len(marker):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t' && !strings.HasPrefix(rest, "}}")) {
		return "", "", false
	}
	end := strings.Index(rest, "}}")
	if end < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(rest[:end])
	raw = input[:len(marker)+end+2]
	return name, raw, true
}

// matchBrace returns the index of the `}` closing the `{` at start. Depth
// increases on nested `{`; quoted runs (single or double, with backslash
// escapes) are opaque.
func matchBrace(input string, start int) (int, bool) {
	depth := 0
	var quote byte
	escaped := false

	for i := start; i < len(input); i++ {
		ch := input[i]
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
		switch ch {
		case '"', '\'':
			quote = ch
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// splitTopLevel splits body on the separator, ignoring occurrences inside
// quotes or nested braces.
func splitTopLevel(body, sep string) []string {
	var (
		parts   []string
		depth   int
		quote   byte
		escaped bool
		start   int
	)

	for i := 0; i < len(body); i++ {
		ch := body[i]
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
		switch ch {
		case '"', '\'':
			quote = ch
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && strings.HasPrefix(body[i:], sep) {
				parts = append(parts, body[start:i])
				i += len(sep) - 1
				start = i + 1
			}
		}
	}
	parts = append(parts, body[start:])
	return parts
}
