// Package signature injects signature zones into rendered documents.
// Templates declare zones with self-closing `<signature-field .../>` tags;
// the injector replaces each one with signed, pre-filled, or empty markup
// depending on the persisted signature records and the variable bag.
package signature

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"
)

// FieldType enumerates the supported zone kinds.
type FieldType string

const (
	TypeSignature FieldType = "signature"
	TypeInitials  FieldType = "initials"
	TypeDate      FieldType = "date"
	TypeText      FieldType = "text"
)

// Field describes one signature zone parsed from a template tag.
type Field struct {
	ID          string
	Type        FieldType
	Label       string
	Required    bool
	SignerRole  string
	SignerEmail string
	Width       int
	Height      int
	Page        int
}

const (
	defaultWidth  = 200
	defaultHeight = 80
)

// attrPattern matches key="value", key='value' and bare key=value pairs,
// with dashes allowed in attribute names.
var attrPattern = regexp.MustCompile(`(\w+(?:-\w+)*)="([^"]*?)"|(\w+(?:-\w+)*)='([^']*?)'|(\w+(?:-\w+)*)=(\S+)`)

// ParseField builds a Field from the attribute text of a signature-field
// tag. A missing id is derived from the attribute text and the zone's
// ordinal within the document, so repeated renders of the same template
// produce the same id.
func ParseField(attributes string, ordinal int) Field {
	attrs := map[string]string{}
	for _, match := range attrPattern.FindAllStringSubmatch(attributes, -1) {
		key := firstNonEmpty(match[1], match[3], match[5])
		value := firstNonEmpty(match[2], match[4], match[6])
		if key != "" && value != "" {
			attrs[key] = value
		}
	}

	field := Field{
		ID:          attrs["id"],
		Type:        TypeSignature,
		Label:       attrs["label"],
		Required:    attrs["required"] == "true",
		SignerRole:  attrs["signer-role"],
		SignerEmail: attrs["signer-email"],
		Width:       intAttr(attrs, "width", defaultWidth),
		Height:      intAttr(attrs, "height", defaultHeight),
		Page:        intAttr(attrs, "page", 1),
	}

	switch FieldType(attrs["type"]) {
	case TypeInitials, TypeDate, TypeText:
		field.Type = FieldType(attrs["type"])
	}

	if field.ID == "" {
		field.ID = deriveID(attributes, ordinal)
	}
	return field
}

// VariableKeys returns the bag keys checked for a pre-filled value, dashes
// normalized to underscores.
func (f Field) VariableKeys() []string {
	key := strings.ReplaceAll(f.ID, "-", "_")
	return []string{key, "signature_" + key}
}

func deriveID(attributes string, ordinal int) string {
	h := fnv.New32a()
	h.Write([]byte(attributes))
	return fmt.Sprintf("signature-%08x-%d", h.Sum32(), ordinal)
}

func intAttr(attrs map[string]string, key string, fallback int) int {
	raw, ok := attrs[key]
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
