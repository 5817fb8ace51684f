package vars

import (
	"strings"
)

// Bag holds the variables available to a document render. Values can be
// scalars, nested maps, slices, or time.Time. Callers usually build a Bag
// from domain records (see pkg/mapper) and pass it through Flatten before
// rendering.
type Bag map[string]any

// Flatten converts nested maps into dot-joined paths. Slices, times, and nil
// stay as leaf values so loop blocks and date formatting can consume them
// whole. Empty maps contribute no keys. Flatten never errors and is
// idempotent on already-flat bags.
func Flatten(bag Bag) Bag {
	out := make(Bag, len(bag))
	flattenInto(out, "", map[string]any(bag))
	return out
}

func flattenInto(out Bag, prefix string, value map[string]any) {
	for key, v := range value {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch typed := v.(type) {
		case map[string]any:
			flattenInto(out, path, typed)
		case Bag:
			flattenInto(out, path, map[string]any(typed))
		case map[string]string:
			for k, s := range typed {
				out[path+"."+k] = s
			}
		default:
			out[path] = v
		}
	}
}

// Lookup resolves a dotted path against the bag. An exact dotted key wins
// over traversal so flattened bags and nested bags behave the same.
func Lookup(bag Bag, path string) (any, bool) {
	path = strings.TrimSpace(path)
	if len(bag) == 0 || path == "" {
		return nil, false
	}

	if v, ok := bag[path]; ok {
		return v, true
	}

	parts := strings.Split(path, ".")
	var current any = map[string]any(bag)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, false
		}
		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case Bag:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]string:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}

// Merge layers the given bags left to right; later bags win on key collision.
func Merge(bags ...Bag) Bag {
	out := Bag{}
	for _, bag := range bags {
		for key, value := range bag {
			out[key] = value
		}
	}
	return out
}

// Clone returns a shallow copy.
func Clone(bag Bag) Bag {
	out := make(Bag, len(bag))
	for key, value := range bag {
		out[key] = value
	}
	return out
}
