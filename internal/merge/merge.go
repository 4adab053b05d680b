package merge

import (
	"sort"

	"docindex/internal/document"
)

// memberGroupKeys are the sequence-valued fields whose elements are
// matched and merged by their "name" key instead of replaced wholesale.
var memberGroupKeys = map[string]struct{}{
	"properties": {},
	"methods":    {},
	"events":     {},
	"callbacks":  {},
	"members":    {},
	"fields":     {},
	"items":      {},
	"parameters": {},
}

// IsMemberGroupKey reports whether key names a member-group sequence.
func IsMemberGroupKey(key string) bool {
	_, ok := memberGroupKeys[key]
	return ok
}

// Merge deep-merges child over base and returns the combined value.
// It is total over any two values: when either operand is not a map the
// result is simply a deep copy of child (a child scalar demoting a base
// map is allowed, not an error). Neither input is mutated.
func Merge(base, child any) any {
	baseMap, baseOK := base.(map[string]any)
	childMap, childOK := child.(map[string]any)

	if !baseOK || !childOK {
		return Copy(child)
	}

	return mergeMaps(baseMap, childMap)
}

func mergeMaps(base, child map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(child))

	// Base-only keys are retained; the resolver's own-only pass strips
	// the ones that must not inherit.
	for key, val := range base {
		result[key] = Copy(val)
	}

	for key, childVal := range child {
		baseVal, ok := result[key]
		if !ok {
			result[key] = Copy(childVal)
			continue
		}

		switch bv := baseVal.(type) {
		case map[string]any:
			if cv, ok := childVal.(map[string]any); ok {
				result[key] = mergeMaps(bv, cv)
				continue
			}

		case []any:
			if cv, ok := childVal.([]any); ok {
				if IsMemberGroupKey(key) {
					result[key] = mergeMemberList(bv, cv)
				} else {
					// Tags and every other sequence field: child
					// replaces base, no concatenation.
					result[key] = Copy(childVal)
				}

				continue
			}
		}

		// Scalar vs scalar or mismatched types: child wins.
		result[key] = Copy(childVal)
	}

	return result
}

// mergeMemberList unions two member sequences by each element's "name".
// Unnamed entries are kept positionally (base first, then child); named
// entries are seeded from base, deep-merged on collision, and appended
// after the unnamed ones sorted by name for determinism.
func mergeMemberList(base, child []any) []any {
	merged := make([]any, 0, len(base)+len(child))
	named := make(map[string]any)

	for _, item := range base {
		if name, ok := memberName(item); ok {
			named[name] = Copy(item)
		} else {
			merged = append(merged, Copy(item))
		}
	}

	for _, item := range child {
		name, ok := memberName(item)
		if !ok {
			merged = append(merged, Copy(item))
			continue
		}

		if existing, seen := named[name]; seen {
			named[name] = Merge(existing, item)
		} else {
			named[name] = Copy(item)
		}
	}

	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		merged = append(merged, named[name])
	}

	return merged
}

// memberName extracts the "name" key of a map-shaped member entry.
func memberName(item any) (string, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return "", false
	}

	name, ok := m[document.KeyName].(string)
	if !ok {
		return "", false
	}

	return name, true
}

// Copy returns a deep copy of a generic YAML value. Scalars are returned
// as-is (they are immutable); maps and sequences are copied recursively.
func Copy(val any) any {
	switch v := val.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = Copy(item)
		}

		return out

	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Copy(item)
		}

		return out

	case []string:
		// Synthesized fields (the ancestor chain) are typed slices.
		out := make([]string, len(v))
		copy(out, v)

		return out

	default:
		return val
	}
}

// CopyMap is Copy specialized to a map body, preserving the static type.
func CopyMap(body map[string]any) map[string]any {
	if body == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(body))
	for key, val := range body {
		out[key] = Copy(val)
	}

	return out
}
