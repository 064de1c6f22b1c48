/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package attributes

import "sort"

// Map is a string-keyed set of field values used to populate an entity.
type Map map[string]any

// Merge returns a new map holding every key of base and overlay.
// For keys present in both, the overlay value wins. Neither input is mutated
// and nil inputs are treated as empty.
func Merge(base, overlay Map) Map {
	out := make(Map, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// MergedWith is the method form of Merge(m, overlay).
func (m Map) MergedWith(overlay Map) Map {
	return Merge(m, overlay)
}

// Clone returns a shallow copy of m. A nil map clones to an empty one.
func Clone(m Map) Map {
	return Merge(m, nil)
}

// Keys returns the keys of m in sorted order.
func Keys(m Map) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Without returns a copy of m with the given keys removed.
func (m Map) Without(keys ...string) Map {
	out := Clone(m)
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// String returns the value under key if it is a non-empty string.
func (m Map) String(key string) (string, bool) {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
