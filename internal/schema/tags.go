package schema

import "strings"

// NormalizeTags trims every tag, drops empty strings, and removes
// duplicates while preserving first-occurrence order.
func NormalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// AppendTag commits one raw tag to the list, mirroring the dashboard's
// Enter/comma commit: whitespace is trimmed, empty and duplicate tags
// leave the list unchanged.
func AppendTag(list []string, raw string) []string {
	raw = strings.TrimSpace(strings.TrimSuffix(raw, ","))
	if raw == "" {
		return list
	}
	for _, t := range list {
		if t == raw {
			return list
		}
	}
	return append(list, raw)
}

// RemoveTag drops one tag by value, preserving order of the rest.
func RemoveTag(list []string, tag string) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}
