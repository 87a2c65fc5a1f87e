package linkml

import "strings"

// InferPrefix derives the default schema prefix from a target
// namespace URI. Known microscopy namespaces get their conventional
// short prefixes; anything else falls back to a sanitized form of the
// last path segment.
func InferPrefix(namespace string) string {
	if namespace == "" {
		return "schema"
	}

	lower := strings.ToLower(namespace)
	if strings.Contains(lower, "openmicroscopy") {
		return "ome"
	}
	if strings.Contains(lower, "bina") || strings.Contains(lower, "microscopy") {
		return "nbo"
	}

	seg := lastSegment(namespace)
	seg = sanitizePrefix(seg)
	if seg == "" {
		return "schema"
	}
	// Prefixes must be NCNames; those cannot start with a digit.
	if seg[0] >= '0' && seg[0] <= '9' {
		seg = "ns_" + seg
	}
	return seg
}

func lastSegment(namespace string) string {
	trimmed := strings.TrimRight(namespace, "/#")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

func sanitizePrefix(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == '-' || r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}
