package report

import "strings"

// Kind names an extended report generator, e.g. "single-page-html".
type Kind string

// ParseKinds splits a comma-separated report list. Entries are trimmed and
// blank entries dropped; order and duplicates are preserved.
func ParseKinds(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
