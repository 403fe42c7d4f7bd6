// Package shared provides common utility functions used across multiple
// packages in the schema-compat codebase.
package shared

import (
	"fmt"
	"sort"
	"strings"
)

// FirstSorted returns up to limit entries of values in sorted order,
// for bounded enumerations inside reason strings.
func FirstSorted(values []string, limit int) []string {
	ordered := append([]string(nil), values...)
	sort.Strings(ordered)
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

// AppendNote joins human-readable notes with "; ", skipping empties.
func AppendNote(notes, note string) string {
	if strings.TrimSpace(note) == "" {
		return notes
	}
	if strings.TrimSpace(notes) == "" {
		return note
	}
	return notes + "; " + note
}

// FormatCardinality renders an occurrence range as "(min..max)".
func FormatCardinality(min, max fmt.Stringer) string {
	return fmt.Sprintf("(%s..%s)", min, max)
}
