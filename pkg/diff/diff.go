// Package diff compares two revisions of a generated text document line by line.
package diff

import (
	"bytes"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const maxUnifiedLines = 2000

// Change summarises how a document moved between two revisions.
type Change struct {
	Added   int
	Removed int
	// Unified lists the changed lines prefixed with "+" or "-". It is
	// truncated after a fixed number of lines.
	Unified string
}

// Changed reports whether any line differs.
func (c Change) Changed() bool {
	return c.Added > 0 || c.Removed > 0
}

// Lines compares previous and current one line at a time.
func Lines(previous, current []byte) Change {
	if bytes.Equal(previous, current) {
		return Change{}
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(previous), string(current))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var change Change
	var buf strings.Builder
	written := 0
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		default:
			continue
		}

		for _, line := range splitLines(d.Text) {
			if prefix == "+" {
				change.Added++
			} else {
				change.Removed++
			}
			if written == maxUnifiedLines {
				buf.WriteString("... (truncated)\n")
			}
			if written < maxUnifiedLines {
				buf.WriteString(prefix)
				buf.WriteString(line)
				buf.WriteString("\n")
			}
			written++
		}
	}
	change.Unified = buf.String()
	return change
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
