// Package recorder captures launch items typed or piped in as text, one
// path[=delay] per line.
package recorder

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/VoxDroid/lnchr/internal/tasklist"
)

// RecordItems reads lines from r until EOF and appends each non-empty,
// non-comment line to l as an item. Lines starting with '#' are treated as
// comments and ignored. Nothing is appended when any line is invalid.
func RecordItems(r io.Reader, l *tasklist.List) (int, error) {
	s := bufio.NewScanner(r)
	var specs []string
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		specs = append(specs, line)
	}
	if err := s.Err(); err != nil {
		return 0, fmt.Errorf("read items: %w", err)
	}

	staged := tasklist.FromItems(l.Snapshot().Items())
	for _, spec := range specs {
		path, delay, err := tasklist.ParseItem(spec)
		if err != nil {
			return 0, err
		}
		if err := staged.Add(path, delay); err != nil {
			return 0, err
		}
	}
	for _, it := range staged.Snapshot()[l.Len():] {
		if err := l.Add(it.Path, it.Delay); err != nil {
			return 0, err
		}
	}
	return len(specs), nil
}

// Format renders items in the syntax RecordItems reads.
func Format(items []tasklist.Item) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(tasklist.FormatItem(it))
		b.WriteByte('\n')
	}
	return b.String()
}
