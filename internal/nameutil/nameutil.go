// Package nameutil validates and cleans history record names.
package nameutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/VoxDroid/lnchr/internal/errs"
)

// ValidateName checks whether name is acceptable for a history record. Names
// are compared case-sensitively elsewhere, so no folding happens here. It
// does NOT mutate the input; call Clean first to strip invisible runes.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.Validation("name", "name cannot be empty")
	}
	if !utf8.ValidString(name) {
		return errs.Validation("name", "contains invalid encoding")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return errs.Validation("name", "contains control character U+%04X (%q)", r, r)
		}
	}
	return nil
}

// Clean removes control characters and zero-width runes commonly introduced
// by copy/paste, trims surrounding whitespace, and reports whether anything
// changed.
func Clean(name string) (string, bool) {
	if name == "" {
		return name, false
	}
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		switch r {
		case '\u200B', '\u200C', '\u200D', '\uFEFF':
			continue
		}
		out = append(out, r)
	}
	res := strings.TrimSpace(string(out))
	return res, res != name
}

// OrDefault returns the cleaned name, or def when nothing is left of it.
func OrDefault(name, def string) string {
	if s, _ := Clean(name); s != "" {
		return s
	}
	return def
}
