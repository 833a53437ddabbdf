// Package sanitize makes user-supplied text (record names, item paths) safe
// to draw in the TUI. Escape sequences embedded in a name or path could
// otherwise switch screens, move the cursor or retitle the terminal.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

// Precompiled regexps used by Display.
var (
	oscRe = regexp.MustCompile(`\x1b\][^\x07\x1b]*(\x07|\x1b\\)`)
	csiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)
)

// Display removes OSC and CSI sequences, then replaces any remaining control
// character (including tabs and newlines) with a space so the text renders
// on one line.
func Display(in string) string {
	if !strings.ContainsFunc(in, unicode.IsControl) {
		return in
	}
	out := oscRe.ReplaceAllString(in, "")
	out = csiRe.ReplaceAllString(out, "")
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, out)
}
