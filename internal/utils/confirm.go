// Package utils provides terminal helpers for the CLI.
package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Confirm prompts the user with msg and expects y/n on stdin. Returns true for yes.
// For non-interactive environments (stdin not a terminal) it returns false
// without prompting.
func Confirm(msg string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	return ConfirmReader(msg, os.Stdin, os.Stdout)
}

// ConfirmReader asks msg on w and reads the answer from r.
func ConfirmReader(msg string, r io.Reader, w io.Writer) bool {
	_, _ = fmt.Fprintf(w, "%s [y/N]: ", msg)
	line, _ := bufio.NewReader(r).ReadString('\n')
	resp := strings.TrimSpace(strings.ToLower(line))
	return resp == "y" || resp == "yes"
}
