package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompt prompts the user and reads a single-line response from stdin.
func Prompt(msg string) string {
	return PromptReader(msg, os.Stdin, os.Stdout)
}

// PromptReader prompts on w and reads one trimmed line from r.
func PromptReader(msg string, r io.Reader, w io.Writer) string {
	_, _ = fmt.Fprintf(w, "%s: ", msg)
	line, _ := bufio.NewReader(r).ReadString('\n')
	return strings.TrimSpace(line)
}
