package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeEditor(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-script editors are unix only")
	}
	p := filepath.Join(t.TempDir(), "fake-editor.sh")
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return p
}

func TestOpenEditor_Success(t *testing.T) {
	d := t.TempDir()
	marker := filepath.Join(d, "marker.txt")
	t.Setenv("EDITOR", writeEditor(t, "printf 'ok' > \""+marker+"\"\nexit 0\n"))

	if err := OpenEditor(filepath.Join(d, "dummy.txt")); err != nil {
		t.Fatalf("OpenEditor failed: %v", err)
	}
	b, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("marker not written: %v", err)
	}
	if strings.TrimSpace(string(b)) != "ok" {
		t.Fatalf("unexpected marker content: %q", string(b))
	}
}

func TestOpenEditor_Failure(t *testing.T) {
	t.Setenv("EDITOR", writeEditor(t, "exit 1\n"))
	if err := OpenEditor(filepath.Join(t.TempDir(), "dummy.txt")); err == nil {
		t.Fatalf("expected error from failing editor, got nil")
	}
}

func TestEditTextRoundTrip(t *testing.T) {
	// appends a line to whatever file it is given
	t.Setenv("EDITOR", writeEditor(t, "printf '/opt/b=2\\n' >> \"$1\"\n"))
	out, err := EditText("lnchr-*.txt", "/opt/a\n")
	if err != nil {
		t.Fatalf("EditText: %v", err)
	}
	if out != "/opt/a\n/opt/b=2\n" {
		t.Fatalf("unexpected edited text %q", out)
	}
}

func TestEditorCommandSplitsArgs(t *testing.T) {
	t.Setenv("EDITOR", `code --wait "--profile=my notes"`)
	argv, err := EditorCommand()
	if err != nil {
		t.Fatalf("EditorCommand: %v", err)
	}
	want := []string{"code", "--wait", "--profile=my notes"}
	if strings.Join(argv, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q want %q", argv, want)
	}

	t.Setenv("EDITOR", `vim "unterminated`)
	if _, err := EditorCommand(); err == nil {
		t.Fatalf("expected parse error")
	}
}
