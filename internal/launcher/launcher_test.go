package launcher

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/VoxDroid/lnchr/internal/errs"
)

func writeFile(t *testing.T, name string, perm os.FileMode) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte("x"), perm); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLaunchMissingPath(t *testing.T) {
	l := New(false, nil)
	err := l.Launch(context.Background(), filepath.Join(t.TempDir(), "nope.exe"))
	if !errors.Is(err, errs.ErrNotFound) || !errors.Is(err, errs.ErrLaunch) {
		t.Fatalf("expected not-found launch failure, got %v", err)
	}
}

func TestLaunchRejectsControlCharacters(t *testing.T) {
	l := New(true, nil)
	err := l.Launch(context.Background(), "/tmp/a\nb")
	if !errors.Is(err, errs.ErrLaunch) || errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected launch failure, got %v", err)
	}
}

func TestDryRunPrintsQuotedCommand(t *testing.T) {
	p := writeFile(t, "my notes.txt", 0o644)
	var out bytes.Buffer
	l := &OS{DryRun: true, Out: &out, goos: "linux"}
	if err := l.Launch(context.Background(), p); err != nil {
		t.Fatalf("dry-run should not error: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "dry-run: xdg-open ") || !strings.Contains(got, "'") {
		t.Fatalf("unexpected dry-run output %q", got)
	}
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix permission bits")
	}
}

func TestCommandSelection(t *testing.T) {
	skipOnWindows(t)
	doc := writeFile(t, "doc.pdf", 0o644)
	bin := writeFile(t, "tool", 0o755)
	docInfo, _ := os.Stat(doc)
	binInfo, _ := os.Stat(bin)

	cases := []struct {
		goos string
		path string
		info os.FileInfo
		want []string
	}{
		{"linux", doc, docInfo, []string{"xdg-open", doc}},
		{"linux", bin, binInfo, []string{bin}},
		{"darwin", doc, docInfo, []string{"open", doc}},
		{"windows", `C:\x\app.EXE`, docInfo, []string{`C:\x\app.EXE`}},
		{"windows", `C:\x\run.bat`, docInfo, []string{`C:\x\run.bat`}},
		{"windows", `C:\x\doc.pdf`, docInfo, []string{"cmd", "/c", "start", "", `C:\x\doc.pdf`}},
	}
	for _, c := range cases {
		l := &OS{goos: c.goos}
		got := l.Command(c.path, c.info)
		if strings.Join(got, "|") != strings.Join(c.want, "|") {
			t.Fatalf("%s %s: got %q want %q", c.goos, c.path, got, c.want)
		}
	}
}

func TestStartFailureIsLaunchFailure(t *testing.T) {
	p := writeFile(t, "doc.txt", 0o644)
	l := &OS{goos: "linux", start: func(*exec.Cmd) error { return errors.New("no handler") }}
	err := l.Launch(context.Background(), p)
	if !errors.Is(err, errs.ErrLaunch) || errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected generic launch failure, got %v", err)
	}
}

func TestStartReceivesDetachedCommand(t *testing.T) {
	skipOnWindows(t)
	p := writeFile(t, "tool", 0o755)
	var got *exec.Cmd
	l := &OS{goos: "linux", start: func(c *exec.Cmd) error { got = c; return nil }}
	if err := l.Launch(context.Background(), p); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if got == nil || got.Path != p || got.Dir != filepath.Dir(p) || got.SysProcAttr == nil {
		t.Fatalf("unexpected command %+v", got)
	}
}
