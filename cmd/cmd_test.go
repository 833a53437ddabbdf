package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func setupTempHome(t *testing.T) string {
	t.Helper()
	d := t.TempDir()
	t.Setenv("LNCHR_HOME", d)
	t.Setenv("LNCHR_STORE", "")
	return d
}

// resetFlags restores every flag to its default; cobra keeps parsed values
// on the package-level commands between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, "", args...)
	if err != nil {
		t.Fatalf("lnchr %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestSaveListShow(t *testing.T) {
	setupTempHome(t)
	out := mustExecute(t, "save", "morning", "--item", "/opt/mail", "-i", "/opt/notes.txt=2.5", "--close-after-run")
	if !strings.Contains(out, "saved 'morning' (2 items)") {
		t.Fatalf("unexpected save output %q", out)
	}
	mustExecute(t, "save", "evening", "--item", "/opt/tv")

	out = mustExecute(t, "list")
	if !strings.Contains(out, "1. morning (2 items,") || !strings.Contains(out, "[close after run]") {
		t.Fatalf("unexpected list output %q", out)
	}
	if !strings.Contains(out, "2. evening (1 item,") {
		t.Fatalf("expected evening second: %q", out)
	}

	out = mustExecute(t, "list", "--filter", "tv")
	if strings.Contains(out, "morning") || !strings.Contains(out, "evening") {
		t.Fatalf("filter did not apply: %q", out)
	}

	out = mustExecute(t, "show")
	for _, want := range []string{"morning", "close after run: on", "1. /opt/mail", "2. /opt/notes.txt (after 2.5s)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("show missing %q in %q", want, out)
		}
	}
}

func TestSaveCollisionAsks(t *testing.T) {
	setupTempHome(t)
	mustExecute(t, "save", "work", "--item", "/a")

	out, err := execute(t, "n\n", "save", "work", "--item", "/b")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(out, "aborted") {
		t.Fatalf("expected abort, got %q", out)
	}

	out, err = execute(t, "y\n", "save", "work", "--item", "/b", "--item", "/c")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(out, "replaced 'work' (2 items)") {
		t.Fatalf("expected replace, got %q", out)
	}
	mustExecute(t, "save", "work", "--item", "/d", "--yes")
	if out := mustExecute(t, "show", "work"); !strings.Contains(out, "1. /d") {
		t.Fatalf("--yes should replace without asking: %q", out)
	}
}

func TestSaveRejectsEmptyList(t *testing.T) {
	setupTempHome(t)
	if _, err := execute(t, "", "save", "nothing"); err == nil {
		t.Fatalf("expected error saving an empty list")
	}
}

func TestItemCommands(t *testing.T) {
	setupTempHome(t)
	mustExecute(t, "save", "set", "--item", "/a")
	mustExecute(t, "item", "add", "set", "/b=1", "/c")
	mustExecute(t, "item", "delay", "set", "3", "4")
	mustExecute(t, "item", "up", "set", "3")
	if out := mustExecute(t, "item", "up", "set", "1"); !strings.Contains(out, "already first") {
		t.Fatalf("expected already-first notice, got %q", out)
	}
	mustExecute(t, "item", "remove", "set", "1")

	out := mustExecute(t, "show", "set")
	if !strings.Contains(out, "1. /c (after 4s)") || !strings.Contains(out, "2. /b (after 1s)") {
		t.Fatalf("unexpected items after edits: %q", out)
	}

	if _, err := execute(t, "", "item", "remove", "set", "9"); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	if _, err := execute(t, "", "item", "delay", "set", "1", "soon"); err == nil {
		t.Fatalf("expected invalid delay error")
	}
	if _, err := execute(t, "", "item", "add", "missing", "/x"); err == nil {
		t.Fatalf("expected record not found")
	}
}

func TestRenameMoveDelete(t *testing.T) {
	setupTempHome(t)
	mustExecute(t, "save", "a", "--item", "/a")
	mustExecute(t, "save", "b", "--item", "/b")

	mustExecute(t, "rename", "b", "bee")
	if _, err := execute(t, "", "rename", "a", "bee"); err == nil {
		t.Fatalf("expected collision error")
	}
	mustExecute(t, "move", "bee", "up")
	if out := mustExecute(t, "move", "bee", "up"); !strings.Contains(out, "already at the top") {
		t.Fatalf("unexpected move output %q", out)
	}
	if out := mustExecute(t, "list"); !strings.HasPrefix(out, "1. bee") {
		t.Fatalf("bee should be first: %q", out)
	}

	out, err := execute(t, "n\n", "delete", "a")
	if err != nil || !strings.Contains(out, "aborted") {
		t.Fatalf("expected aborted delete, got %q %v", out, err)
	}
	mustExecute(t, "delete", "a", "--yes")
	if out := mustExecute(t, "list"); strings.Contains(out, " a (") {
		t.Fatalf("a should be deleted: %q", out)
	}
}

func TestRunDryRun(t *testing.T) {
	home := setupTempHome(t)
	present := touch(t, home, "notes.txt")
	missing := filepath.Join(home, "gone.txt")
	mustExecute(t, "save", "day", "--item", present, "--item", missing)

	out := mustExecute(t, "run", "--dry-run")
	for _, want := range []string{"running 2 items", "dry-run:", "launched item 1/2: notes.txt", "file does not exist: " + missing, "run complete: 1 launched, 1 failed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("run output missing %q:\n%s", want, out)
		}
	}
}

func TestRunItemsBootstrapsDefaultRecord(t *testing.T) {
	home := setupTempHome(t)
	if _, err := execute(t, "", "run"); err == nil {
		t.Fatalf("expected error with no records")
	}
	p := touch(t, home, "a.txt")
	mustExecute(t, "run", "--dry-run", "--item", p)
	if out := mustExecute(t, "list"); !strings.Contains(out, "Default record") {
		t.Fatalf("expected bootstrapped record: %q", out)
	}
	if _, err := execute(t, "", "run", "day", "--item", p); err == nil {
		t.Fatalf("name and --item together must be rejected")
	}
}

func TestExportImport(t *testing.T) {
	setupTempHome(t)
	mustExecute(t, "save", "work", "--item", "/a", "--item", "/b=2")
	dst := filepath.Join(t.TempDir(), "backup.json")
	mustExecute(t, "export", dst)
	b, err := os.ReadFile(dst)
	if err != nil || !strings.Contains(string(b), `"history_records"`) {
		t.Fatalf("unexpected export %s: %v", b, err)
	}

	setupTempHome(t)
	mustExecute(t, "save", "work", "--item", "/z")
	out := mustExecute(t, "import", dst)
	if !strings.Contains(out, "imported as 'work-import-1'") || !strings.Contains(out, "imported 1 record") {
		t.Fatalf("unexpected import output %q", out)
	}

	out, err = execute(t, "n\n", "import", dst, "--overwrite")
	if err != nil || !strings.Contains(out, "aborted") {
		t.Fatalf("expected overwrite prompt to abort: %q %v", out, err)
	}
	mustExecute(t, "import", dst, "--overwrite", "--yes")
	if out := mustExecute(t, "list"); strings.Contains(out, "work-import-1") || !strings.Contains(out, "1. work (2 items") {
		t.Fatalf("overwrite should leave only the imported record: %q", out)
	}
}

func TestJSONStoreFlag(t *testing.T) {
	setupTempHome(t)
	p := filepath.Join(t.TempDir(), "data", "launcher_data.json")
	mustExecute(t, "--store="+p, "save", "json-set", "--item", "/a")
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("store not written: %v", err)
	}
	if !strings.Contains(string(b), `"name": "json-set"`) {
		t.Fatalf("unexpected document %s", b)
	}
	// the default SQLite store is untouched
	if out := mustExecute(t, "list"); !strings.Contains(out, "no saved records") {
		t.Fatalf("default store should be empty: %q", out)
	}
}

func TestEditCloseAfterRunWithoutEditor(t *testing.T) {
	setupTempHome(t)
	mustExecute(t, "save", "x", "--item", "/a")
	mustExecute(t, "edit", "x", "--no-editor", "--close-after-run")
	if out := mustExecute(t, "show", "x"); !strings.Contains(out, "close after run: on") {
		t.Fatalf("flag not updated: %q", out)
	}
	if out := mustExecute(t, "edit", "x", "--no-editor"); !strings.Contains(out, "no changes") {
		t.Fatalf("expected no changes: %q", out)
	}
}

func TestEditWithEditor(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell-script editor is unix only")
	}
	home := setupTempHome(t)
	script := filepath.Join(home, "editor.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nprintf '/new=1.5\\n' >> \"$1\"\n"), 0o755); err != nil {
		t.Fatalf("write editor: %v", err)
	}
	t.Setenv("EDITOR", script)
	mustExecute(t, "save", "x", "--item", "/a")
	if out := mustExecute(t, "edit", "x"); !strings.Contains(out, "updated 'x'") {
		t.Fatalf("unexpected edit output %q", out)
	}
	if out := mustExecute(t, "show", "x"); !strings.Contains(out, "2. /new (after 1.5s)") {
		t.Fatalf("edited item missing: %q", out)
	}
}

func TestVersion(t *testing.T) {
	setupTempHome(t)
	if out := mustExecute(t, "version"); !strings.HasPrefix(out, "lnchr ") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestSaveFromStdin(t *testing.T) {
	setupTempHome(t)
	out, err := execute(t, "# from a pipe\n/b=1\n/c\n", "save", "piped", "--item", "/a", "--stdin")
	if err != nil {
		t.Fatalf("save --stdin: %v", err)
	}
	if !strings.Contains(out, "saved 'piped' (3 items)") {
		t.Fatalf("unexpected output %q", out)
	}
	if out := mustExecute(t, "show", "piped"); !strings.Contains(out, "2. /b (after 1s)") || !strings.Contains(out, "3. /c") {
		t.Fatalf("stdin items missing: %q", out)
	}
}

func TestRenamePromptsForName(t *testing.T) {
	setupTempHome(t)
	mustExecute(t, "save", "old", "--item", "/a")
	out, err := execute(t, "fresh\n", "rename", "old")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if !strings.Contains(out, "New name for 'old': ") || !strings.Contains(out, "renamed 'old' to 'fresh'") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := execute(t, "\n", "rename", "fresh"); err == nil {
		t.Fatalf("expected error for an empty name")
	}
}

func TestLogFlagsAreValidated(t *testing.T) {
	setupTempHome(t)
	if _, err := execute(t, "", "--log-level=verbose", "list"); err == nil || !strings.Contains(err.Error(), "log level") {
		t.Fatalf("expected log level error, got %v", err)
	}
	if _, err := execute(t, "", "--log-format=xml", "list"); err == nil || !strings.Contains(err.Error(), "log format") {
		t.Fatalf("expected log format error, got %v", err)
	}
	mustExecute(t, "--log-level=debug", "--log-format=json", "list")
}
