// Package launcher starts launch items using the host's default association
// or, for executables, directly. Launching is fire-and-forget: exit codes and
// output are never captured.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/VoxDroid/lnchr/internal/errs"
)

// Launcher starts the thing at path. A missing path is reported as an error
// matching errs.ErrNotFound; any other failure matches errs.ErrLaunch.
type Launcher interface {
	Launch(ctx context.Context, path string) error
}

// OS launches items on the current host.
type OS struct {
	DryRun bool
	Out    io.Writer // receives dry-run lines; defaults to io.Discard

	goos  string
	start func(cmd *exec.Cmd) error
}

// New returns a Launcher for the running platform.
func New(dryRun bool, out io.Writer) *OS {
	return &OS{DryRun: dryRun, Out: out}
}

// Launch resolves path and starts it without waiting for it to exit.
func (o *OS) Launch(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return errs.Launch(path, err)
	}
	if err := ValidatePath(path); err != nil {
		return errs.Launch(path, err)
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return errs.Launch(path, errs.ErrNotFound)
	}
	if err != nil {
		return errs.Launch(path, err)
	}

	argv := o.Command(path, info)
	if o.DryRun {
		out := o.Out
		if out == nil {
			out = io.Discard
		}
		_, _ = fmt.Fprintf(out, "dry-run: %s\n", Describe(argv))
		return nil
	}

	// not CommandContext: launched programs must outlive this process
	cmd := exec.Command(argv[0], argv[1:]...)
	if len(argv) == 1 {
		cmd.Dir = filepath.Dir(path)
	}
	detach(cmd)
	start := o.start
	if start == nil {
		start = startAndReap
	}
	if err := start(cmd); err != nil {
		return errs.Launch(path, err)
	}
	return nil
}

// Command returns the argv used to start path on this launcher's platform.
func (o *OS) Command(path string, info fs.FileInfo) []string {
	goos := o.goos
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "windows":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".exe", ".bat", ".cmd", ".com":
			return []string{path}
		}
		// the empty argument is the window title expected by start
		return []string{"cmd", "/c", "start", "", path}
	case "darwin":
		if isExecutableFile(info) {
			return []string{path}
		}
		return []string{"open", path}
	default:
		if isExecutableFile(info) {
			return []string{path}
		}
		return []string{"xdg-open", path}
	}
}

// Describe renders argv as a single shell-quoted line for logs and dry-runs.
func Describe(argv []string) string {
	return shellquote.Join(argv...)
}

// ValidatePath rejects paths containing NUL, newlines or other control
// characters that would break process creation.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("invalid path: empty")
	}
	if strings.ContainsAny(path, "\r\n") {
		return fmt.Errorf("invalid path: contains newline characters")
	}
	if strings.IndexFunc(path, func(r rune) bool { return r == 0 || (r < 32 && r != '\t') || r == 0x7f }) != -1 {
		return fmt.Errorf("invalid path: contains control characters")
	}
	return nil
}

func isExecutableFile(info fs.FileInfo) bool {
	return info != nil && info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

func startAndReap(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	// reap in the background so no zombie is left; the result is ignored
	go func() { _ = cmd.Wait() }()
	return nil
}
