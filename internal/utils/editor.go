package utils

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/kballard/go-shellquote"
)

// EditorCommand returns the argv for the user's preferred editor. $EDITOR may
// carry arguments ("code --wait"). On Windows if $EDITOR is not set it falls
// back to notepad; on Unix it falls back to vi.
func EditorCommand() ([]string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		if runtime.GOOS == "windows" {
			return []string{"notepad"}, nil
		}
		return []string{"vi"}, nil
	}
	argv, err := shellquote.Split(editor)
	if err != nil {
		return nil, fmt.Errorf("parse $EDITOR: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("parse $EDITOR: empty command")
	}
	return argv, nil
}

// OpenEditor opens the given file in the user's preferred editor and waits
// for it to exit.
func OpenEditor(path string) error {
	argv, err := EditorCommand()
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("open editor: %w", err)
	}
	return nil
}

// EditText writes initial to a temporary file, opens it in the editor and
// returns the saved contents.
func EditText(pattern, initial string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()
	if _, err := f.WriteString(initial); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := OpenEditor(path); err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read temp file: %w", err)
	}
	return string(b), nil
}
