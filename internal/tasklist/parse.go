package tasklist

import (
	"strconv"
	"strings"

	"github.com/VoxDroid/lnchr/internal/errs"
)

// ParseItem splits "path[=delay]" into its parts. Only a trailing "=N" that
// parses as a number is taken as the delay, so paths containing '=' survive.
func ParseItem(spec string) (string, float64, error) {
	spec = strings.TrimSpace(spec)
	path, delay := spec, 0.0
	if i := strings.LastIndex(spec, "="); i >= 0 {
		if d, err := strconv.ParseFloat(strings.TrimSpace(spec[i+1:]), 64); err == nil {
			path, delay = strings.TrimSpace(spec[:i]), d
		}
	}
	if path == "" {
		return "", 0, errs.Validation("tasklist.parse", "path cannot be empty")
	}
	if err := ValidateDelay("tasklist.parse", delay); err != nil {
		return "", 0, err
	}
	return path, delay, nil
}

// FormatItem renders it in ParseItem's syntax.
func FormatItem(it Item) string {
	if it.Delay == 0 {
		return it.Path
	}
	return it.Path + "=" + strconv.FormatFloat(it.Delay, 'f', -1, 64)
}
