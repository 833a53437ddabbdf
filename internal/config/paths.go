// Package config resolves where lnchr keeps its data and reads runtime
// settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment overrides for the data directory and store file.
const (
	EnvHome  = "LNCHR_HOME"
	EnvStore = "LNCHR_STORE"
)

// DataDir returns the directory used to store lnchr data.
func DataDir() (string, error) {
	if d := os.Getenv(EnvHome); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	// Use a dot-directory in the user's home on all platforms
	return filepath.Join(home, ".lnchr"), nil
}

// StorePath returns the full path to the registry store. A path ending in
// .json selects the JSON document store; anything else is SQLite.
func StorePath() (string, error) {
	if p := os.Getenv(EnvStore); p != "" {
		return p, nil
	}
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "lnchr.db"), nil
}

// EnsureDataDir creates the data directory if needed and returns it.
func EnsureDataDir() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return d, nil
}
