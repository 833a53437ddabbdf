package config

import (
	"os"
	"testing"
	"time"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q): %v", dir, err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	t.Setenv(EnvHome, tmp)
	unsetEnv(t, EnvStore, "LNCHR_LOG_LEVEL", "LNCHR_LOG_FORMAT", "LNCHR_GRACE_PERIOD")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" || cfg.GracePeriod != time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Store == "" {
		t.Fatalf("expected store path to be resolved")
	}
}

func TestLoadRejectsBadLevel(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LNCHR_LOG_LEVEL", "verbose")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLoadReadsGracePeriod(t *testing.T) {
	chdir(t, t.TempDir())
	unsetEnv(t, "LNCHR_LOG_FORMAT")
	t.Setenv("LNCHR_LOG_LEVEL", "debug")
	t.Setenv("LNCHR_GRACE_PERIOD", "250ms")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if cfg.GracePeriod != 250*time.Millisecond {
		t.Fatalf("unexpected grace period %v", cfg.GracePeriod)
	}
}

func TestValidateAfterOverride(t *testing.T) {
	cfg := Config{LogLevel: "info", LogFormat: "text", GracePeriod: time.Second}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	cfg.LogLevel = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for overridden level")
	}
	cfg.LogLevel, cfg.LogFormat = "warn", "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for overridden format")
	}
}
