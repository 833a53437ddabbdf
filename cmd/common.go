package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/lnchr/internal/config"
	"github.com/VoxDroid/lnchr/internal/errs"
	"github.com/VoxDroid/lnchr/internal/launcher"
	"github.com/VoxDroid/lnchr/internal/logging"
	"github.com/VoxDroid/lnchr/internal/registry"
	"github.com/VoxDroid/lnchr/internal/sequencer"
	"github.com/VoxDroid/lnchr/internal/session"
	"github.com/VoxDroid/lnchr/internal/store"
	"github.com/VoxDroid/lnchr/internal/utils"
)

// settings loads config from the environment and applies global flags.
func settings() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if storeFlag != "" {
		cfg.Store = storeFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if logFormatFlag != "" {
		cfg.LogFormat = logFormatFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession opens the configured store and loads the registry. Unlike the
// interactive UI, commands refuse to continue on a store that failed to load
// so a later save cannot overwrite it.
func openSession(ctx context.Context, l launcher.Launcher, opts ...sequencer.Option) (*session.Session, *config.Config, error) {
	cfg, err := settings()
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]sequencer.Option{
		sequencer.WithGracePeriod(cfg.GracePeriod),
		sequencer.WithLogger(logging.Logger),
	}, opts...)
	seq := sequencer.New(l, opts...)
	sess := session.New(st, seq, session.WithLogger(logging.Logger))
	if _, err := sess.Startup(ctx); err != nil {
		_ = sess.Close()
		return nil, nil, err
	}
	return sess, cfg, nil
}

// openRegistry is openSession for commands that never run anything.
func openRegistry(cmd *cobra.Command) (*session.Session, error) {
	sess, _, err := openSession(ctxOf(cmd), launcher.New(true, io.Discard))
	return sess, err
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func findRecord(reg *registry.Registry, name string) (int, error) {
	i := reg.IndexOf(name)
	if i < 0 {
		return -1, fmt.Errorf("record not found: %s", name)
	}
	return i, nil
}

// position parses a 1-based item position.
func position(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q: expected a number starting at 1", s)
	}
	return n - 1, nil
}

// confirm asks msg on the command's streams. Real stdin goes through the
// terminal check; injected input (tests, pipes set by callers) is read
// directly.
func confirm(cmd *cobra.Command, msg string) bool {
	if cmd.InOrStdin() == os.Stdin {
		return utils.Confirm(msg)
	}
	return utils.ConfirmReader(msg, cmd.InOrStdin(), cmd.OutOrStdout())
}

// describeError renders core errors as short user-facing messages.
func describeError(err error) string {
	var e *errs.Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch e.Kind {
	case errs.KindValidation:
		return e.Msg
	case errs.KindIndex:
		return "no such position: " + e.Msg
	case errs.KindStorage:
		return "could not access saved records: " + err.Error()
	default:
		return err.Error()
	}
}

func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
