package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/lnchr/internal/launcher"
	"github.com/VoxDroid/lnchr/internal/sequencer"
)

var runCmd = &cobra.Command{
	Use:   "run [name]",
	Short: "Launch the items of a record in order",
	Long: `Launch the items of a record in order, waiting each item's delay first.
Without a name the first record runs. With --item the given items run instead;
when nothing is saved yet they are kept as the default record.

Items that fail to launch are reported and skipped; they do not make the
command fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dry, _ := cmd.Flags().GetBool("dry-run")
		specs, _ := cmd.Flags().GetStringArray("item")
		if len(args) > 0 && len(specs) > 0 {
			return errors.New("pass either a record name or --item, not both")
		}

		ctx, stop := signal.NotifyContext(ctxOf(cmd), os.Interrupt)
		defer stop()

		out := &lockedWriter{w: cmd.OutOrStdout()}
		sess, _, err := openSession(ctx, launcher.New(dry, out))
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		switch {
		case len(specs) > 0:
			if err := fillTaskList(sess, specs); err != nil {
				return err
			}
		case len(args) > 0:
			idx, err := findRecord(sess.Registry(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := sess.LoadRecord(idx); err != nil {
				return err
			}
		case sess.Selected() < 0:
			return errors.New("no saved records; save one first or pass --item")
		}
		// the process exits when the run ends, so there is nothing to close
		sess.SetCloseAfterRun(false)

		run, err := sess.Run(ctx)
		if err != nil {
			return err
		}
		if run.BootstrapErr != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not save default record: %v\n", run.BootstrapErr)
		}
		for ev := range run.Events() {
			if ev.Kind == sequencer.EventDispatching {
				continue
			}
			_, _ = io.WriteString(out, ev.String()+"\n")
		}
		<-run.Done()
		return nil
	},
}

// lockedWriter serialises writes from the run goroutine (dry-run output)
// and the event printer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func init() {
	runCmd.Flags().Bool("dry-run", false, "Print what would be launched without launching")
	runCmd.Flags().StringArrayP("item", "i", nil, "Run this path[=delay] instead of a record (repeatable)")
	rootCmd.AddCommand(runCmd)
}
