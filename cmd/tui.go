package cmd

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/VoxDroid/lnchr/cmd/tui/ui"
	"github.com/VoxDroid/lnchr/internal/config"
	"github.com/VoxDroid/lnchr/internal/launcher"
	"github.com/VoxDroid/lnchr/internal/logging"
	"github.com/VoxDroid/lnchr/internal/sequencer"
	"github.com/VoxDroid/lnchr/internal/session"
	"github.com/VoxDroid/lnchr/internal/store"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal UI",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := settings()
		if err != nil {
			return err
		}
		// log lines would corrupt the alternate screen
		logging.InitTo(io.Discard, cfg.LogLevel, cfg.LogFormat)
		if _, err := config.EnsureDataDir(); err != nil {
			return err
		}
		st, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}

		var p *tea.Program
		seq := sequencer.New(launcher.New(false, io.Discard),
			sequencer.WithGracePeriod(cfg.GracePeriod),
			sequencer.WithLogger(logging.Logger),
			sequencer.WithTerminate(func() { p.Quit() }),
		)
		sess := session.New(st, seq, session.WithLogger(logging.Logger))
		defer func() { _ = sess.Close() }()

		// a failed load is shown in the status line; the UI still starts empty
		status, _ := sess.Startup(ctxOf(cmd))
		p = ui.NewProgram(ctxOf(cmd), sess, status)
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
