package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/lnchr/internal/sequencer"
)

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show the items of a record",
	Long:  "Show the items of a record. Without a name the first record is shown.",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		reg := sess.Registry()
		idx := reg.Selected()
		if len(args) > 0 {
			if idx, err = findRecord(reg, strings.Join(args, " ")); err != nil {
				return err
			}
		}
		if idx < 0 {
			printf(cmd, "no saved records\n")
			return nil
		}
		rec, err := reg.Record(idx)
		if err != nil {
			return err
		}
		printf(cmd, "%s\n", rec.Name)
		printf(cmd, "created: %s\n", rec.CreatedAt)
		printf(cmd, "close after run: %s\n", onOff(rec.CloseAfterRun))
		for _, it := range rec.Items {
			if it.Delay > 0 {
				printf(cmd, "%d. %s (after %s)\n", it.Order, it.Path, sequencer.Seconds(it.Delay))
			} else {
				printf(cmd, "%d. %s\n", it.Order, it.Path)
			}
		}
		return nil
	},
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func itoa(n int) string { return strconv.Itoa(n) }

func init() {
	rootCmd.AddCommand(showCmd)
}
