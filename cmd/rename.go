package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VoxDroid/lnchr/internal/utils"
)

var renameCmd = &cobra.Command{
	Use:   "rename <old> [new]",
	Short: "Rename a record",
	Long:  "Rename a record. Without a new name you are asked for one.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		idx, err := findRecord(sess.Registry(), args[0])
		if err != nil {
			return err
		}
		var newName string
		if len(args) > 1 {
			newName = args[1]
		} else {
			newName = utils.PromptReader("New name for '"+args[0]+"'", cmd.InOrStdin(), cmd.OutOrStdout())
		}
		if err := sess.RenameRecord(ctxOf(cmd), idx, newName); err != nil {
			return err
		}
		rec, err := sess.Registry().Record(idx)
		if err != nil {
			return err
		}
		printf(cmd, "renamed '%s' to '%s'\n", args[0], rec.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
