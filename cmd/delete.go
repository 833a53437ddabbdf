package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		yes, _ := cmd.Flags().GetBool("yes")

		sess, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		idx, err := findRecord(sess.Registry(), name)
		if err != nil {
			return err
		}
		if !yes && !confirm(cmd, fmt.Sprintf("Delete '%s' permanently?", name)) {
			printf(cmd, "aborted\n")
			return nil
		}
		if _, err := sess.DeleteRecord(ctxOf(cmd), idx); err != nil {
			return err
		}
		printf(cmd, "deleted '%s'\n", name)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking")
	rootCmd.AddCommand(deleteCmd)
}
