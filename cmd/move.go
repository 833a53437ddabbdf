package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:       "move <name> up|down",
	Short:     "Move a record one place up or down the list",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		name, dir := args[0], args[1]
		if dir != "up" && dir != "down" {
			return fmt.Errorf("direction must be up or down, got %q", dir)
		}
		sess, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		idx, err := findRecord(sess.Registry(), name)
		if err != nil {
			return err
		}
		move := sess.MoveRecordDown
		if dir == "up" {
			move = sess.MoveRecordUp
		}
		moved, err := move(ctxOf(cmd), idx)
		if err != nil {
			return err
		}
		if !moved {
			edge := "bottom"
			if dir == "up" {
				edge = "top"
			}
			printf(cmd, "'%s' is already at the %s\n", name, edge)
			return nil
		}
		printf(cmd, "moved '%s' %s\n", name, dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
