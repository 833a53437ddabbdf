package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/lnchr/internal/errs"
	"github.com/VoxDroid/lnchr/internal/session"
	"github.com/VoxDroid/lnchr/internal/tasklist"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Edit the items of a saved record",
}

// editRecord loads the named record as the Task List, applies fn and writes
// the result back in place.
func editRecord(cmd *cobra.Command, name string, fn func(sess *session.Session) (string, error)) error {
	sess, err := openRegistry(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	idx, err := findRecord(sess.Registry(), name)
	if err != nil {
		return err
	}
	if err := sess.LoadRecord(idx); err != nil {
		return err
	}
	msg, err := fn(sess)
	if err != nil {
		return err
	}
	if msg == "" {
		return nil
	}
	if err := sess.Registry().UpdateItems(ctxOf(cmd), idx, sess.Items().Items(), sess.CloseAfterRun()); err != nil {
		return err
	}
	printf(cmd, "%s\n", msg)
	return nil
}

var itemAddCmd = &cobra.Command{
	Use:   "add <record> <path[=delay]>...",
	Short: "Append items to a record",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editRecord(cmd, args[0], func(sess *session.Session) (string, error) {
			for _, spec := range args[1:] {
				path, delay, err := tasklist.ParseItem(spec)
				if err != nil {
					return "", err
				}
				if err := sess.AddItem(path, delay); err != nil {
					return "", err
				}
			}
			return "added " + plural(len(args)-1, "item") + " to '" + args[0] + "'", nil
		})
	},
}

var itemRemoveCmd = &cobra.Command{
	Use:   "remove <record> <position>",
	Short: "Remove an item from a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editRecord(cmd, args[0], func(sess *session.Session) (string, error) {
			i, err := position(args[1])
			if err != nil {
				return "", err
			}
			removed, err := sess.RemoveItem(i)
			if err != nil {
				return "", err
			}
			return "removed " + removed.Path, nil
		})
	},
}

var itemDelayCmd = &cobra.Command{
	Use:   "delay <record> <position> <seconds>",
	Short: "Change the delay before an item",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editRecord(cmd, args[0], func(sess *session.Session) (string, error) {
			i, err := position(args[1])
			if err != nil {
				return "", err
			}
			d, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return "", errs.Validation("item.delay", "invalid delay %q: expected seconds", args[2])
			}
			if err := sess.UpdateDelay(i, d); err != nil {
				return "", err
			}
			return "item " + args[1] + " now waits " + args[2] + "s", nil
		})
	},
}

func itemMoveCmd(use, short string, up bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <record> <position>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRecord(cmd, args[0], func(sess *session.Session) (string, error) {
				i, err := position(args[1])
				if err != nil {
					return "", err
				}
				move := sess.MoveItemDown
				if up {
					move = sess.MoveItemUp
				}
				moved, err := move(i)
				if err != nil {
					return "", err
				}
				if !moved {
					edge := "last"
					if up {
						edge = "first"
					}
					printf(cmd, "item %s is already %s\n", args[1], edge)
					return "", nil
				}
				return "moved item " + args[1] + " " + use, nil
			})
		},
	}
}

func init() {
	itemCmd.AddCommand(itemAddCmd, itemRemoveCmd, itemDelayCmd,
		itemMoveCmd("up", "Move an item one place earlier", true),
		itemMoveCmd("down", "Move an item one place later", false),
	)
	rootCmd.AddCommand(itemCmd)
}
