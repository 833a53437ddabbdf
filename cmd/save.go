package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/lnchr/internal/recorder"
	"github.com/VoxDroid/lnchr/internal/registry"
	"github.com/VoxDroid/lnchr/internal/session"
	"github.com/VoxDroid/lnchr/internal/tasklist"
)

var saveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a list of items as a named record",
	Long: `Save a list of items as a named record. Each --item is a path with an
optional delay in seconds after '='. Leftover words are joined into the name.

Examples:
  lnchr save morning --item /usr/bin/thunderbird --item ~/notes.txt=2.5
  find ~/work -name '*.md' | lnchr save docs --stdin`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		specs, _ := cmd.Flags().GetStringArray("item")
		car, _ := cmd.Flags().GetBool("close-after-run")
		yes, _ := cmd.Flags().GetBool("yes")
		fromStdin, _ := cmd.Flags().GetBool("stdin")

		sess, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		if err := fillTaskList(sess, specs); err != nil {
			return err
		}
		if fromStdin {
			if err := readTaskList(cmd, sess); err != nil {
				return err
			}
		}
		sess.SetCloseAfterRun(car)
		res, err := sess.SaveCurrent(ctxOf(cmd), name, func(n string) bool {
			return yes || confirm(cmd, fmt.Sprintf("A record named %q exists. Replace it?", n))
		})
		if errors.Is(err, registry.ErrDeclined) {
			printf(cmd, "aborted\n")
			return nil
		}
		if err != nil {
			return err
		}
		verb := "saved"
		if res.Replaced {
			verb = "replaced"
		}
		printf(cmd, "%s '%s' (%s)\n", verb, res.Name, plural(sess.Len(), "item"))
		return nil
	},
}

// fillTaskList replaces the session's Task List with parsed item specs.
func fillTaskList(sess *session.Session, specs []string) error {
	for sess.Len() > 0 {
		if _, err := sess.RemoveItem(sess.Len() - 1); err != nil {
			return err
		}
	}
	for _, s := range specs {
		path, delay, err := tasklist.ParseItem(s)
		if err != nil {
			return err
		}
		if err := sess.AddItem(path, delay); err != nil {
			return err
		}
	}
	return nil
}

// readTaskList appends item specs read from the command's input, one per
// line, to the session's Task List.
func readTaskList(cmd *cobra.Command, sess *session.Session) error {
	l := tasklist.FromItems(sess.Items().Items())
	if _, err := recorder.RecordItems(cmd.InOrStdin(), l); err != nil {
		return err
	}
	for _, it := range l.Snapshot()[sess.Len():] {
		if err := sess.AddItem(it.Path, it.Delay); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	saveCmd.Flags().StringArrayP("item", "i", nil, "Item to launch as path[=delay] (repeatable)")
	saveCmd.Flags().Bool("close-after-run", false, "Exit after running this record")
	saveCmd.Flags().BoolP("yes", "y", false, "Replace an existing record without asking")
	saveCmd.Flags().Bool("stdin", false, "Also read path[=delay] lines from stdin")
	rootCmd.AddCommand(saveCmd)
}
