package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/lnchr/internal/recorder"
	"github.com/VoxDroid/lnchr/internal/session"
	"github.com/VoxDroid/lnchr/internal/tasklist"
	"github.com/VoxDroid/lnchr/internal/utils"
)

const editHeader = `# One item per line as path[=delay seconds].
# Lines starting with '#' are ignored. Save and close to apply.
`

var editCmd = &cobra.Command{
	Use:   "edit <record>",
	Short: "Edit a record's items in $EDITOR",
	Long: `Edit a record's items in $EDITOR, one path[=delay] per line.
Use --close-after-run=true|false to change the flag, with --no-editor to skip the editor.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noEditor, _ := cmd.Flags().GetBool("no-editor")
		return editRecord(cmd, args[0], func(sess *session.Session) (string, error) {
			changed := false
			if cmd.Flags().Changed("close-after-run") {
				car, _ := cmd.Flags().GetBool("close-after-run")
				if car != sess.CloseAfterRun() {
					sess.SetCloseAfterRun(car)
					changed = true
				}
			}
			if !noEditor {
				text, err := utils.EditText("lnchr-*.txt", editHeader+recorder.Format(sess.Items()))
				if err != nil {
					return "", err
				}
				edited := tasklist.New()
				if _, err := recorder.RecordItems(strings.NewReader(text), edited); err != nil {
					return "", err
				}
				if !sameItems(edited.Snapshot(), sess.Items()) {
					specs := make([]string, 0, edited.Len())
					for _, it := range edited.Snapshot() {
						specs = append(specs, tasklist.FormatItem(it))
					}
					if err := fillTaskList(sess, specs); err != nil {
						return "", err
					}
					changed = true
				}
			}
			if !changed {
				printf(cmd, "no changes\n")
				return "", nil
			}
			return "updated '" + args[0] + "'", nil
		})
	},
}

func sameItems(a, b tasklist.Snapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func init() {
	editCmd.Flags().Bool("close-after-run", false, "Set whether lnchr exits after running this record")
	editCmd.Flags().Bool("no-editor", false, "Do not open the editor")
	rootCmd.AddCommand(editCmd)
}
