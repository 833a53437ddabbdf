package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VoxDroid/lnchr/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved records",
	Long:  "List saved records in registry order. Example:\n  lnchr list --filter mail",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		filter, _ := cmd.Flags().GetString("filter")
		matches := sess.Registry().Search(filter)
		if len(matches) == 0 {
			if filter != "" {
				printf(cmd, "no records match %q\n", filter)
			} else {
				printf(cmd, "no saved records\n")
			}
			return nil
		}
		for _, m := range matches {
			printf(cmd, "%d. %s\n", m.Index+1, summary(m.Record))
		}
		return nil
	},
}

func summary(h registry.HistoryRecord) string {
	s := h.Name + " (" + plural(len(h.Items), "item") + ", " + h.CreatedAt + ")"
	if h.CloseAfterRun {
		s += " [close after run]"
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return itoa(n) + " " + word + "s"
}

func init() {
	listCmd.Flags().String("filter", "", "Fuzzy filter on record names and item paths")
	rootCmd.AddCommand(listCmd)
}
