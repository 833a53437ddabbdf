package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/lnchr/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import records from an exported file",
	Long: `Import records from a file written by 'lnchr export' (or a launcher_data.json
from the desktop launcher). Records are appended; names that already exist get
a "-import-N" suffix. --overwrite replaces every saved record instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		yes, _ := cmd.Flags().GetBool("yes")

		sess, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		if overwrite && sess.Registry().Len() > 0 && !yes &&
			!confirm(cmd, fmt.Sprintf("Replace all %s with the contents of %s?", plural(sess.Registry().Len(), "record"), src)) {
			printf(cmd, "aborted\n")
			return nil
		}
		res, err := importer.Import(ctxOf(cmd), sess.Registry(), src, overwrite)
		if err != nil {
			return err
		}
		olds := make([]string, 0, len(res.Renamed))
		for old := range res.Renamed {
			olds = append(olds, old)
		}
		sort.Strings(olds)
		for _, old := range olds {
			printf(cmd, "'%s' exists; imported as '%s'\n", old, res.Renamed[old])
		}
		printf(cmd, "imported %s from %s\n", plural(res.Imported, "record"), src)
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("overwrite", false, "Replace all saved records")
	importCmd.Flags().BoolP("yes", "y", false, "Do not ask before overwriting")
	rootCmd.AddCommand(importCmd)
}
