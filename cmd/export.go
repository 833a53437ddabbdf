package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VoxDroid/lnchr/internal/exporter"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export records to a file",
	Long: `Export records to a file. A *.json destination gets a JSON document,
anything else a standalone SQLite database.

Examples:
  lnchr export backup.json
  lnchr export morning.db --record morning`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst := args[0]
		name, _ := cmd.Flags().GetString("record")

		sess, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		reg := sess.Registry()
		if name != "" {
			if err := exporter.ExportRecord(ctxOf(cmd), reg, name, dst); err != nil {
				return err
			}
			printf(cmd, "exported '%s' to %s\n", name, dst)
			return nil
		}
		if err := exporter.Export(ctxOf(cmd), reg.Records(), dst); err != nil {
			return err
		}
		printf(cmd, "exported %s to %s\n", plural(reg.Len(), "record"), dst)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("record", "", "Export only the named record")
	rootCmd.AddCommand(exportCmd)
}
