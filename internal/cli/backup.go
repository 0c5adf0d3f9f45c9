package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every table to <dir>/<table>.jsonl",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := a.openLedger()
			if err != nil {
				return err
			}
			defer ledger.Detach()

			counts, err := ledger.ExportJSONL(cmd.Context(), out)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			printCounts(cmd.OutOrStdout(), "exported", counts)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "backup", "directory to write the JSONL files to")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the store contents with <dir>/<table>.jsonl",
		Long: `Replace every table with the rows in the matching JSONL file. A missing
file empties its table. Nothing changes if any line is malformed or any row
fails to load.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := a.openLedger()
			if err != nil {
				return err
			}
			defer ledger.Detach()

			counts, err := ledger.ImportJSONL(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			printCounts(cmd.OutOrStdout(), "imported", counts)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "backup", "directory to read the JSONL files from")
	return cmd
}

func printCounts(w io.Writer, verb string, counts map[string]int) {
	tables := lo.Keys(counts)
	slices.Sort(tables)
	for _, t := range tables {
		fmt.Fprintf(w, "%s %d %s\n", verb, counts[t], t)
	}
}
