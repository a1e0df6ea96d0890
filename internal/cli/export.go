package cli

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/catalog-admin/internal/core"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		f   viewFlags
		out string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one page of products as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := fetchView(cmd.Context(), &f)
			if err != nil {
				return err
			}
			if len(view.Rows) == 0 {
				return core.ErrNothingToExport
			}

			data, err := core.ExportCSV(view.Rows)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			if out == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			path := out
			if path == "" {
				path = core.ExportFilename(view.State.Page)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s (%s)\n",
				pluralize(len(view.Rows), "product"), path, humanize.Bytes(uint64(len(data))))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, - for stdout (default products_page_<n>.csv)")
	return cmd
}
