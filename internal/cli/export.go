package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wh33les/HusbandsGames/internal/catalog"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			games, err := c.FetchAll(cmd.Context())
			if err != nil {
				return err
			}

			if output == "" {
				output = catalog.ExportFilename(time.Now())
			}
			data := catalog.ToCSV(games)
			if output == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), data)
				return nil
			}
			if err := os.WriteFile(output, []byte(data+"\n"), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d games to %s\n", len(games), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default games_data_<date>.csv, '-' for stdout)")
	return cmd
}
