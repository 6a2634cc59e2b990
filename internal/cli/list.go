package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wh33les/HusbandsGames/internal/catalog"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cellStyle   = lipgloss.NewStyle()
)

// numericColumns are right-aligned in the rendered table.
var numericColumns = map[string]bool{"id": true, "release_year": true, "price": true}

func newListCmd() *cobra.Command {
	var sortBy string
	var desc bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch and display the catalog",
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
			if len(games) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "The catalog is empty.")
				return nil
			}

			order := catalog.Order{}
			if sortBy != "" {
				dir := catalog.Asc
				if desc {
					dir = catalog.Desc
				}
				order = catalog.Order{Key: sortBy, Direction: dir}
			}
			games = catalog.Apply(games, order)

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(games))
			return nil
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort-by", "", "column to sort by (e.g. title, price, release_year)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

// renderTable lays the record set out with per-column widths; price cells
// are decimal-aligned via the dollars/cents split.
func renderTable(games []catalog.Game) string {
	cols := catalog.Columns(games)

	widths := make([]int, len(cols))
	rows := make([][]string, len(games))
	for i, key := range cols {
		widths[i] = len(key)
	}
	for r, g := range games {
		row := make([]string, len(cols))
		for i, key := range cols {
			row[i] = displayValue(g, key)
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
		rows[r] = row
	}

	var b strings.Builder
	for i, key := range cols {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(headerStyle.Render(pad(key, widths[i], false)))
	}
	for _, row := range rows {
		b.WriteByte('\n')
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cellStyle.Render(pad(cell, widths[i], numericColumns[cols[i]])))
		}
	}
	return b.String()
}

// displayValue is Value with the two-decimal price rendering the table
// uses; exports keep the raw number.
func displayValue(g catalog.Game, key string) string {
	if key == "price" && g.Price != nil {
		dollars, cents := catalog.SplitPrice(*g.Price)
		return dollars + "." + cents
	}
	return g.Value(key)
}

func pad(s string, width int, rightAlign bool) string {
	if len(s) >= width {
		return s
	}
	fill := strings.Repeat(" ", width-len(s))
	if rightAlign {
		return fill + s
	}
	return s + fill
}
