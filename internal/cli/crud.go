package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wh33les/HusbandsGames/internal/catalog"
	"github.com/wh33les/HusbandsGames/internal/client"
)

// formFlags binds the shared add/update field flags to a client.Form.
func formFlags(cmd *cobra.Command, form *client.Form) {
	cmd.Flags().StringVar(&form.Title, "title", "", "game title")
	cmd.Flags().StringVar(&form.Platform, "platform", "", "platform (PS5, PC, ...)")
	cmd.Flags().StringVar(&form.Genre, "genre", "", "genre")
	cmd.Flags().StringVar(&form.ReleaseYear, "year", "", "release year")
	cmd.Flags().StringVar(&form.Price, "price", "", "price")
	cmd.Flags().StringVar(&form.Region, "region", "", "region code (US, EU, JP)")
	cmd.Flags().StringVar(&form.Publisher, "publisher", "", "publisher")
	cmd.Flags().BoolVar(&form.Opened, "opened", false, "whether the game has been opened")
}

func newAddCmd() *cobra.Command {
	var form client.Form

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a game to the catalog (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			game, err := c.Create(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q with id %d\n", game.Title, game.ID)
			return nil
		},
	}

	formFlags(cmd, &form)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newUpdateCmd() *cobra.Command {
	var form client.Form

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a game; omitted fields keep their stored values (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid game id %q", args[0])
			}

			c, err := newClient()
			if err != nil {
				return err
			}

			games, err := c.FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			existing := catalog.FindByID(games, id)
			if existing == nil {
				return fmt.Errorf("no game with id %d", id)
			}

			// A bool flag has no empty state, so only forward an explicit
			// --opened; otherwise keep the stored value.
			if !cmd.Flags().Changed("opened") && existing.Opened != nil {
				form.Opened = *existing.Opened
			}

			game, err := c.Update(cmd.Context(), *existing, form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %q (id %d)\n", game.Title, game.ID)
			return nil
		},
	}

	formFlags(cmd, &form)
	return cmd
}

func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game after confirmation (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid game id %q", args[0])
			}

			if !yes && !confirm(cmd, fmt.Sprintf("Delete game %d? [y/N] ", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted game %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
