package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/tictacgo/internal/api/response"
	"github.com/mcoot/tictacgo/internal/model"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show win/loss/tie stats for the signed-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := app.Session.Current()
			if id.IsGuest() {
				return errNotSignedIn
			}

			entry, err := app.Ledger.Load(cmd.Context(), id)
			if err != nil && !model.IsWarning(err) {
				return err
			}
			out.Print(response.StatsFromEntry(id, entry, err))
			return nil
		},
	}

	cmd.AddCommand(newStatsResetCmd())

	return cmd
}

func newStatsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Zero the stats for both marks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := app.Session.Current()
			if id.IsGuest() {
				return errNotSignedIn
			}

			err := app.Ledger.ResetAll(cmd.Context(), id)
			if err != nil && !model.IsWarning(err) {
				return err
			}
			_, entry := app.Ledger.Current()
			out.Print(response.StatsFromEntry(id, entry, err))
			return nil
		},
	}
}
