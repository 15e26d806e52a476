package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictacgo/internal/api/response"
	"github.com/mcoot/tictacgo/internal/model"
)

var errNotSignedIn = errors.New("not signed in: run 'tictac login <identity>' first")

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <identity>",
		Short: "Sign in as an identity",
		Long: `Sign in as an identity. Identities are case-insensitive and need no
registration; stats and the mark preference are kept per identity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.Session.SignIn(cmd.Context(), args[0])
			if err != nil && !model.IsWarning(err) {
				return err
			}
			out.Print(response.SessionFromState(app.Session.Snapshot(), err))
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and play as a guest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.Session.SignOut(cmd.Context())
			if err != nil && !model.IsWarning(err) {
				return err
			}
			out.Print(response.SessionFromState(app.Session.Snapshot(), err))
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity and mark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out.Print(response.SessionFromState(app.Session.Snapshot(), restoreWarn))
			return nil
		},
	}
}

func newMarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark <X|O>",
		Short: "Choose the mark you play",
		Long: `Choose the mark you play. The chosen mark also moves first in new games.
The choice is saved for the signed-in identity. A guest's choice is not
saved and lasts only for this command; guests can pick a mark with x or o
inside play instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mark, err := model.ParseMark(args[0])
			if err != nil {
				return err
			}

			// Every invocation starts on a blank board, so the choice is
			// always allowed here
			err = app.GameController.ChooseMark(cmd.Context(), mark)
			if err != nil && !model.IsWarning(err) {
				return err
			}
			out.Print(response.SessionFromState(app.Session.Snapshot(), err))
			return nil
		},
	}
}
