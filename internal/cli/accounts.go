package cli

import (
	"errors"
	"fmt"

	"github.com/lucasgio/gam/internal/domain"
	"github.com/spf13/cobra"
)

var errNoAccounts = errors.New("no accounts found, use 'gam add' to create one")

func listCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List accounts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := app.svc.List()
			if err != nil {
				return err
			}
			if len(views) == 0 {
				info(app.Out, "No accounts found. Use 'gam add' to create one.")
				return nil
			}
			for _, v := range views {
				marker := "  "
				if v.Active {
					marker = activeStyle.Render("●") + " "
				}
				fmt.Fprintf(app.Out, "%s%s  %s  %s  %s\n",
					marker,
					nameStyle.Render(v.Name),
					v.Label(),
					v.Host,
					mutedStyle.Render("alias "+v.Alias))
			}
			return nil
		},
	}
}

// pickAccount returns args[0] or asks the user to choose one.
func pickAccount(app *App, args []string, label string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	views, err := app.svc.List()
	if err != nil {
		return "", err
	}
	if len(views) == 0 {
		return "", errNoAccounts
	}
	names := make([]string, 0, len(views))
	for _, v := range views {
		names = append(names, v.Name)
	}
	return app.prompt.Select(label, names)
}

func switchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "switch [name]",
		Short: "Make an account the default for its host",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := pickAccount(app, args, "Select account to activate:")
			if err != nil {
				return err
			}
			res, err := app.svc.Switch(name)
			if err != nil {
				return err
			}
			if res.Repaired {
				warn(app.Out, "Replaced an unterminated active block for %s", res.Account.Host)
			}
			success(app.Out, "Switched to account '%s' for %s", res.Account.Name, res.Account.Host)
			return nil
		},
	}
}

func removeCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "remove [name]",
		Aliases: []string{"rm"},
		Short:   "Delete an account, its keys and its SSH config entries",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := pickAccount(app, args, "Select account to remove:")
			if err != nil {
				return err
			}
			if !yes {
				ok, err := app.prompt.Confirm(fmt.Sprintf("Remove account '%s'?", name), false)
				if err != nil {
					return err
				}
				if !ok {
					info(app.Out, "Removal cancelled.")
					return nil
				}
			}

			res, err := app.svc.Remove(cmd.Context(), name)
			if err != nil {
				return err
			}
			for _, w := range res.Warnings {
				warn(app.Out, "%s", w)
			}
			if !res.SectionRemoved {
				info(app.Out, "No SSH config entry found for '%s'", name)
			}
			if res.BlockRemoved {
				info(app.Out, "Cleared the active mapping for %s", res.Account.Host)
			}
			success(app.Out, "Account '%s' removed", name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func accountLine(acc domain.Account) string {
	return fmt.Sprintf("%s (%s)", acc.Name, acc.Email)
}
