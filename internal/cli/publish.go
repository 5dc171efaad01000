package cli

import (
	"github.com/spf13/cobra"
)

func publishCmd(app *App) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "publish <name>",
		Short: "Upload an account's public key to GitHub",
		Long: `Upload the account's public key to the GitHub user that owns the token
in GAM_GITHUB_TOKEN (or GITHUB_TOKEN). Keys already on the account are
detected and not uploaded twice.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := app.svc.Publish(cmd.Context(), args[0], title)
			if err != nil {
				return err
			}
			if key.AlreadyPresent {
				info(app.Out, "Key already on GitHub as '%s' (id %d)", key.Title, key.ID)
				return nil
			}
			success(app.Out, "Uploaded key '%s' (id %d)", key.Title, key.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Key title on GitHub (default \"gam <name> (<email>)\")")
	return cmd
}
