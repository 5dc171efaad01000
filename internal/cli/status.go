package cli

import (
	"fmt"
	"strings"

	"github.com/lucasgio/gam/internal/domain"
	"github.com/spf13/cobra"
)

func statusCmd(app *App) *cobra.Command {
	var noProbe bool
	cmd := &cobra.Command{
		Use:   "status [name]",
		Short: "Show the active account and test its SSH connection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			report, err := app.svc.Status(cmd.Context(), name, !noProbe)
			if err != nil {
				return err
			}

			out := app.Out
			switch {
			case report.NoActive:
				info(out, "No active account set. Use 'gam switch' to select one.")
				return nil
			case report.Dangling:
				failure(out, "Current account '%s' not found in configuration", report.DanglingName)
				return nil
			}

			acc := report.Account
			if report.Active {
				success(out, "Active account: %s", accountLine(*acc))
			} else {
				fmt.Fprintf(out, "Account: %s\n", accountLine(*acc))
			}
			fmt.Fprintf(out, "  Host: %s\n", acc.Host)
			if acc.Description != "" {
				fmt.Fprintf(out, "  Description: %s\n", acc.Description)
			}
			fmt.Fprintf(out, "  Alias: %s\n", acc.Alias())

			if !report.Probed {
				return nil
			}
			fmt.Fprintf(out, "\nTesting SSH connection to %s...\n", report.Endpoint)
			switch report.Outcome {
			case domain.ProbeAuthenticated:
				success(out, "SSH connection successful")
			case domain.ProbePermissionDenied:
				failure(out, "SSH connection failed: key not added to %s or incorrect key", acc.Host)
			default:
				info(out, "SSH test result: %s", strings.TrimSpace(report.ProbeOutput))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noProbe, "no-probe", false, "Skip the SSH connection test")
	return cmd
}

func configCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the SSH config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.svc.ViewConfig()
			if err != nil {
				return err
			}
			out := app.Out
			info(out, "SSH config path: %s", view.Path)
			if !view.Exists {
				info(out, "No SSH config file found.")
				return nil
			}
			fmt.Fprintln(out, "──────── BEGIN ssh config ────────")
			fmt.Fprint(out, view.Content)
			if !strings.HasSuffix(view.Content, "\n") {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, "────────  END ssh config  ────────")
			return nil
		},
	}
}
