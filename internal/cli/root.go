package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/lucasgio/gam/internal/account"
	"github.com/lucasgio/gam/internal/config"
	"github.com/lucasgio/gam/internal/logger"
	"github.com/lucasgio/gam/internal/prompt"
	"github.com/spf13/cobra"
)

// App carries what the command tree needs. NewService is called once the
// settings are final, after flags have been applied.
type App struct {
	Settings   *config.Settings
	Version    string
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
	NewService func(s *config.Settings) (account.Service, error)
	RunTUI     func(svc account.Service, s *config.Settings) error

	svc    account.Service
	prompt *prompt.Prompter
}

func NewRootCommand(app *App) *cobra.Command {
	if app.In == nil {
		app.In = os.Stdin
	}
	if app.Out == nil {
		app.Out = os.Stdout
	}
	if app.Err == nil {
		app.Err = os.Stderr
	}

	var sshDir string
	root := &cobra.Command{
		Use:   "gam",
		Short: "Manage multiple SSH identities for git hosts",
		Long: `gam keeps one SSH key per git account, writes per-account Host
aliases to ~/.ssh/config and switches which key a host uses by default.

Run without a subcommand for the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.RunTUI == nil {
				return cmd.Help()
			}
			return app.RunTUI(app.svc, app.Settings)
		},
	}

	root.PersistentFlags().StringVar(&sshDir, "ssh-dir", "", "SSH directory (or GAM_SSH_DIR env var)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		if cmd.Flags().Changed("ssh-dir") {
			app.Settings.SSHDir = sshDir
		}
		if err := app.Settings.Resolve(); err != nil {
			return err
		}
		if err := logger.Init(app.Settings.LogFile, app.Settings.Debug); err != nil {
			fmt.Fprintf(app.Err, "warning: %v\n", err)
		}

		svc, err := app.NewService(app.Settings)
		if err != nil {
			return err
		}
		app.svc = svc
		app.prompt = prompt.New(app.In, app.Out)
		return nil
	}

	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	root.AddCommand(addCmd(app))
	root.AddCommand(listCmd(app))
	root.AddCommand(switchCmd(app))
	root.AddCommand(removeCmd(app))
	root.AddCommand(statusCmd(app))
	root.AddCommand(configCmd(app))
	root.AddCommand(publishCmd(app))
	root.AddCommand(versionCmd(app))

	return root
}
