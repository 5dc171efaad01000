package cli

import (
	"errors"
	"fmt"

	"github.com/lucasgio/gam/internal/account"
	"github.com/lucasgio/gam/internal/domain"
	"github.com/spf13/cobra"
)

const defaultHost = "github.com"

func validateEmail(s string) error {
	if !domain.ValidEmail(s) {
		return domain.ErrInvalidEmail
	}
	return nil
}

func addCmd(app *App) *cobra.Command {
	var req account.AddRequest
	var noConfig, yes bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new account and its SSH key",
		Long: `Generate an ed25519 key for a new account and record it.

Values not given as flags are prompted for. With --yes nothing is prompted
and missing optional values take their defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			interactive := !yes
			p := app.prompt
			var err error

			if interactive && req.Name == "" {
				if req.Name, err = p.Required("Account name (e.g. work, personal)", nil); err != nil {
					return err
				}
			}
			if interactive && req.Email != "" && !domain.ValidEmail(req.Email) {
				warn(app.Out, "%v: %s", domain.ErrInvalidEmail, req.Email)
				req.Email = ""
			}
			if interactive && req.Email == "" {
				if req.Email, err = p.Required("Email", validateEmail); err != nil {
					return err
				}
			}
			if req.Host == "" {
				req.Host = defaultHost
				if interactive {
					if req.Host, err = p.Text("Host", defaultHost); err != nil {
						return err
					}
				}
			}
			if interactive && !flags.Changed("description") {
				if req.Description, err = p.Text("Description (optional)", ""); err != nil {
					return err
				}
			}
			if interactive && !flags.Changed("passphrase") {
				if req.Passphrase, err = p.Password("Passphrase (empty for none)"); err != nil {
					return err
				}
			}
			req.WriteConfig = !noConfig
			if interactive && !flags.Changed("no-config") {
				alias := domain.Alias(req.Host, req.Name)
				if req.WriteConfig, err = p.Confirm(fmt.Sprintf("Add Host %s to SSH config?", alias), true); err != nil {
					return err
				}
			}

			res, err := app.svc.Add(cmd.Context(), req)
			if errors.Is(err, domain.ErrKeyExists) && interactive && !req.Overwrite {
				warn(app.Out, "%v", err)
				ok, perr := p.Confirm("Overwrite the existing key?", false)
				if perr != nil {
					return perr
				}
				if !ok {
					info(app.Out, "Cancelled.")
					return nil
				}
				req.Overwrite = true
				res, err = app.svc.Add(cmd.Context(), req)
			}
			if err != nil {
				return err
			}

			printAddResult(app, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Account name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email used as the key comment")
	cmd.Flags().StringVar(&req.Host, "host", "", "Git host (default github.com)")
	cmd.Flags().StringVar(&req.Description, "description", "", "Optional description")
	cmd.Flags().StringVar(&req.Passphrase, "passphrase", "", "Key passphrase (prompted when omitted)")
	cmd.Flags().BoolVar(&noConfig, "no-config", false, "Do not add a Host alias to the SSH config")
	cmd.Flags().BoolVar(&req.Overwrite, "overwrite", false, "Replace existing key files")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not prompt")
	return cmd
}

func printAddResult(app *App, res *account.AddResult) {
	out := app.Out
	success(out, "Account '%s' added", res.Account.Name)
	info(out, "Key: %s", res.KeyPath)
	if res.AgentLoaded {
		success(out, "Key added to ssh-agent")
	}
	switch {
	case res.ConfigWritten:
		success(out, "SSH config: added Host %s", res.Alias)
	case res.SectionExisted:
		info(out, "SSH config already has an entry for '%s'", res.Account.Name)
	}

	if res.PublicKey != "" {
		fmt.Fprintf(out, "\nPublic key (add it to your %s account):\n\n", res.Account.Host)
		fmt.Fprint(out, res.PublicKey)
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Clone with: git@%s:org/repo.git\n", res.Alias)
}
