package main

import (
	"fmt"
	"os"

	"github.com/lucasgio/gam/internal/account"
	"github.com/lucasgio/gam/internal/blockedit"
	"github.com/lucasgio/gam/internal/cli"
	"github.com/lucasgio/gam/internal/config"
	"github.com/lucasgio/gam/internal/domain"
	"github.com/lucasgio/gam/internal/logger"
	"github.com/lucasgio/gam/internal/provider/github"
	"github.com/lucasgio/gam/internal/sshkeys"
	"github.com/lucasgio/gam/internal/storage"
	"github.com/lucasgio/gam/internal/ui"
)

// Version is set via ldflags.
var Version = "dev"

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := &cli.App{
		Settings:   settings,
		Version:    Version,
		NewService: newService,
		RunTUI:     ui.Run,
	}

	err = cli.NewRootCommand(app).Execute()
	_ = logger.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newService(s *config.Settings) (account.Service, error) {
	agent := sshkeys.NewAgentClientFromEnv()

	var publisher domain.KeyPublisher
	if s.GitHubToken != "" {
		publisher = github.NewPublisher(s.GitHubToken)
	}

	deps := account.Deps{
		Repository: storage.NewLocalRepository(s.StoreFile),
		Config:     storage.NewTextFile(s.SSHConfig),
		KeyGen:     sshkeys.NewGenerator(),
		Agent:      agent,
		Prober:     sshkeys.NewProber(s.KnownHosts, s.ProbeTimeout, agent),
		Publisher:  publisher,
	}
	opts := account.Options{
		SSHDir: s.SSHDir,
		Stanza: blockedit.StanzaOptions{
			User:        "git",
			UseKeychain: s.Keychain(),
		},
		ProbeUser: s.ProbeUser,
	}

	logger.Log("Using SSH directory %s", s.SSHDir)
	return account.NewManager(deps, opts), nil
}
