package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	envPrefix        = "GAM"
	storeFileName    = "ssh_manager_config.json"
	fallbackTokenEnv = "GITHUB_TOKEN"
)

type Settings struct {
	SSHDir       string        `envconfig:"SSH_DIR"`
	StoreFile    string        `envconfig:"STORE_FILE"`
	SSHConfig    string        `envconfig:"SSH_CONFIG"`
	KnownHosts   string        `envconfig:"KNOWN_HOSTS"`
	LogFile      string        `envconfig:"LOG_FILE"`
	ProbeUser    string        `envconfig:"PROBE_USER" default:"git"`
	ProbeTimeout time.Duration `envconfig:"PROBE_TIMEOUT" default:"10s"`
	UseKeychain  *bool         `envconfig:"USE_KEYCHAIN"`
	GitHubToken  string        `envconfig:"GITHUB_TOKEN"`
	Debug        bool          `envconfig:"DEBUG" default:"false"`
}

// Load reads GAM_* variables. Paths left empty are filled by Resolve.
func Load() (*Settings, error) {
	var s Settings
	if err := envconfig.Process(envPrefix, &s); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if s.GitHubToken == "" {
		s.GitHubToken = os.Getenv(fallbackTokenEnv)
	}
	return &s, nil
}

// Resolve fills unset paths relative to the home directory and makes sure
// the SSH directory exists.
func (s *Settings) Resolve() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to determine home directory: %w", err)
	}

	if s.SSHDir == "" {
		s.SSHDir = filepath.Join(home, ".ssh")
	}
	if s.StoreFile == "" {
		s.StoreFile = filepath.Join(s.SSHDir, storeFileName)
	}
	if s.SSHConfig == "" {
		s.SSHConfig = filepath.Join(s.SSHDir, "config")
	}
	if s.KnownHosts == "" {
		s.KnownHosts = filepath.Join(s.SSHDir, "known_hosts")
	}
	if s.LogFile == "" {
		s.LogFile = filepath.Join(home, ".gam", "gam.log")
	}

	if err := os.MkdirAll(s.SSHDir, 0700); err != nil {
		return fmt.Errorf("failed to create SSH directory %s: %w", s.SSHDir, err)
	}
	return nil
}

// Keychain reports whether stanzas should carry UseKeychain. Only the macOS
// OpenSSH build understands the option.
func (s *Settings) Keychain() bool {
	if s.UseKeychain != nil {
		return *s.UseKeychain
	}
	return runtime.GOOS == "darwin"
}
