package account

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasgio/gam/internal/blockedit"
	"github.com/lucasgio/gam/internal/domain"
	"github.com/lucasgio/gam/internal/logger"
)

const keyAlgorithm = "ed25519"

type AddRequest struct {
	Name        string
	Email       string
	Host        string
	Description string
	Passphrase  string
	// WriteConfig appends a named section for the account's alias.
	WriteConfig bool
	// Overwrite replaces key files left behind at the derived path.
	Overwrite bool
}

type AddResult struct {
	Account        domain.Account
	Alias          string
	KeyPath        string
	PublicKey      string
	AgentLoaded    bool
	ConfigWritten  bool
	SectionExisted bool
}

// Validate checks the request without touching any state.
func (r AddRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return domain.ErrEmptyName
	}
	if strings.TrimSpace(r.Host) == "" {
		return domain.ErrEmptyHost
	}
	if !domain.ValidEmail(r.Email) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidEmail, r.Email)
	}
	return nil
}

// Add generates a key pair and records the account. Nothing is persisted
// unless key generation succeeds.
func (m *Manager) Add(ctx context.Context, req AddRequest) (*AddResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Host = strings.TrimSpace(req.Host)
	req.Description = strings.TrimSpace(req.Description)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	store, err := m.load()
	if err != nil {
		return nil, err
	}
	if _, exists := store.Get(req.Name); exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateIdentity, req.Name)
	}

	acc := domain.Account{
		Name:        req.Name,
		Email:       req.Email,
		KeyFile:     domain.KeyFileName(req.Name, req.Host),
		Host:        req.Host,
		Description: req.Description,
	}
	keyPath := m.KeyPath(acc)

	if err := m.clearKeyFiles(keyPath, req.Overwrite); err != nil {
		return nil, err
	}

	logger.Log("Generating %s key for %s at %s", keyAlgorithm, acc.Name, keyPath)
	err = m.keygen.Generate(ctx, domain.KeySpec{
		Algorithm:  keyAlgorithm,
		Comment:    acc.Email,
		Path:       keyPath,
		Passphrase: req.Passphrase,
	})
	if err != nil {
		logger.LogError("KEYGEN", keyPath, err)
		return nil, fmt.Errorf("%w: key generation: %v", domain.ErrCollaboratorFailure, err)
	}

	store.Accounts[acc.Name] = acc
	if err := m.save(store); err != nil {
		return nil, err
	}

	result := &AddResult{
		Account: acc,
		Alias:   acc.Alias(),
		KeyPath: keyPath,
	}

	if err := m.agent.Add(ctx, keyPath, req.Passphrase); err != nil {
		if errors.Is(err, domain.ErrAgentUnavailable) {
			logger.LogWarn("ssh-agent not available, %s not loaded", keyPath)
		} else {
			logger.LogError("AGENT_ADD", keyPath, err)
		}
	} else {
		result.AgentLoaded = true
	}

	if data, err := os.ReadFile(keyPath + ".pub"); err != nil {
		logger.LogError("READ_PUBLIC_KEY", keyPath+".pub", err)
	} else {
		result.PublicKey = string(data)
	}

	if req.WriteConfig {
		existed, err := m.addNamedSection(acc, keyPath)
		if err != nil {
			return result, err
		}
		result.SectionExisted = existed
		result.ConfigWritten = !existed
	}

	logger.Log("Account %s added (alias %s)", acc.Name, result.Alias)
	return result, nil
}

// clearKeyFiles refuses to clobber an existing key pair unless overwrite is
// set, in which case both halves are removed first.
func (m *Manager) clearKeyFiles(keyPath string, overwrite bool) error {
	var existing []string
	for _, p := range []string{keyPath, keyPath + ".pub"} {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if !overwrite {
		return fmt.Errorf("%w: %s", domain.ErrKeyExists, filepath.Base(existing[0]))
	}
	for _, p := range existing {
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("failed to remove existing key %s: %w", p, err)
		}
		logger.Log("Removed existing key file %s", p)
	}
	return nil
}

// addNamedSection reports whether a section for the account was already
// present; in that case the config file is left alone.
func (m *Manager) addNamedSection(acc domain.Account, keyPath string) (bool, error) {
	text, _, err := m.config.Read()
	if err != nil {
		return false, fmt.Errorf("failed to read SSH config: %w", err)
	}
	if blockedit.HasNamedSection(text, acc.Name) {
		logger.Log("SSH config already has a section for %s", acc.Name)
		return true, nil
	}

	section := blockedit.Section{
		Identity:     acc.Name,
		Label:        acc.Label(),
		Alias:        acc.Alias(),
		HostName:     acc.Host,
		IdentityFile: keyPath,
	}
	if err := m.config.Write(blockedit.AppendNamedSection(text, section.Render(m.opts.Stanza))); err != nil {
		return false, fmt.Errorf("failed to write SSH config: %w", err)
	}
	return false, nil
}
