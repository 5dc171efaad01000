package account

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lucasgio/gam/internal/blockedit"
	"github.com/lucasgio/gam/internal/domain"
	"github.com/lucasgio/gam/internal/logger"
)

type RemoveResult struct {
	Account        domain.Account
	WasActive      bool
	SectionRemoved bool
	BlockRemoved   bool
	// Warnings lists cleanup steps that failed. The account is gone from
	// the store regardless.
	Warnings []string
}

// Remove deletes the account. Key files, the agent identity and config
// entries are cleaned up best effort; the store is saved last.
func (m *Manager) Remove(ctx context.Context, name string) (*RemoveResult, error) {
	store, err := m.load()
	if err != nil {
		return nil, err
	}
	acc, err := m.lookup(store, name)
	if err != nil {
		return nil, err
	}

	result := &RemoveResult{Account: acc, WasActive: store.IsCurrent(acc.Name)}
	delete(store.Accounts, acc.Name)
	keyPath := m.KeyPath(acc)

	// The agent matches on the public key, so this runs before the files go.
	if err := m.agent.Remove(ctx, keyPath); err != nil {
		if errors.Is(err, domain.ErrAgentUnavailable) {
			logger.Log("ssh-agent not available, skipping unload of %s", keyPath)
		} else {
			logger.LogError("AGENT_REMOVE", keyPath, err)
		}
	}

	for _, p := range []string{keyPath, keyPath + ".pub"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.LogError("REMOVE_KEY", p, err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("could not delete %s: %v", p, err))
		}
	}

	m.cleanConfig(acc, result)

	if result.WasActive {
		store.ClearCurrent()
	}
	if err := m.save(store); err != nil {
		return nil, err
	}

	logger.Log("Account %s removed", acc.Name)
	return result, nil
}

func (m *Manager) cleanConfig(acc domain.Account, result *RemoveResult) {
	text, exists, err := m.config.Read()
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not read SSH config: %v", err))
		return
	}
	if !exists {
		return
	}

	updated, found := blockedit.RemoveNamedSection(text, acc.Name, acc.Alias())
	result.SectionRemoved = found
	if !found {
		logger.Log("No SSH config section found for %s", acc.Name)
	}

	if result.WasActive {
		if blockedit.FindMarkerBlock(updated, acc.Host).State == blockedit.BlockUnterminated {
			logger.LogWarn("%v for %s, leaving it in place", domain.ErrCorruptMarkerBlock, acc.Host)
			result.Warnings = append(result.Warnings, fmt.Sprintf("active block for %s has no end marker and was left in place", acc.Host))
		}
		updated, result.BlockRemoved = blockedit.RemoveMarkerBlock(updated, acc.Host)
	}

	if updated == text {
		return
	}
	if err := m.config.Write(updated); err != nil {
		logger.LogError("WRITE_CONFIG", m.config.Path(), err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not update SSH config: %v", err))
		result.SectionRemoved = false
		result.BlockRemoved = false
	}
}
