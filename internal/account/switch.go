package account

import (
	"fmt"

	"github.com/lucasgio/gam/internal/blockedit"
	"github.com/lucasgio/gam/internal/domain"
	"github.com/lucasgio/gam/internal/logger"
)

type SwitchResult struct {
	Account domain.Account
	// Repaired is set when the previous block for the host had no end
	// marker and was replaced up to the end of the file.
	Repaired bool
}

// Switch makes name the active identity and points its host's marker block
// at the account key. Blocks for other hosts are not touched.
func (m *Manager) Switch(name string) (*SwitchResult, error) {
	store, err := m.load()
	if err != nil {
		return nil, err
	}
	acc, err := m.lookup(store, name)
	if err != nil {
		return nil, err
	}

	text, _, err := m.config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH config: %w", err)
	}

	store.SetCurrent(acc.Name)
	if err := m.save(store); err != nil {
		return nil, err
	}

	result := &SwitchResult{Account: acc}
	if blockedit.FindMarkerBlock(text, acc.Host).State == blockedit.BlockUnterminated {
		logger.LogWarn("%v for %s, replacing to end of file", domain.ErrCorruptMarkerBlock, acc.Host)
		result.Repaired = true
	}

	body := blockedit.ActiveBody(acc.Host, m.KeyPath(acc), m.opts.Stanza)
	if err := m.config.Write(blockedit.UpsertMarkerBlock(text, acc.Host, body)); err != nil {
		return nil, fmt.Errorf("failed to write SSH config: %w", err)
	}

	logger.Log("Switched %s to account %s", acc.Host, acc.Name)
	return result, nil
}
