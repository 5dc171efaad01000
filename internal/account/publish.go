package account

import (
	"context"
	"fmt"
	"os"

	"github.com/lucasgio/gam/internal/domain"
	"github.com/lucasgio/gam/internal/logger"
)

const publishableHost = "github.com"

func DefaultKeyTitle(acc domain.Account) string {
	return fmt.Sprintf("gam %s (%s)", acc.Name, acc.Email)
}

// Publish uploads the account's public key to GitHub. The store and the SSH
// config are not modified.
func (m *Manager) Publish(ctx context.Context, name, title string) (*domain.PublishedKey, error) {
	store, err := m.load()
	if err != nil {
		return nil, err
	}
	acc, err := m.lookup(store, name)
	if err != nil {
		return nil, err
	}
	if acc.Host != publishableHost {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedHost, acc.Host)
	}
	if m.publisher == nil {
		return nil, domain.ErrMissingToken
	}

	pubPath := m.KeyPath(acc) + ".pub"
	logger.LogFileOpen(pubPath)
	data, err := os.ReadFile(pubPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read public key: %w", err)
	}

	if title == "" {
		title = DefaultKeyTitle(acc)
	}
	key, err := m.publisher.PublishKey(ctx, title, string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to publish key for %s: %w", acc.Name, err)
	}
	return key, nil
}
