package account

import (
	"context"

	"github.com/lucasgio/gam/internal/domain"
)

// Service is the account API consumed by the CLI and the TUI.
type Service interface {
	Add(ctx context.Context, req AddRequest) (*AddResult, error)
	List() ([]domain.AccountView, error)
	Switch(name string) (*SwitchResult, error)
	Remove(ctx context.Context, name string) (*RemoveResult, error)
	Status(ctx context.Context, name string, probe bool) (*StatusReport, error)
	ViewConfig() (*ConfigView, error)
	Publish(ctx context.Context, name, title string) (*domain.PublishedKey, error)
}

var _ Service = (*Manager)(nil)
