package account

import (
	"fmt"
	"path/filepath"

	"github.com/lucasgio/gam/internal/blockedit"
	"github.com/lucasgio/gam/internal/domain"
)

// ConfigFile is the shared SSH client configuration, read and written
// whole.
type ConfigFile interface {
	Path() string
	Read() (content string, exists bool, err error)
	Write(content string) error
}

type Deps struct {
	Repository domain.Repository
	Config     ConfigFile
	KeyGen     domain.KeyGenerator
	Agent      domain.Agent
	Prober     domain.Prober
	// Publisher may be nil when no API token is configured.
	Publisher domain.KeyPublisher
}

type Options struct {
	SSHDir    string
	Stanza    blockedit.StanzaOptions
	ProbeUser string
}

// Manager drives the account lifecycle: absent, present, active, absent.
// Each operation loads the store, applies one transition and saves it.
type Manager struct {
	repo      domain.Repository
	config    ConfigFile
	keygen    domain.KeyGenerator
	agent     domain.Agent
	prober    domain.Prober
	publisher domain.KeyPublisher
	opts      Options
}

func NewManager(deps Deps, opts Options) *Manager {
	if opts.ProbeUser == "" {
		opts.ProbeUser = "git"
	}
	return &Manager{
		repo:      deps.Repository,
		config:    deps.Config,
		keygen:    deps.KeyGen,
		agent:     deps.Agent,
		prober:    deps.Prober,
		publisher: deps.Publisher,
		opts:      opts,
	}
}

// KeyPath resolves an account's key-file token inside the SSH directory.
func (m *Manager) KeyPath(acc domain.Account) string {
	if filepath.IsAbs(acc.KeyFile) {
		return acc.KeyFile
	}
	return filepath.Join(m.opts.SSHDir, acc.KeyFile)
}

func (m *Manager) load() (*domain.Store, error) {
	store, err := m.repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	return store, nil
}

func (m *Manager) save(store *domain.Store) error {
	if err := m.repo.Save(store); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	return nil
}

func (m *Manager) lookup(store *domain.Store, name string) (domain.Account, error) {
	acc, ok := store.Get(name)
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: %s", domain.ErrUnknownIdentity, name)
	}
	return acc, nil
}

// List returns every account sorted by name.
func (m *Manager) List() ([]domain.AccountView, error) {
	store, err := m.load()
	if err != nil {
		return nil, err
	}

	views := make([]domain.AccountView, 0, len(store.Accounts))
	for _, name := range store.Names() {
		acc := store.Accounts[name]
		views = append(views, domain.AccountView{
			Account: acc,
			Alias:   acc.Alias(),
			Active:  store.IsCurrent(name),
		})
	}
	return views, nil
}

type ConfigView struct {
	Path    string
	Content string
	Exists  bool
}

func (m *Manager) ViewConfig() (*ConfigView, error) {
	content, exists, err := m.config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH config: %w", err)
	}
	return &ConfigView{Path: m.config.Path(), Content: content, Exists: exists}, nil
}
