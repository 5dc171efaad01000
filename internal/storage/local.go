package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/lucasgio/gam/internal/domain"
	"github.com/lucasgio/gam/internal/logger"
)

// LocalRepository keeps the account store as a pretty-printed JSON document.
type LocalRepository struct {
	path string
	mu   sync.Mutex
}

func NewLocalRepository(path string) *LocalRepository {
	return &LocalRepository{path: path}
}

func (r *LocalRepository) Path() string {
	return r.path
}

func (r *LocalRepository) Load() (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger.LogFileOpen(r.path)
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Log("No account store at %s, starting empty", r.path)
			return domain.NewStore(), nil
		}
		logger.LogError("LOAD", r.path, err)
		return nil, fmt.Errorf("failed to read account store: %w", err)
	}

	store := domain.NewStore()
	if err := json.Unmarshal(data, store); err != nil {
		logger.LogError("UNMARSHAL", r.path, err)
		return nil, fmt.Errorf("failed to parse account store %s: %w", r.path, err)
	}
	normalize(store)

	logger.Log("Account store loaded from %s (%d accounts)", r.path, len(store.Accounts))
	return store, nil
}

func (r *LocalRepository) Save(store *domain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		logger.LogError("MARSHAL", r.path, err)
		return fmt.Errorf("failed to serialize account store: %w", err)
	}

	logger.LogFileWrite(r.path)
	if err := writeFileAtomic(r.path, data, storeFileMode); err != nil {
		logger.LogError("SAVE", r.path, err)
		return fmt.Errorf("failed to write account store: %w", err)
	}

	logger.Log("Account store saved to %s", r.path)
	return nil
}

// normalize repairs documents edited by hand: a null accounts map, or
// records whose name field disagrees with their key.
func normalize(store *domain.Store) {
	if store.Accounts == nil {
		store.Accounts = make(map[string]domain.Account)
	}
	for key, acc := range store.Accounts {
		if acc.Name != key {
			logger.Log("Account %q stored under key %q, using the key", acc.Name, key)
			acc.Name = key
			store.Accounts[key] = acc
		}
	}
}
