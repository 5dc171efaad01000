package domain

// Repository persists the whole Store document. Load on a missing file
// yields an empty store.
type Repository interface {
	Load() (*Store, error)

	Save(store *Store) error

	Path() string
}
