package account

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/lucasgio/gam/internal/blockedit"
	"github.com/lucasgio/gam/internal/domain"
	"github.com/lucasgio/gam/internal/storage"
	"github.com/stretchr/testify/require"
)

type fakeKeyGen struct {
	err   error
	specs []domain.KeySpec
}

func (f *fakeKeyGen) Generate(ctx context.Context, spec domain.KeySpec) error {
	f.specs = append(f.specs, spec)
	if f.err != nil {
		return f.err
	}
	if err := os.WriteFile(spec.Path, []byte("PRIVATE "+spec.Comment+"\n"), 0600); err != nil {
		return err
	}
	return os.WriteFile(spec.Path+".pub", []byte("ssh-ed25519 AAAAfake "+spec.Comment+"\n"), 0644)
}

type fakeAgent struct {
	mu      sync.Mutex
	err     error
	added   []string
	removed []string
	// pubSeen records whether the .pub file still existed at removal time.
	pubSeen []bool
}

func (f *fakeAgent) Add(ctx context.Context, keyPath, passphrase string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, keyPath)
	return nil
}

func (f *fakeAgent) Remove(ctx context.Context, keyPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := os.Stat(keyPath + ".pub")
	f.pubSeen = append(f.pubSeen, err == nil)
	f.removed = append(f.removed, keyPath)
	return f.err
}

type fakeProber struct {
	output    string
	err       error
	endpoints []string
	keys      []string
}

func (f *fakeProber) Probe(ctx context.Context, keyPath, endpoint string) (string, error) {
	f.keys = append(f.keys, keyPath)
	f.endpoints = append(f.endpoints, endpoint)
	return f.output, f.err
}

type fakePublisher struct {
	titles []string
	keys   []string
	result *domain.PublishedKey
	err    error
}

func (f *fakePublisher) PublishKey(ctx context.Context, title, publicKey string) (*domain.PublishedKey, error) {
	f.titles = append(f.titles, title)
	f.keys = append(f.keys, publicKey)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &domain.PublishedKey{ID: 1, Title: title, Key: publicKey}, nil
}

// failingConfig wraps a TextFile and fails writes on demand.
type failingConfig struct {
	*storage.TextFile
	writeErr error
}

func (f *failingConfig) Write(content string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.TextFile.Write(content)
}

type harness struct {
	t         *testing.T
	dir       string
	storePath string
	cfgPath   string
	keygen    *fakeKeyGen
	agent     *fakeAgent
	prober    *fakeProber
	publisher *fakePublisher
	config    *failingConfig
	mgr       *Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{
		t:         t,
		dir:       dir,
		storePath: filepath.Join(dir, "ssh_manager_config.json"),
		cfgPath:   filepath.Join(dir, "config"),
		keygen:    &fakeKeyGen{},
		agent:     &fakeAgent{},
		prober:    &fakeProber{},
		publisher: &fakePublisher{},
	}
	h.config = &failingConfig{TextFile: storage.NewTextFile(h.cfgPath)}
	h.mgr = NewManager(Deps{
		Repository: storage.NewLocalRepository(h.storePath),
		Config:     h.config,
		KeyGen:     h.keygen,
		Agent:      h.agent,
		Prober:     h.prober,
		Publisher:  h.publisher,
	}, Options{
		SSHDir: dir,
		Stanza: blockedit.StanzaOptions{User: "git"},
	})
	return h
}

func (h *harness) add(name, email, host string) *AddResult {
	h.t.Helper()
	res, err := h.mgr.Add(context.Background(), AddRequest{Name: name, Email: email, Host: host, WriteConfig: true})
	require.NoError(h.t, err)
	return res
}

func (h *harness) store() *domain.Store {
	h.t.Helper()
	store, err := storage.NewLocalRepository(h.storePath).Load()
	require.NoError(h.t, err)
	return store
}

func (h *harness) configText() string {
	h.t.Helper()
	data, err := os.ReadFile(h.cfgPath)
	if errors.Is(err, os.ErrNotExist) {
		return ""
	}
	require.NoError(h.t, err)
	return string(data)
}

func (h *harness) writeConfig(text string) {
	h.t.Helper()
	require.NoError(h.t, os.WriteFile(h.cfgPath, []byte(text), 0600))
}

func (h *harness) readFile(path string) []byte {
	h.t.Helper()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(h.t, err)
	return data
}
