package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasgio/gam/internal/domain"
)

func TestLoadMissingFileReturnsEmptyStore(t *testing.T) {
	repo := NewLocalRepository(filepath.Join(t.TempDir(), "ssh_manager_config.json"))

	store, err := repo.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(store.Accounts) != 0 {
		t.Errorf("Expected no accounts, got %d", len(store.Accounts))
	}
	if store.CurrentAccount != nil {
		t.Errorf("Expected no current account, got %q", *store.CurrentAccount)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ssh_manager_config.json")
	repo := NewLocalRepository(path)

	store := domain.NewStore()
	store.Accounts["work"] = domain.Account{
		Name:        "work",
		Email:       "me@corp.com",
		KeyFile:     "/home/me/.ssh/id_work_github_com",
		Host:        "github.com",
		Description: "Work",
	}
	store.Accounts["personal"] = domain.Account{
		Name:    "personal",
		Email:   "me@home.org",
		KeyFile: "/home/me/.ssh/id_personal_github_com",
		Host:    "github.com",
	}
	store.SetCurrent("work")

	if err := repo.Save(store); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(loaded.Accounts))
	}
	if loaded.Accounts["work"] != store.Accounts["work"] {
		t.Errorf("Expected %+v, got %+v", store.Accounts["work"], loaded.Accounts["work"])
	}
	if loaded.Accounts["personal"] != store.Accounts["personal"] {
		t.Errorf("Expected %+v, got %+v", store.Accounts["personal"], loaded.Accounts["personal"])
	}
	current, ok := loaded.Current()
	if !ok || current != "work" {
		t.Errorf("Expected current account 'work', got %q (set=%v)", current, ok)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %o", info.Mode().Perm())
	}
}

func TestSaveWritesNullCurrentAccount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	repo := NewLocalRepository(path)

	if err := repo.Save(domain.NewStore()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), `"current_account": null`) {
		t.Errorf("Expected null current_account, got:\n%s", data)
	}
	if !strings.Contains(string(data), "\n  \"accounts\"") {
		t.Errorf("Expected two-space indented JSON, got:\n%s", data)
	}
}

func TestLoadReadsDocumentWithoutDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	doc := `{
  "accounts": {
    "work": {
      "name": "work",
      "email": "me@corp.com",
      "key_file": "/k/id_work_github_com",
      "host": "github.com",
      "description": null
    }
  },
  "current_account": "work"
}`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store, err := NewLocalRepository(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	acc, ok := store.Get("work")
	if !ok {
		t.Fatal("Expected account 'work'")
	}
	if acc.Description != "" {
		t.Errorf("Expected empty description, got %q", acc.Description)
	}
	if !store.IsCurrent("work") {
		t.Error("Expected 'work' to be current")
	}
}

func TestLoadKeepsDanglingCurrentAccount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	doc := `{"accounts": {}, "current_account": "ghost"}`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store, err := NewLocalRepository(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	current, ok := store.Current()
	if !ok || current != "ghost" {
		t.Errorf("Expected dangling current 'ghost', got %q (set=%v)", current, ok)
	}
	if _, exists := store.Get("ghost"); exists {
		t.Error("Expected 'ghost' to be absent from accounts")
	}
}

func TestLoadNormalizesNullAccounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte(`{"accounts": null, "current_account": null}`), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store, err := NewLocalRepository(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.Accounts == nil {
		t.Fatal("Expected accounts map to be initialized")
	}
	store.Accounts["x"] = domain.Account{Name: "x"}
}

func TestLoadUsesMapKeyAsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	doc := `{"accounts": {"work": {"name": "old", "email": "a@b.co", "key_file": "/k", "host": "github.com"}}, "current_account": null}`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store, err := NewLocalRepository(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.Accounts["work"].Name != "work" {
		t.Errorf("Expected name 'work', got %q", store.Accounts["work"].Name)
	}
}

func TestLoadRejectsMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := NewLocalRepository(path).Load(); err == nil {
		t.Fatal("Expected an error for malformed JSON")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo := NewLocalRepository(filepath.Join(dir, "store.json"))

	for i := 0; i < 3; i++ {
		if err := repo.Save(domain.NewStore()); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "store.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("Expected only store.json, got %v", names)
	}
}
