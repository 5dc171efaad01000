package domain

import "sort"

type Account struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	KeyFile     string `json:"key_file"`
	Host        string `json:"host"`
	Description string `json:"description,omitempty"`
}

// Label is the text written after the identity name in a named section
// header: the description when present, otherwise the email.
func (a Account) Label() string {
	if a.Description != "" {
		return a.Description
	}
	return a.Email
}

func (a Account) Alias() string {
	return Alias(a.Host, a.Name)
}

// Store is the persisted document. CurrentAccount may name an identity that
// no longer exists in Accounts if the file was edited by hand.
type Store struct {
	Accounts       map[string]Account `json:"accounts"`
	CurrentAccount *string            `json:"current_account"`
}

func NewStore() *Store {
	return &Store{Accounts: make(map[string]Account)}
}

func (s *Store) Get(name string) (Account, bool) {
	acc, ok := s.Accounts[name]
	return acc, ok
}

func (s *Store) Current() (string, bool) {
	if s.CurrentAccount == nil {
		return "", false
	}
	return *s.CurrentAccount, true
}

func (s *Store) IsCurrent(name string) bool {
	current, ok := s.Current()
	return ok && current == name
}

func (s *Store) SetCurrent(name string) {
	s.CurrentAccount = &name
}

func (s *Store) ClearCurrent() {
	s.CurrentAccount = nil
}

// Names returns the identity names in lexical order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.Accounts))
	for name := range s.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type AccountView struct {
	Account
	Alias  string
	Active bool
}
