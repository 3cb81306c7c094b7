package store

import (
	"sync"

	"naturalrights/internal/domain"
)

const accountsFile = "accounts.json"

// AccountFileStore persists per-server account profiles to disk.
type AccountFileStore struct {
	file homeFile
	mu   sync.Mutex
}

// NewAccountFileStore returns an AccountFileStore rooted at dir.
func NewAccountFileStore(dir string) *AccountFileStore {
	return &AccountFileStore{file: fileIn(dir, accountsFile)}
}

// SaveAccountProfile stores or updates the profile for profile.ServerURL.
func (s *AccountFileStore) SaveAccountProfile(profile domain.AccountProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles := make(map[string]domain.AccountProfile)
	if _, err := s.file.loadJSON(&profiles); err != nil {
		return err
	}
	profiles[profile.ServerURL] = profile
	return s.file.saveJSON(profiles)
}

// LoadAccountProfile retrieves the profile for serverURL.
func (s *AccountFileStore) LoadAccountProfile(serverURL string) (domain.AccountProfile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles := make(map[string]domain.AccountProfile)
	if _, err := s.file.loadJSON(&profiles); err != nil {
		return domain.AccountProfile{}, false, err
	}
	profile, ok := profiles[serverURL]
	return profile, ok, nil
}

// Compile-time assertion that AccountFileStore implements domain.AccountStore.
var _ domain.AccountStore = (*AccountFileStore)(nil)
