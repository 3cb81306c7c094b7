package store

import (
	"sort"
	"strings"
	"sync"

	"naturalrights/internal/domain"
)

// MemoryStore keeps records in a map. It backs tests and the "memory"
// backend of the server.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (s *MemoryStore) Get(soul string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.records[soul]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), b...), nil
}

func (s *MemoryStore) Put(soul string, record []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[soul] = append([]byte(nil), record...)
	return nil
}

func (s *MemoryStore) Delete(soul string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, soul)
	return nil
}

func (s *MemoryStore) ListDocumentGrants(documentSoul string) ([]domain.Grant, error) {
	prefix := GrantsPrefix(documentSoul)

	s.mu.RLock()
	souls := make([]string, 0)
	for soul := range s.records {
		if strings.HasPrefix(soul, prefix) {
			souls = append(souls, soul)
		}
	}
	sort.Strings(souls)
	raw := make([][]byte, len(souls))
	for i, soul := range souls {
		raw[i] = s.records[soul]
	}
	s.mu.RUnlock()

	grants := make([]domain.Grant, 0, len(souls))
	for i, soul := range souls {
		g, err := decodeGrant(soul, raw[i])
		if err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Compile-time assertion that MemoryStore implements domain.Store.
var _ domain.Store = (*MemoryStore)(nil)
