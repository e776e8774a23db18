package store

import (
	"encoding/json"
	"sync"
)

// MemoryStore is an in-memory Store used by tests. It round-trips the
// document through JSON so callers cannot alias its internal state, matching
// the isolation the file-backed store provides.
type MemoryStore struct {
	mu  sync.Mutex
	raw []byte

	// SaveErr, when set, is returned by Save to simulate persistence failure.
	SaveErr error
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.raw == nil {
		return NewDocument(), nil
	}
	var doc Document
	if err := json.Unmarshal(s.raw, &doc); err != nil {
		return nil, err
	}
	doc.normalize()
	return &doc, nil
}

func (s *MemoryStore) Save(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	s.raw = raw
	return nil
}
