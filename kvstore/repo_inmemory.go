package kvstore

import (
	"fmt"
	"sync"
)

var _ Store = (*InMemoryStore)(nil)

// InMemoryStore keeps values for the lifetime of the process
type InMemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		values: make(map[string]string),
	}
}

func (s *InMemoryStore) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

func (s *InMemoryStore) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *InMemoryStore) Remove(key string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key) // Already absent is fine
	return nil
}
