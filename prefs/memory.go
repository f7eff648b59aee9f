package prefs

import "sync"

// MemoryStore keeps values in process memory, used when no database is configured and in tests
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int)}
}

func (s *MemoryStore) GetInt(key string, def int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

func (s *MemoryStore) SetInt(key string, v int) error {
	s.mu.Lock()
	s.values[key] = v
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) GetBool(key string, def bool) bool {
	return s.GetInt(key, boolToInt(def)) != 0
}

func (s *MemoryStore) SetBool(key string, v bool) error {
	return s.SetInt(key, boolToInt(v))
}

func (s *MemoryStore) Close() error { return nil }
