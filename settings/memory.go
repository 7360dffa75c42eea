package settings

import (
	"sync"
)

// MemoryStore is an in-process Store. Setting Unavailable makes every
// access fail with ErrUnavailable.
type MemoryStore struct {
	mu          sync.Mutex
	values      map[string]any
	reads       int
	Unavailable bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]any)}
}

// Reads returns how many getter calls the store has served.
func (s *MemoryStore) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func (s *MemoryStore) get(key string) (any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reads++
	if s.Unavailable {
		return nil, false, ErrUnavailable
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Unavailable {
		return ErrUnavailable
	}
	s.values[key] = value
	return nil
}

func (s *MemoryStore) GetBoolean(key string) (bool, error) {
	v, ok, err := s.get(key)
	if err != nil {
		return false, err
	}
	if b, isBool := v.(bool); ok && isBool {
		return b, nil
	}
	return defaultBoolean(key), nil
}

func (s *MemoryStore) GetString(key string) (string, error) {
	v, ok, err := s.get(key)
	if err != nil {
		return "", err
	}
	if str, isString := v.(string); ok && isString {
		return str, nil
	}
	return DefaultString(key), nil
}

func (s *MemoryStore) GetStringList(key string) ([]string, error) {
	v, ok, err := s.get(key)
	if err != nil {
		return nil, err
	}
	if list, isList := v.([]string); ok && isList {
		return append([]string(nil), list...), nil
	}
	return []string{}, nil
}

func (s *MemoryStore) SetBoolean(key string, value bool) error {
	return s.set(key, value)
}

func (s *MemoryStore) SetString(key, value string) error {
	return s.set(key, value)
}

func (s *MemoryStore) SetStringList(key string, values []string) error {
	return s.set(key, compact(values))
}
