package database

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStateStore — состояние в памяти процесса, без долговременного
// хранения. Используется в тестах и как fallback, когда Redis
// недоступен: сессия тогда работает, но не переживает перезапуск.
type MemoryStateStore struct {
	mu    sync.RWMutex
	cells map[string][]byte
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{cells: make(map[string][]byte)}
}

func (s *MemoryStateStore) Load(_ context.Context, key string, dest any) (bool, error) {
	s.mu.RLock()
	data, ok := s.cells[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemoryStateStore) Save(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cells[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStateStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.cells, key)
	s.mu.Unlock()
	return nil
}
