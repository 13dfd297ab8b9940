package store

import (
	"encoding/json"
	"os"
	"sync"

	"auction-house/utils"
)

// FileStore is a KVStore backed by a single JSON file, so the session record
// survives process restarts the way browser local storage survives reloads.
// The whole map is rewritten on every mutation; the store holds only a
// handful of small keys.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// NewFileStore loads the store file at path, treating a missing or malformed
// file as an empty store.
func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		utils.Warn("FileStore: discarding malformed store file", map[string]any{
			"path":  path,
			"error": err.Error(),
		})
		s.values = make(map[string]string)
	}
	return s
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.flush()
}

func (s *FileStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.flush()
}

// flush rewrites the backing file. Callers must hold the write lock.
func (s *FileStore) flush() {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		utils.Error("FileStore: failed to encode store", map[string]any{"error": err.Error()})
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		utils.Error("FileStore: failed to write store file", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
	}
}
