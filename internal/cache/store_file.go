package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var _ Store = (*FileStore)(nil)

// FileStore persists entries in a single JSON file on disk. The whole map
// is rewritten on every mutation; entry counts here are tiny (a handful of
// cached resource lists per user), so simplicity wins over cleverness.
type FileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read cache file: %w", err)
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		// a corrupted cache file is not fatal, start over empty
		s.entries = make(map[string]string)
	}

	return s, nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, found := s.entries[key]
	return value, found, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return s.persist()
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.entries[key]; !found {
		return nil
	}
	delete(s.entries, key)
	return s.persist()
}

func (s *FileStore) Keys(prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// persist writes the map to a temp file and renames it over the target,
// so a crash mid-write cannot leave a truncated cache file behind.
// Callers must hold s.mu.
func (s *FileStore) persist() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("marshal cache entries: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(s.path), ".fitlife-cache-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpFile.Name())
		return fmt.Errorf("close temp cache file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), s.path); err != nil {
		_ = os.Remove(tmpFile.Name())
		return fmt.Errorf("rename temp cache file: %w", err)
	}

	return nil
}
