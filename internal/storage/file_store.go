package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is a durable string key/value store backed by a single JSON
// document, mirroring browser local storage: values are JSON-encoded strings
// and must be parsed defensively on the way out.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewFileStore opens (or lazily creates) the store at path
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, data: map[string]string{}}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	// A damaged state file is treated as empty rather than fatal; the next
	// write replaces it.
	var data map[string]string
	if err := json.Unmarshal(raw, &data); err == nil && data != nil {
		s.data = data
	}
	return s, nil
}

// Get returns the raw stored value, or "" when absent
func (s *FileStore) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

// GetJSON decodes the stored value into v. The literal strings "undefined"
// and "null", empty values and invalid JSON all report absent.
func (s *FileStore) GetJSON(key string, v interface{}) bool {
	raw := s.Get(key)
	if raw == "" || raw == "undefined" || raw == "null" {
		return false
	}
	return json.Unmarshal([]byte(raw), v) == nil
}

// SetAll applies every pair in one atomic write so related keys are never
// observed half-updated.
func (s *FileStore) SetAll(pairs map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range pairs {
		if v == "" {
			delete(s.data, k)
		} else {
			s.data[k] = v
		}
	}
	return s.flush()
}

// Set stores a single value; an empty value removes the key
func (s *FileStore) Set(key, value string) error {
	return s.SetAll(map[string]string{key: value})
}

// SetJSON stores the JSON encoding of v under key
func (s *FileStore) SetJSON(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(key, string(raw))
}

// Delete removes the given keys in one write
func (s *FileStore) Delete(keys ...string) error {
	pairs := make(map[string]string, len(keys))
	for _, k := range keys {
		pairs[k] = ""
	}
	return s.SetAll(pairs)
}

// flush persists via temp file + rename; callers hold the lock
func (s *FileStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close state file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to set state file mode: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}
