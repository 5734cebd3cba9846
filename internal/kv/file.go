package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var errCorrupt = errors.New("kv: corrupt store")

// FileStore keeps every key in one JSON object on disk. Writes go to a
// temporary file that is renamed over the original. Writers in other
// processes are serialized by an exclusive lock on a sibling ".lock" file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// lock takes the in-process mutex and then the file lock. The returned
// function releases both.
func (s *FileStore) lock() (func(), error) {
	s.mu.Lock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	f, err := os.OpenFile(s.path+".lock", os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("kv: open lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		s.mu.Unlock()
		return nil, fmt.Errorf("kv: lock %s: %w", s.path, err)
	}
	return func() {
		_ = unlockFile(f)
		_ = f.Close()
		s.mu.Unlock()
	}, nil
}

func (s *FileStore) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}
	values := map[string]json.RawMessage{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w %s: %v", errCorrupt, s.path, err)
	}
	return values, nil
}

// loadForWrite is load, except that a corrupt file reads as empty so the
// next write replaces it.
func (s *FileStore) loadForWrite() (map[string]json.RawMessage, error) {
	values, err := s.load()
	if errors.Is(err, errCorrupt) {
		return map[string]json.RawMessage{}, nil
	}
	return values, err
}

func (s *FileStore) save(values map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Get returns the raw value stored under key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return nil, err
	}
	v, ok := values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

// Set stores value under key. value must be valid JSON; it is read back
// semantically equal but possibly re-indented.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("kv: value for %s is not valid JSON", key)
	}

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	values, err := s.loadForWrite()
	if err != nil {
		return err
	}
	values[key] = json.RawMessage(value)
	return s.save(values)
}

// Update runs fn while holding the file lock, so a concurrent writer in
// another process cannot slip in between the read and the write.
func (s *FileStore) Update(_ context.Context, key string, fn UpdateFunc) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	values, err := s.loadForWrite()
	if err != nil {
		return err
	}
	old, found := values[key]
	next, err := fn([]byte(old), found)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}
	if !json.Valid(next) {
		return fmt.Errorf("kv: value for %s is not valid JSON", key)
	}
	values[key] = json.RawMessage(next)
	return s.save(values)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

// Close is a no-op; every operation already reaches disk.
func (s *FileStore) Close() error { return nil }
