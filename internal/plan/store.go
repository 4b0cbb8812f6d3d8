package plan

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// Store is the sole arbiter of the persisted plan document. All writes go
// through Merge, which holds the lock across the whole
// read-modify-write-replace section so concurrent producers can never lose
// each other's updates. Writes are tmp + rename, so a concurrent reader sees
// either the old complete document or the new one, never a torn file.
type Store struct {
	mu   sync.RWMutex
	path string
	now  func() time.Time
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Read returns the current document. It returns ErrNotYetCreated when no
// document exists, and never returns a partially-written one.
func (s *Store) Read() (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.read()
}

func (s *Store) read() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotYetCreated
		}
		return nil, &StorageError{Op: "read", Err: err}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &StorageError{Op: "decode", Err: err}
	}
	return &doc, nil
}

// Merge applies the update batch to the current document (or an empty one if
// none exists) and persists the result atomically. It is the only write
// entry point. On a validation error nothing is written and the persisted
// document is left byte-for-byte unchanged.
func (s *Store) Merge(batch []Delta, explanation string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.read()
	if err != nil {
		if err != ErrNotYetCreated {
			return nil, err
		}
		cur = &Document{}
	}

	next, err := apply(cur, batch, explanation, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.write(next); err != nil {
		return nil, err
	}
	return next, nil
}

// write persists doc atomically using a temp file + rename.
func (s *Store) write(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &StorageError{Op: "write tmp", Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return &StorageError{Op: "rename", Err: err}
	}
	return nil
}

// Reset removes any persisted document so a new session starts fresh.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return &StorageError{Op: "reset", Err: err}
	}
	return nil
}
