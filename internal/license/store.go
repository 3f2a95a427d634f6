// Package license is the file-backed license key store. It is the only
// persistence in the application: a single JSON map written atomically via a
// temp file and rename.
package license

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	coreerrors "github.com/charliesmith-boop/youtube-audit/internal/core/errors"
)

// Entry is the stored metadata for one license key.
type Entry struct {
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_utc"`
}

type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Has reports whether the trimmed key exists. A missing or unreadable store
// file means no licenses, not an error.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.load()
	_, ok := store[strings.TrimSpace(key)]

	return ok
}

// Add inserts or overwrites a key with its note.
func (s *Store) Add(key, note string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.load()
	store[strings.TrimSpace(key)] = Entry{Note: note, CreatedAt: now.UTC()}

	return s.save(store)
}

// Delete removes a key. Deleting an absent key returns ErrLicenseNotFound.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.load()

	trimmed := strings.TrimSpace(key)
	if _, ok := store[trimmed]; !ok {
		return coreerrors.ErrLicenseNotFound
	}

	delete(store, trimmed)

	return s.save(store)
}

// List returns a copy of the full store.
func (s *Store) List() map[string]Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := s.load()
	out := make(map[string]Entry, len(store))

	for k, v := range store {
		out[k] = v
	}

	return out
}

func (s *Store) load() map[string]Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]Entry{}
	}

	var store map[string]Entry
	if err := json.Unmarshal(data, &store); err != nil {
		// A corrupt store file degrades to empty rather than locking
		// every user out with an error they cannot act on.
		return map[string]Entry{}
	}

	return store
}

func (s *Store) save(store map[string]Entry) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal license store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write license store: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace license store: %w", err)
	}

	return nil
}
