package selection

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// PersistenceError indicates the selection file exists but could not be
// parsed. It is fatal at startup: silently resetting the operator's
// prior selections is worse than stopping.
type PersistenceError struct {
	File string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("selection file %s is present but unreadable: %v", e.File, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store is the durable set of product handles the operator has chosen.
// Every mutation rewrites the whole file. A mutex guards the in-memory
// set against overlapping HTTP handlers; cross-process writers sharing
// the same file remain out of scope for this single-operator tool.
type Store struct {
	mu      sync.Mutex
	path    string
	handles []string
	index   map[string]bool
}

// Open loads the selection set from path. A missing file yields an
// empty set; a present but corrupt file yields a *PersistenceError.
func Open(path string) (*Store, error) {
	s := &Store{path: path, index: make(map[string]bool)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Debug().Str("file", path).Msg("No prior selection file; starting empty")
		return s, nil
	}
	if err != nil {
		return nil, &PersistenceError{File: path, Err: err}
	}

	var handles []string
	if err := json.Unmarshal(data, &handles); err != nil {
		return nil, &PersistenceError{File: path, Err: err}
	}

	for _, h := range handles {
		if !s.index[h] {
			s.index[h] = true
			s.handles = append(s.handles, h)
		}
	}
	log.Info().Str("file", path).Int("handles", len(s.handles)).Msg("Loaded selection")
	return s, nil
}

// Add inserts a handle and persists. Adding a handle already present is
// a no-op but still rewrites the file.
func (s *Store) Add(handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.index[handle] {
		s.index[handle] = true
		s.handles = append(s.handles, handle)
	}
	return s.persist()
}

// Remove deletes a handle and persists. Removing an absent handle is a
// no-op.
func (s *Store) Remove(handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.index[handle] {
		return s.persist()
	}
	delete(s.index, handle)
	for i, h := range s.handles {
		if h == handle {
			s.handles = append(s.handles[:i], s.handles[i+1:]...)
			break
		}
	}
	return s.persist()
}

// Clear empties the set and persists.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles = nil
	s.index = make(map[string]bool)
	return s.persist()
}

// Contains reports whether the handle is selected.
func (s *Store) Contains(handle string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index[handle]
}

// Handles returns a sorted copy of the selected handles.
func (s *Store) Handles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.handles))
	copy(out, s.handles)
	sort.Strings(out)
	return out
}

// Len returns the number of selected handles.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// persist rewrites the whole selection file. Write is total-overwrite,
// not incremental.
func (s *Store) persist() error {
	handles := s.handles
	if handles == nil {
		handles = []string{}
	}
	data, err := json.MarshalIndent(handles, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding selection: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing selection file %s: %w", s.path, err)
	}
	log.Debug().Str("file", s.path).Int("handles", len(s.handles)).Msg("Persisted selection")
	return nil
}
