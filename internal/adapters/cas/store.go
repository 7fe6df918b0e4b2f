// Package cas records the content digests of files installed into application trees.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InstallStore = (*Store)(nil)

// Store implements ports.InstallStore using a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.InstallRecord
}

// NewStore creates a new InstallStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.InstallRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open adapts NewStore to the interface-returning signature used by packagers.
func Open(path string) (ports.InstallStore, error) {
	return NewStore(path)
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read install state"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal install state"), "path", s.path)
	}

	return nil
}

func (s *Store) save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.cache, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(err, "failed to marshal install state")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create directory for install state")
	}

	// Write to a sibling and rename so a crash never leaves a truncated file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to write install state")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return zerr.Wrap(err, "failed to replace install state")
	}

	return nil
}

// Get retrieves the record for a destination path.
func (s *Store) Get(dest string) (*domain.InstallRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.cache[dest]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Put stores the record and persists the store.
func (s *Store) Put(rec domain.InstallRecord) error {
	s.mu.Lock()
	s.cache[rec.Dest] = rec
	s.mu.Unlock()

	return s.save()
}
