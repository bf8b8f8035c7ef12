// Package store persists the directory -> tags relation.
//
// A store is a directory (by default ~/.dtags) holding:
//
//	mapping.json   the relation, see codec.go for the format
//	completion     space separated union of tag names, for shell completion
//	destination    last directory resolved by "dtags d", read by the shell wrapper
//
// The whole relation is loaded per invocation and replaced wholesale on
// save. Every write goes through a temp file in the same directory followed
// by a rename, so a concurrent reader sees either the old or the new file.
// There is no locking: two overlapping saves resolve as last writer wins.
package store

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File names inside the store root.
const (
	MappingFile     = "mapping.json"
	CompletionFile  = "completion"
	DestinationFile = "destination"
)

// Store reads and writes the files under a single root directory.
type Store struct {
	root string

	// write copies data into a staged temp file. Replaced in tests to
	// simulate a failure part way through a save.
	write func(w io.Writer, data []byte) error
}

// New returns a store rooted at root. Nothing is touched on disk until the
// first Load or Save.
func New(root string) *Store {
	return &Store{root: root, write: writeAll}
}

func writeAll(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

// Root returns the store directory.
func (s *Store) Root() string { return s.root }

// MappingPath returns the location of the relation file.
func (s *Store) MappingPath() string { return filepath.Join(s.root, MappingFile) }

// CompletionPath returns the location of the completion artifact.
func (s *Store) CompletionPath() string { return filepath.Join(s.root, CompletionFile) }

// DestinationPath returns the location of the last destination artifact.
func (s *Store) DestinationPath() string { return filepath.Join(s.root, DestinationFile) }

// Load reads the relation.
//
// A missing mapping file is first use: the root and empty mapping and
// completion files are created and the empty relation returned. Creation
// tolerates files that appear concurrently.
func (s *Store) Load() (Relation, error) {
	path := s.MappingPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.init(); err != nil {
			return nil, err
		}
		return Empty(), nil
	}
	if err != nil {
		return nil, storageErr("read", path, err)
	}
	return Parse(path, data)
}

// init creates the root directory and an empty mapping file.
//
// A mapping that appears concurrently is left alone. When this call
// creates the mapping, the completion file is emptied to match it, so
// tags left over from a deleted mapping are not offered.
func (s *Store) init() error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return storageErr("create", s.root, err)
	}

	path := s.MappingPath()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return storageErr("create", path, err)
	}
	if err := f.Close(); err != nil {
		return storageErr("create", path, err)
	}

	path = s.CompletionPath()
	f, err = os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return storageErr("create", path, err)
	}
	if err := f.Close(); err != nil {
		return storageErr("create", path, err)
	}
	return nil
}

// Save replaces the relation and regenerates the completion artifact.
//
// Both files are staged before either is renamed into place. The mapping
// is committed first; if the completion rename then fails the mapping is
// already current and the completion file is rebuilt on the next save.
// On any failure the staged temp files are removed. A relation that
// breaks the mapping rules is rejected before anything is touched.
func (s *Store) Save(r Relation) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return storageErr("create", s.root, err)
	}

	mapping, err := s.stage(s.MappingPath(), data)
	if err != nil {
		return err
	}
	completion, err := s.stage(s.CompletionPath(), completionData(r))
	if err != nil {
		mapping.discard()
		return err
	}

	if err := mapping.commit(); err != nil {
		completion.discard()
		return err
	}
	return completion.commit()
}

func completionData(r Relation) []byte {
	tags := r.AllTags()
	if len(tags) == 0 {
		return nil
	}
	return []byte(strings.Join(tags, " ") + "\n")
}

// LoadCompletion returns the tags listed in the completion artifact.
// A missing file reads as no tags.
func (s *Store) LoadCompletion() ([]string, error) {
	path := s.CompletionPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("read", path, err)
	}
	return strings.Fields(string(data)), nil
}

// SaveDestination records dir for the shell wrapper to cd into.
func (s *Store) SaveDestination(dir string) error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return storageErr("create", s.root, err)
	}
	st, err := s.stage(s.DestinationPath(), []byte(dir+"\n"))
	if err != nil {
		return err
	}
	return st.commit()
}
