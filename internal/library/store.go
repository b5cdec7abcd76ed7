// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists the user's saved book collection as a single
// JSON document on disk.
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/rmewada/bookshelf/pkg/types"
)

// ErrCorrupted marks a library file that exists but cannot be parsed.
// Callers branch on it with errors.Is to distinguish corruption from an
// absent store.
var ErrCorrupted = errors.New("library file is corrupted")

// DefaultPath is the library file location when none is configured.
const DefaultPath = "my_library.json"

// Store reads and writes the full book collection at a fixed path. The
// store is accessed by one process at a time; no locking is performed.
type Store struct {
	path string
	warn io.Writer
}

// NewStore returns a store for the configured path. Warnings (such as a
// store whose top-level shape is wrong) are written to warn.
func NewStore(cfg types.LibraryConfig, warn io.Writer) *Store {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path, warn: warn}
}

// Path returns the location of the library file.
func (s *Store) Path() string {
	return s.path
}

// Load returns the full saved collection. An absent file yields an empty
// collection without error. A file whose top-level value is not an array
// yields an empty collection with a warning. An unparseable file yields
// an error satisfying errors.Is(err, ErrCorrupted).
func (s *Store) Load() ([]types.Book, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.Book{}, nil
		}
		return nil, fmt.Errorf("reading library file %s: %w", s.path, err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if _, ok := raw.([]any); !ok {
		fmt.Fprintf(s.warn, "warning: library file %s does not hold an array, re-initializing\n", s.path)
		return []types.Book{}, nil
	}

	var books []types.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if books == nil {
		books = []types.Book{}
	}
	return books, nil
}

// Save overwrites the store with the full serialized collection. The
// document is written to a temporary file in the same directory and
// renamed into place, so a failed write never leaves a torn file that
// parses as valid state. The output is indented for human inspection.
func (s *Store) Save(books []types.Book) error {
	if books == nil {
		books = []types.Book{}
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing library: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("writing library file %s: %w", s.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing library file %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing library file %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing library file %s: %w", s.path, err)
	}
	return nil
}

// ExportYAML writes the saved collection to path as YAML.
func (s *Store) ExportYAML(path string) error {
	books, err := s.Load()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(books)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the saved collection to path as indented JSON.
func (s *Store) ExportJSON(path string) error {
	books, err := s.Load()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
