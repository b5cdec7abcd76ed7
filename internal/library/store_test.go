// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/rmewada/bookshelf/pkg/types"
)

func testStore(t *testing.T) (*Store, *bytes.Buffer) {
	t.Helper()
	var warn bytes.Buffer
	cfg := types.LibraryConfig{Path: filepath.Join(t.TempDir(), "my_library.json")}
	return NewStore(cfg, &warn), &warn
}

func sampleBooks() []types.Book {
	return []types.Book{
		{Title: "Dune", Author: "Frank Herbert", Publisher: "Chilton Books", ISBN: "9780441172719"},
		{Title: "N/A Title", Author: "Unknown Author"},
		{Title: "Dune", Author: "Frank Herbert", Publisher: "Chilton Books", ISBN: "9780441172719"},
	}
}

func TestLoadAbsentFile(t *testing.T) {
	s, warn := testStore(t)

	books, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("len(books) = %d, want 0", len(books))
	}
	if warn.Len() != 0 {
		t.Errorf("unexpected warning: %q", warn.String())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := testStore(t)

	// Duplicates are permitted and must survive the round trip in order.
	want := sampleBooks()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestSaveIsPrettyPrinted(t *testing.T) {
	s, _ := testStore(t)
	if err := s.Save(sampleBooks()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "[\n") {
		t.Errorf("file should start with an indented array, got %q", string(data[:min(20, len(data))]))
	}
	if !strings.Contains(string(data), "\n  {") {
		t.Error("file should be indented for human inspection")
	}
}

func TestSaveNilCollection(t *testing.T) {
	s, _ := testStore(t)
	if err := s.Save(nil); err != nil {
		t.Fatalf("Save: %v", err)
	}

	books, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("len(books) = %d, want 0", len(books))
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s, _ := testStore(t)
	if err := s.Save(sampleBooks()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory should hold only the library file, got %v", names)
	}
}

func TestLoadNonArrayDocument(t *testing.T) {
	s, warn := testStore(t)
	if err := os.WriteFile(s.Path(), []byte(`{"title": "not a list"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	books, err := s.Load()
	if err != nil {
		t.Fatalf("Load should not fail on a non-array document: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("len(books) = %d, want 0", len(books))
	}
	if !strings.Contains(warn.String(), "does not hold an array") {
		t.Errorf("warning = %q, should mention the array shape", warn.String())
	}
}

func TestLoadCorruptedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated json", `[{"title": "Dune"`},
		{"not json at all", `PK\x03\x04 binary junk`},
		{"array of non-objects", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := testStore(t)
			if err := os.WriteFile(s.Path(), []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := s.Load()
			if err == nil {
				t.Fatal("expected error for corrupted file")
			}
			if !errors.Is(err, ErrCorrupted) {
				t.Errorf("err = %v, want ErrCorrupted", err)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	s := NewStore(types.LibraryConfig{}, &bytes.Buffer{})
	if s.Path() != DefaultPath {
		t.Errorf("Path() = %q, want %q", s.Path(), DefaultPath)
	}
}

func TestExportYAML(t *testing.T) {
	s, _ := testStore(t)
	if err := s.Save(sampleBooks()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out := filepath.Join(t.TempDir(), "export.yaml")
	if err := s.ExportYAML(out); err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var books []types.Book
	if err := yaml.Unmarshal(data, &books); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	if len(books) != 3 || books[0].Title != "Dune" {
		t.Errorf("exported books = %+v", books)
	}
}

func TestExportJSON(t *testing.T) {
	s, _ := testStore(t)
	if err := s.Save(sampleBooks()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out := filepath.Join(t.TempDir(), "export.json")
	if err := s.ExportJSON(out); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"title": "Dune"`) {
		t.Errorf("export = %q", string(data))
	}
}
