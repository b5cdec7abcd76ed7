// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rmewada/bookshelf/pkg/types"
)

func testLog(t *testing.T) *Log {
	t.Helper()
	cfg := types.HistoryConfig{
		Path:       filepath.Join(t.TempDir(), "bookshelf.db"),
		MaxResults: 20,
	}
	log, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func TestRecordAndRecent(t *testing.T) {
	log := testLog(t)
	ctx := context.Background()

	searches := []struct {
		query   string
		results int
	}{
		{"dune", 8},
		{"frank herbert", 5},
		{"neuromancer", 0},
	}
	for _, s := range searches {
		if err := log.Record(ctx, s.query, "googlebooks", s.results); err != nil {
			t.Fatalf("Record(%q): %v", s.query, err)
		}
	}

	entries, err := log.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	// Newest first.
	for i, want := range []string{"neuromancer", "frank herbert", "dune"} {
		if entries[i].Query != want {
			t.Errorf("entries[%d].Query = %q, want %q", i, entries[i].Query, want)
		}
	}
	if entries[0].Results != 0 || entries[2].Results != 8 {
		t.Errorf("result counts wrong: %+v", entries)
	}
	if entries[0].Source != "googlebooks" {
		t.Errorf("Source = %q", entries[0].Source)
	}
	if time.Since(entries[0].SearchedAt) > time.Minute {
		t.Errorf("SearchedAt = %v, should be recent", entries[0].SearchedAt)
	}
}

func TestRecentLimit(t *testing.T) {
	log := testLog(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := log.Record(ctx, "q", "googlebooks", i); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := log.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("len(entries) = %d, want 2", len(entries))
	}
}

func TestRecentEmptyLog(t *testing.T) {
	log := testLog(t)

	entries, err := log.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestOpenCreatesSchemaIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookshelf.db")
	cfg := types.HistoryConfig{Path: path}

	first, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Record(context.Background(), "dune", "googlebooks", 8); err != nil {
		t.Fatal(err)
	}
	first.Close()

	// Reopening the same database must not disturb existing rows.
	second, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	entries, err := second.Recent(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Query != "dune" {
		t.Errorf("entries = %+v", entries)
	}
}
