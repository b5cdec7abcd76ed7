// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries remote book catalogs and normalizes the
// heterogeneous responses into Book values.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rmewada/bookshelf/pkg/types"
)

// Placeholders substituted when a source omits required metadata.
const (
	PlaceholderTitle  = "N/A Title"
	PlaceholderAuthor = "Unknown Author"
)

// Backend searches a single book catalog. Each backend (Google Books,
// Open Library) implements this interface per the Strategy pattern.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.Book, error)
}

// Search queries the backends in order and returns the combined normalized
// results, capped at cfg.MaxResults. Backends are called sequentially; the
// whole search blocks on each remote call.
//
// When a backend fails but another succeeds, the failure is reported as a
// warning on w. When every backend fails, Search returns a single "search
// failed" error carrying the causes, and no partial results.
func Search(ctx context.Context, query string, backends []Backend, cfg types.SearchConfig, w io.Writer) ([]types.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search failed: query is empty")
	}
	if len(backends) == 0 {
		return nil, fmt.Errorf("search failed: no catalog backends configured")
	}

	var books []types.Book
	var failures []string

	for _, b := range backends {
		results, err := b.Search(ctx, query, cfg)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", b.Name(), err))
			continue
		}
		books = append(books, results...)
	}

	if len(failures) == len(backends) {
		return nil, fmt.Errorf("search failed: %s", strings.Join(failures, "; "))
	}
	for _, msg := range failures {
		fmt.Fprintf(w, "warning: backend %s\n", msg)
	}

	if cfg.MaxResults > 0 && len(books) > cfg.MaxResults {
		books = books[:cfg.MaxResults]
	}
	return books, nil
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(books []types.Book, w io.Writer) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-30s  %-13s  %s\n",
		"Num", "Title", "Author", "ISBN", "Publisher")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, b := range books {
		fmt.Fprintf(w, "%-4d  %-50s  %-30s  %-13s  %s\n",
			i+1, truncate(b.Title, 50), truncate(b.Author, 30), b.ISBN, truncate(b.Publisher, 20))
	}

	fmt.Fprintf(w, "\n%d results\n", len(books))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(books []types.Book, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(books)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
