// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rmewada/bookshelf/internal/httputil"
	"github.com/rmewada/bookshelf/pkg/types"
)

// openLibraryAPIBase is the Open Library search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openLibraryAPIBase = "https://openlibrary.org/search.json"

// OpenLibraryBackend queries the Open Library search API.
type OpenLibraryBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *OpenLibraryBackend) Name() string { return "openlibrary" }

// Search queries the Open Library API and returns normalized results.
func (b *OpenLibraryBackend) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.Book, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty Open Library query")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 8
	}

	params := url.Values{
		"q":      {query},
		"limit":  {fmt.Sprintf("%d", maxResults)},
		"fields": {"title,author_name,publisher,isbn"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openLibraryAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Open Library API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Open Library API returned HTTP %d", resp.StatusCode)
	}

	var olr openLibraryResponse
	if err := json.NewDecoder(resp.Body).Decode(&olr); err != nil {
		return nil, fmt.Errorf("parsing Open Library response: %w", err)
	}

	var books []types.Book
	for _, doc := range olr.Docs {
		books = append(books, normalizeDoc(doc))
	}
	return books, nil
}

// normalizeDoc maps one search document onto a Book. Open Library lists
// publishers and ISBNs as arrays; the first publisher and the first
// thirteen-digit ISBN (else the first ISBN) are taken.
func normalizeDoc(doc openLibraryDoc) types.Book {
	title := doc.Title
	if title == "" {
		title = PlaceholderTitle
	}

	author := strings.Join(doc.AuthorNames, ", ")
	if author == "" {
		author = PlaceholderAuthor
	}

	publisher := ""
	if len(doc.Publishers) > 0 {
		publisher = doc.Publishers[0]
	}

	return types.Book{
		Title:     title,
		Author:    author,
		Publisher: publisher,
		ISBN:      pickISBN(doc.ISBNs),
	}
}

// pickISBN prefers an ISBN-13 (thirteen digits) over older forms.
func pickISBN(isbns []string) string {
	for _, isbn := range isbns {
		if len(isbn) == 13 {
			return isbn
		}
	}
	if len(isbns) > 0 {
		return isbns[0]
	}
	return ""
}

// Open Library API JSON structures.
type openLibraryResponse struct {
	NumFound int              `json:"numFound"`
	Docs     []openLibraryDoc `json:"docs"`
}

type openLibraryDoc struct {
	Title       string   `json:"title"`
	AuthorNames []string `json:"author_name"`
	Publishers  []string `json:"publisher"`
	ISBNs       []string `json:"isbn"`
}
